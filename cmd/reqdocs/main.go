package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reqdocs/cmd/reqdocs/internal/bootstrap"
	requirementscmd "github.com/goliatone/go-reqdocs/internal/commands/requirements"
	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/internal/watch"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reqdocs: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	root        string
	config      string
	logLevel    string
	logFormat   string
	logProvider string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "reqdocs",
		Short: "Manage Markdown requirement documents and their index",
		Long: `reqdocs creates numbered requirement documents from a template and keeps
the requirements index in sync with the files on disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.root, "root", "", "Project root that relative paths resolve against (default: current directory)")
	pf.StringVar(&flags.config, "config", "", "Config file (default: <root>/.reqdocs.yaml when present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "go-logger format: json, console, pretty")
	pf.StringVar(&flags.logProvider, "log-provider", "", "Logging provider: console or gologger")

	root.AddCommand(
		newCreateCommand(flags),
		newUpdateCommand(flags),
		newListCommand(flags),
		newPreviewCommand(flags),
		newWatchCommand(flags),
	)
	return root
}

func newCreateCommand(flags *globalFlags) *cobra.Command {
	msg := requirementscmd.CreateRequirementCommand{}

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a requirement from the template and refresh the index",
		Example: `  reqdocs create --title "Login" --context "Auth"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, flags, msg)
		},
	}
	cmd.Flags().StringVar(&msg.Title, "title", "", "Requirement title")
	cmd.Flags().StringVar(&msg.Context, "context", "", "Requirement context")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Rescan requirement files and rewrite the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, flags, requirementscmd.UpdateIndexCommand{})
		},
	}
}

func newListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the index table without writing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, flags, requirementscmd.ListRequirementsCommand{})
		},
	}
}

func newPreviewCommand(flags *globalFlags) *cobra.Command {
	msg := requirementscmd.PreviewIndexCommand{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the index to HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, flags, msg)
		},
	}
	cmd.Flags().StringVarP(&msg.Output, "output", "o", requirementscmd.StdoutOutput, "HTML destination file, - for stdout")
	cmd.Flags().StringSliceVar(&msg.Extensions, "extension", nil, "goldmark extension to enable (repeatable)")
	cmd.Flags().BoolVar(&msg.HardWraps, "hard-wraps", false, "Render soft line breaks as <br>")
	cmd.Flags().BoolVar(&msg.SafeMode, "safe-mode", false, "Suppress raw HTML")
	return cmd
}

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite the index whenever requirement files change",
		Long: `watch rewrites the index once, then keeps watching the requirements
directory and rewrites it again after each burst of changes settles.
Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withModule(cmd, flags, func(ctx context.Context, module *bootstrap.Module) error {
				update := func(ctx context.Context) error {
					return requirementscmd.DispatchCommand(ctx, requirementscmd.UpdateIndexCommand{})
				}
				if err := update(ctx); err != nil {
					return err
				}

				cfg := module.Module.Config()
				if debounce <= 0 {
					debounce = cfg.Watch.Debounce
				}
				watcher, err := watch.New(watch.Config{
					Dir:      cfg.Resolve(cfg.RequirementsDir),
					Prefix:   cfg.FilePrefix,
					Suffix:   cfg.FileSuffix,
					Exclude:  cfg.Exclude,
					Debounce: debounce,
				}, update, logging.WatchLogger(module.Module.LoggerProvider()))
				if err != nil {
					return err
				}
				return watcher.Run(ctx)
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before rewriting the index (default from config, 300ms)")
	return cmd
}

// dispatch routes msg through the command dispatcher of a freshly built module.
func dispatch[T command.Message](cmd *cobra.Command, flags *globalFlags, msg T) error {
	return withModule(cmd, flags, func(ctx context.Context, _ *bootstrap.Module) error {
		return requirementscmd.DispatchCommand(ctx, msg)
	})
}

// withModule builds a module for the invocation and releases its handler
// subscriptions once run returns.
func withModule(cmd *cobra.Command, flags *globalFlags, run func(context.Context, *bootstrap.Module) error) error {
	module, err := moduleBuilder(bootstrap.Options{
		Root:        flags.root,
		ConfigPath:  flags.config,
		LogProvider: flags.logProvider,
		LogLevel:    flags.logLevel,
		LogFormat:   flags.logFormat,
		LogWriter:   cmd.ErrOrStderr(),
		Output:      cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	return run(commandContext(cmd), module)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

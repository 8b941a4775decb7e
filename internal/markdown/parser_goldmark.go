package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// IsSupportedExtension reports whether name maps onto a registered goldmark extension.
func IsSupportedExtension(name string) bool {
	_, ok := extensionRegistry[normalizeExtension(name)]
	return ok
}

// GoldmarkParser renders Markdown with goldmark. The table extension is always
// enabled because the requirements index is a pipe table. Engines are built
// once per distinct option set and reused, so a parser is safe to share.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions

	mu      sync.Mutex
	engines map[string]goldmark.Markdown
}

// NewGoldmarkParser returns a parser whose Parse method uses defaults.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engines:  map[string]goldmark.Markdown{},
	}
}

// Parse renders markdown with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

// ParseWithOptions renders markdown with opts. Unknown extension names are ignored.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine(opts).Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *GoldmarkParser) engine(opts interfaces.ParseOptions) goldmark.Markdown {
	names := extensionNames(opts.Extensions)
	safe := opts.SafeMode || opts.Sanitize
	key := fmt.Sprintf("%s|%t|%t", strings.Join(names, ","), opts.HardWraps, safe)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engines == nil {
		p.engines = map[string]goldmark.Markdown{}
	}
	if engine, ok := p.engines[key]; ok {
		return engine
	}

	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !safe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	extenders := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		extenders = append(extenders, extensionRegistry[name])
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	p.engines[key] = engine
	return engine
}

// extensionNames resolves requested names to a sorted, de-duplicated list of
// registry keys. Aliases collapse onto one key and "table" is always present.
func extensionNames(requested []string) []string {
	if len(requested) == 0 {
		requested = []string{"gfm", "linkify", "tasklist"}
	}

	names := []string{"table"}
	for _, name := range requested {
		key := normalizeExtension(name)
		if _, ok := extensionRegistry[key]; !ok {
			continue
		}
		if !slices.Contains(names, key) {
			names = append(names, key)
		}
	}
	slices.Sort(names)
	return names
}

func normalizeExtension(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "tables":
		return "table"
	case "autolink":
		return "linkify"
	}
	return key
}

package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// The requirements index preview renders through this contract so hosts can
// swap the engine without touching the requirements service.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// FrontMatter models the optional metadata block at the top of a requirement
// file. Known keys are lifted into typed fields; everything else lands in
// Custom so templates can carry project-specific values.
type FrontMatter struct {
	ID      string         `yaml:"id" json:"id"`
	Title   string         `yaml:"title" json:"title"`
	Context string         `yaml:"context" json:"context"`
	Status  string         `yaml:"status" json:"status"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
}

// IsZero reports whether no front matter was present.
func (fm FrontMatter) IsZero() bool {
	return fm.ID == "" && fm.Title == "" && fm.Context == "" && fm.Status == "" &&
		len(fm.Tags) == 0 && len(fm.Custom) == 0
}

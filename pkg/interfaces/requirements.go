package interfaces

import "context"

// Requirement is a single requirement document discovered on disk.
type Requirement struct {
	// ID is the numeric identifier as written in the file. Malformed files
	// without an id marker yield an empty string.
	ID      string
	Title   string
	Context string
	// FilePath is slash separated and relative to the requirements directory.
	FilePath    string
	FrontMatter FrontMatter
	// Checksum stores the SHA-256 digest of the file content.
	Checksum []byte
}

// CreateOptions carries the user supplied fields for a new requirement.
type CreateOptions struct {
	Title   string
	Context string
}

// CreateResult describes the outcome of a create call. Created is false when
// the target file already existed and nothing was written.
type CreateResult struct {
	Created     bool
	Path        string
	Requirement Requirement
	IndexPath   string
}

// IndexResult describes a rewritten index.
type IndexResult struct {
	Path         string
	Requirements []Requirement
}

// RequirementService exposes the requirement document workflows.
type RequirementService interface {
	Create(ctx context.Context, opts CreateOptions) (*CreateResult, error)
	UpdateIndex(ctx context.Context) (*IndexResult, error)
	List(ctx context.Context) ([]Requirement, error)
	RenderIndex(ctx context.Context, requirements []Requirement) ([]byte, error)
	PreviewIndex(ctx context.Context, opts ParseOptions) ([]byte, error)
}

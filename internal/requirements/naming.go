package requirements

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

const (
	NamingLower = "lower"
	NamingSlug  = "slug"
)

// Namer derives requirement file names from titles. The same rule feeds the
// created file and the index link so the two never drift apart.
type Namer struct {
	Prefix   string
	Suffix   string
	Strategy string
}

// FileName returns the base file name for title.
//
// The lower strategy lowercases prefix, title, and suffix verbatim, spaces
// included, and rejects titles containing a path separator. The slug strategy runs the title through go-slug and fails when
// nothing usable remains.
func (n Namer) FileName(title string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(n.Strategy)) {
	case NamingSlug:
		normalized, err := slug.Normalize(title)
		if err != nil {
			return "", err
		}
		if normalized == "" {
			return "", fmt.Errorf("title %q has no slug characters", title)
		}
		return n.Prefix + normalized + n.Suffix, nil
	case NamingLower, "":
		if strings.ContainsAny(title, `/\`) {
			return "", fmt.Errorf("title %q contains a path separator", title)
		}
		return strings.ToLower(n.Prefix + title + n.Suffix), nil
	default:
		return "", fmt.Errorf("unknown naming strategy %q", n.Strategy)
	}
}

// IsPortable reports whether the title already maps onto a clean slug. Titles
// that do not are still valid in lower mode but yield file names with spaces
// or punctuation.
func (n Namer) IsPortable(title string) bool {
	return slug.IsValid(strings.ToLower(title))
}

// Link returns the index link for title, relative to the index directory.
// linkDir is the slash separated path from the index file's directory to the
// requirements directory.
func (n Namer) Link(linkDir, title string) (string, error) {
	name, err := n.FileName(title)
	if err != nil {
		return "", err
	}
	if linkDir == "" || linkDir == "." {
		return name, nil
	}
	return path.Join(linkDir, name), nil
}

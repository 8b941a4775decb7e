package requirements

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-reqdocs/internal/markdown"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

const (
	// IDMarker prefixes the id value inside a requirement file.
	IDMarker = "**Id**:"
	// ContextMarker prefixes the context value inside a requirement file.
	ContextMarker = "**Context**:"
)

// ErrFrontMatterInvalid marks a requirement whose leading YAML block could not
// be decoded. The record returned alongside it is still complete.
var ErrFrontMatterInvalid = errors.New("requirement front matter is invalid")

// ParseRequirement extracts title, id, and context from a requirement file.
// Missing markers leave the corresponding field empty. Values from an optional
// front matter block only fill fields the line scan left empty.
//
// File content never makes the scan fail. When the front matter does not
// decode, the lines after the unreadable block are scanned as usual and the
// record is returned together with an error wrapping ErrFrontMatterInvalid.
func ParseRequirement(path string, source []byte) (interfaces.Requirement, error) {
	var fmErr error
	fm, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		fm, body = interfaces.FrontMatter{}, skipFrontMatterBlock(source)
		fmErr = fmt.Errorf("%w: %s: %w", ErrFrontMatterInvalid, path, err)
	}

	text := string(body)
	if !fm.IsZero() {
		text = strings.TrimLeft(text, "\r\n")
	}

	req := interfaces.Requirement{
		FilePath:    path,
		FrontMatter: fm,
	}

	for idx, line := range strings.Split(text, "\n") {
		if idx == 0 {
			req.Title = parseTitle(line)
			continue
		}
		if value, ok := markerValue(line, IDMarker); ok {
			req.ID = value
		} else if value, ok := markerValue(line, ContextMarker); ok {
			req.Context = value
		}
	}

	if req.Title == "" {
		req.Title = strings.TrimSpace(fm.Title)
	}
	if req.ID == "" {
		req.ID = strings.TrimSpace(fm.ID)
	}
	if req.Context == "" {
		req.Context = strings.TrimSpace(fm.Context)
	}
	return req, fmErr
}

// skipFrontMatterBlock drops a leading "---" delimited block so the line scan
// starts at the heading. Without a closing delimiter source is returned as is.
func skipFrontMatterBlock(source []byte) []byte {
	lines := strings.SplitAfter(string(source), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return source
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return []byte(strings.TrimLeft(strings.Join(lines[i+1:], ""), "\r\n"))
		}
	}
	return source
}

func parseTitle(line string) string {
	title := strings.TrimSpace(line)
	title = strings.TrimLeft(title, "#")
	return strings.TrimSpace(title)
}

func markerValue(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(marker):]), true
}

package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// ParseFrontMatter splits an optional YAML block off the top of source.
// Without one, the zero FrontMatter and source itself are returned.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var fm interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm.ID = strings.TrimSpace(fm.ID)
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Context = strings.TrimSpace(fm.Context)
	if len(fm.Custom) == 0 {
		fm.Custom = nil
	}
	return fm, body, nil
}

package requirements

import (
	"bytes"
	"sort"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

const indexHeader = "# Requirements\n" +
	"| Id  | Title | Context | Details |\n" +
	"| --- | ----- | ------- | ------- |\n"

// LinkFunc resolves the details link for a record.
type LinkFunc func(interfaces.Requirement) string

// FormatIndex renders the requirements table. Rows keep the order of records.
func FormatIndex(records []interfaces.Requirement, link LinkFunc) []byte {
	var buf bytes.Buffer
	buf.WriteString(indexHeader)
	for _, record := range records {
		buf.WriteString(record.ID)
		buf.WriteByte('|')
		buf.WriteString(record.Title)
		buf.WriteByte('|')
		buf.WriteString(record.Context)
		buf.WriteString("|[details](")
		buf.WriteString(link(record))
		buf.WriteString(")\n")
	}
	return buf.Bytes()
}

// SortRecords orders records by numeric id. Records without a numeric id
// follow, ordered by file path.
func SortRecords(records []interfaces.Requirement) {
	sort.SliceStable(records, func(i, j int) bool {
		left, leftOK := numericID(records[i].ID)
		right, rightOK := numericID(records[j].ID)
		switch {
		case leftOK && rightOK:
			if cmp := left.Cmp(right); cmp != 0 {
				return cmp < 0
			}
			return records[i].FilePath < records[j].FilePath
		case leftOK:
			return true
		case rightOK:
			return false
		default:
			return records[i].FilePath < records[j].FilePath
		}
	})
}

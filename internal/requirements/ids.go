package requirements

import (
	"math/big"
	"strings"

	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// NextID returns one past the highest numeric id among records, or "1" when
// none carry a numeric id. Ids are compared as arbitrary precision integers so
// values beyond the int range still count. Records whose id does not parse as
// an integer are returned in skipped so callers can report them.
func NextID(records []interfaces.Requirement) (string, []interfaces.Requirement) {
	highest := new(big.Int)
	var skipped []interfaces.Requirement
	for _, record := range records {
		value, ok := numericID(record.ID)
		if !ok {
			skipped = append(skipped, record)
			continue
		}
		if value.Cmp(highest) > 0 {
			highest = value
		}
	}
	return new(big.Int).Add(highest, big.NewInt(1)).String(), skipped
}

func numericID(id string) (*big.Int, bool) {
	id = strings.TrimSpace(id)
	value, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return nil, false
	}
	return value, true
}

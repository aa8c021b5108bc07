package formatter

import (
	"fmt"
	"sort"
)

// SortOrder defines how table keys are ordered when rendered in tree
// and list modes. JSON/TOML/YAML modes keep the decoder's map order.
type SortOrder string

const (
	SortNone       SortOrder = "none"
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// ValidateSortOrder returns an error when s is not a known sort order
// spelling.
func ValidateSortOrder(s string) error {
	switch s {
	case "", "none", "asc", "ascending", "desc", "descending":
		return nil
	}
	return fmt.Errorf("invalid sort order %q: valid values are none, asc, desc", s)
}

// ParseSortOrder maps flag spellings to a SortOrder, defaulting to none.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "ascending", "asc":
		return SortAscending
	case "descending", "desc":
		return SortDescending
	default:
		return SortNone
	}
}

// SortedKeys returns the table keys ordered per the sort order. With
// SortNone the keys are still sorted: Go map iteration is random and
// the output must stay deterministic.
func SortedKeys(m map[string]any, order SortOrder) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	switch order {
	case SortAscending:
		sort.Strings(keys)
	case SortDescending:
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	case SortNone:
		// Go map iteration is random; sort for stable output anyway.
		sort.Strings(keys)
	}
	return keys
}

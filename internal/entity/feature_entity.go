// FILE: internal/entity/feature_entity.go
// Domain entity for license features
package entity

// Feature is a license checkout category tracked for usage and visibility
type Feature struct {
	Id          uint
	Name        string
	Label       string // Optional description, "" when absent
	ShowInLists bool   // Visible in usage listings
	IsTracked   bool   // Usage is collected for this feature
}

// IsBlank reports whether every field of a looked-up row is empty.
// Such rows are treated as absent by the catalog.
func (f *Feature) IsBlank() bool {
	return f.Name == "" && f.Label == "" && !f.ShowInLists && !f.IsTracked
}

// FlagColumn is the closed set of boolean feature columns that can be toggled.
type FlagColumn int

const (
	ShowInListsColumn FlagColumn = iota + 1
	IsTrackedColumn
)

// ParseFlagColumn maps a raw column token onto the enumeration.
// Only exact matches are accepted.
func ParseFlagColumn(token string) (FlagColumn, bool) {
	switch token {
	case "show_in_lists":
		return ShowInListsColumn, true
	case "is_tracked":
		return IsTrackedColumn, true
	default:
		return 0, false
	}
}

func (c FlagColumn) String() string {
	switch c {
	case ShowInListsColumn:
		return "show_in_lists"
	case IsTrackedColumn:
		return "is_tracked"
	default:
		return "unknown"
	}
}

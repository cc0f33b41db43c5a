package specification

import "gorm.io/gorm"

// NameSearch returns the name predicate for a search token:
// Unfiltered when the token is empty, Filtered otherwise.
// List, count and bulk toggle must all be built from the same value.
func NameSearch(token string) Specification {
	if token == "" {
		return Unfiltered{}
	}
	return Filtered{Token: token}
}

// Filtered restricts features to names matching Token as a
// case-insensitive regular expression.
type Filtered struct {
	Token string
}

func (s Filtered) Apply(db *gorm.DB) *gorm.DB {
	switch db.Dialector.Name() {
	case "postgres":
		return db.Where("name ~* ?", s.Token)
	default:
		// sqlite with the regexp() function registered by pkg/database
		return db.Where("name REGEXP ?", s.Token)
	}
}

// Unfiltered adds no predicate at all.
type Unfiltered struct{}

func (s Unfiltered) Apply(db *gorm.DB) *gorm.DB {
	return db
}

// PageOf selects the rows of one listing page: id ascending, sliced by offset and limit.
func PageOf(offset, limit int) []Specification {
	return []Specification{
		OrderBy{Field: "id"},
		Pagination{Limit: limit, Offset: offset},
	}
}

package genre

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Genre is a book category such as "Science Fiction".
//
// Names are unique regardless of case: "Fantasy" and "fantasy" cannot both
// exist. The stored name keeps the casing it was created with.
type Genre struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// Global field names for validation
const (
	FieldName = "name"
)

const MaxNameLength = 200

// NormalizeName trims surrounding whitespace and applies Unicode NFC so that
// precomposed and combining spellings of the same name are stored alike.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// FoldName returns the case-folded key two names are compared by.
func FoldName(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

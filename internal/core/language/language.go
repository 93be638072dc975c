package language

// Language is a natural language a book may be written in (e.g. "English").
// Names are not required to be unique.
type Language struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// Global field names for validation
const (
	FieldName = "name"
)

const MaxNameLength = 200

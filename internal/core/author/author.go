package author

import "github.com/taibuivan/locallibrary/pkg/date"

// Author represents the writer of one or more books.
// Duplicate names are allowed; the id is the identity.
type Author struct {
	ID          int64      `json:"id"            db:"id"`
	FirstName   string     `json:"first_name"    db:"first_name"`
	LastName    string     `json:"last_name"     db:"last_name"`
	DateOfBirth *date.Date `json:"date_of_birth" db:"date_of_birth"`
	DateOfDeath *date.Date `json:"date_of_death" db:"date_of_death"`
}

// DisplayName renders the author as "last_name, first_name".
func (author *Author) DisplayName() string {
	return author.LastName + ", " + author.FirstName
}

// Global field names for validation
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"
)

const MaxNameLength = 100

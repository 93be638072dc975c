package instance

import (
	"time"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// Status is the availability of a physical copy.
type Status string

const (
	StatusMaintenance Status = "maintenance"
	StatusOnLoan      Status = "on_loan"
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved}
}

func (status Status) IsValid() bool {
	switch status {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

// Label is the human readable form shown to patrons.
func (status Status) Label() string {
	switch status {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	}
	return string(status)
}

// ClearsDueBack reports whether entering status drops the due date.
func (status Status) ClearsDueBack() bool {
	return status == StatusAvailable || status == StatusMaintenance
}

// Instance is one physical copy of a book.
type Instance struct {
	ID      string     `json:"id"       db:"id"`
	BookID  *int64     `json:"book_id"  db:"book_id"`
	Imprint string     `json:"imprint"  db:"imprint"`
	DueBack *date.Date `json:"due_back" db:"due_back"`
	Status  Status     `json:"status"   db:"status"`
}

// IsOverdue reports whether the copy is on loan past its due date.
func (instance *Instance) IsOverdue(today date.Date) bool {
	return instance.Status == StatusOnLoan && instance.DueBack != nil && instance.DueBack.Before(today)
}

// Filter narrows ListInstances. Nil fields are ignored.
type Filter struct {
	BookID *int64
	Status *Status
}

// StatusChange is the single write applied to status and due_back.
type StatusChange struct {
	InstanceID string
	Status     Status
	DueBack    *date.Date

	// RetainDueBack leaves the stored due date untouched and ignores DueBack.
	RetainDueBack bool
}

// Transition records one committed status change for the lending feed.
type Transition struct {
	InstanceID string     `json:"instance_id"`
	BookID     *int64     `json:"book_id"`
	From       Status     `json:"from"`
	To         Status     `json:"to"`
	DueBack    *date.Date `json:"due_back"`
	At         time.Time  `json:"at"`
}

// Global field names for validation
const (
	FieldBookID  = "book_id"
	FieldImprint = "imprint"
	FieldStatus  = "status"
	FieldDueBack = "due_back"
)

const MaxImprintLength = 200

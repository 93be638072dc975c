package language

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLanguages(context context.Context) ([]*Language, error)
	GetLanguage(context context.Context, id int64) (*Language, error)
	CreateLanguage(context context.Context, language *Language) error
	RenameLanguage(context context.Context, language *Language) error

	// DeleteLanguage fails with a REFERENTIAL_CONSTRAINT error while any book
	// is written in the language.
	DeleteLanguage(context context.Context, id int64) error
}

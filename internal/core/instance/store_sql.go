package instance

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

var (
	errNotFound     = apperr.NotFound("Book instance")
	errBookNotFound = apperr.NotFound("Book")
)

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repository *SQLRepository) ListInstances(context context.Context, filter Filter) ([]*Instance, error) {
	query := repository.db.From(schema.BookInstance.Table).
		Select(schema.BookInstance.Columns()...).
		Order(goqu.C(schema.BookInstance.DueBack).Asc().NullsLast(), goqu.C(schema.BookInstance.ID).Asc())

	if filter.BookID != nil {
		query = query.Where(goqu.C(schema.BookInstance.BookID).Eq(*filter.BookID))
	}

	if filter.Status != nil {
		query = query.Where(goqu.C(schema.BookInstance.Status).Eq(string(*filter.Status)))
	}

	instances := make([]*Instance, 0)
	if err := database.Select(context, repository.db, &instances, query); err != nil {
		return nil, dberr.Wrap(err, "list_instances")
	}
	return instances, nil
}

func (repository *SQLRepository) GetInstance(context context.Context, id string) (*Instance, error) {
	instance, err := repository.get(context, repository.db, id, false)
	if err != nil {
		return nil, dberr.Wrap(err, "get_instance")
	}
	return instance, nil
}

// CreateInstance inserts instance. The service guarantees BookID is set.
func (repository *SQLRepository) CreateInstance(context context.Context, instance *Instance) error {
	err := repository.db.WithTx(context, "create_instance", func(tx *sqlx.Tx) error {
		found, err := database.Exists(context, tx, repository.db.From(schema.Book.Table).
			Where(goqu.C(schema.Book.ID).Eq(*instance.BookID)))
		if err != nil {
			return dberr.Wrap(err, "check_instance_book")
		}
		if !found {
			return errBookNotFound
		}

		_, err = database.Exec(context, tx, repository.db.Insert(schema.BookInstance.Table).Rows(goqu.Record{
			schema.BookInstance.ID:      instance.ID,
			schema.BookInstance.BookID:  *instance.BookID,
			schema.BookInstance.Imprint: instance.Imprint,
			schema.BookInstance.DueBack: database.Nullable(instance.DueBack),
			schema.BookInstance.Status:  string(instance.Status),
		}))
		if err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return errBookNotFound
			}
			return dberr.Wrap(err, "insert_instance")
		}
		return nil
	})

	return dberr.Wrap(err, "create_instance")
}

func (repository *SQLRepository) SetStatus(context context.Context, change StatusChange) (*Instance, Status, error) {
	var updated *Instance
	var previous Status

	err := repository.db.WithTx(context, "set_instance_status", func(tx *sqlx.Tx) error {

		// 1. Read (and lock) the current row
		current, err := repository.get(context, tx, change.InstanceID, repository.db.SupportsRowLocks())
		if err != nil {
			return err
		}
		previous = current.Status

		// 2. Status and due date move together in one statement
		values := goqu.Record{schema.BookInstance.Status: string(change.Status)}
		if !change.RetainDueBack {
			values[schema.BookInstance.DueBack] = database.Nullable(change.DueBack)
		}

		if _, err := database.Exec(context, tx, repository.db.Update(schema.BookInstance.Table).
			Set(values).
			Where(goqu.C(schema.BookInstance.ID).Eq(change.InstanceID))); err != nil {
			return dberr.Wrap(err, "update_instance_status")
		}

		// 3. Return the committed shape
		updated, err = repository.get(context, tx, change.InstanceID, false)
		return err
	})

	if err != nil {
		return nil, "", dberr.Wrap(err, "set_instance_status")
	}
	return updated, previous, nil
}

func (repository *SQLRepository) DeleteInstance(context context.Context, id string) error {
	affected, err := database.ExecAffected(context, repository.db, repository.db.Delete(schema.BookInstance.Table).
		Where(goqu.C(schema.BookInstance.ID).Eq(id)))
	if err != nil {
		return dberr.Wrap(err, "delete_instance")
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

// get loads one copy through querier, optionally with a row lock.
func (repository *SQLRepository) get(context context.Context, querier database.Querier, id string, lock bool) (*Instance, error) {
	query := repository.db.From(schema.BookInstance.Table).
		Select(schema.BookInstance.Columns()...).
		Where(goqu.C(schema.BookInstance.ID).Eq(id))
	if lock {
		query = query.ForUpdate(exp.Wait)
	}

	instance := &Instance{}
	if err := database.Get(context, querier, instance, query); err != nil {
		if dberr.IsNoRows(err) {
			return nil, errNotFound
		}
		return nil, dberr.Wrap(err, "select_instance")
	}
	return instance, nil
}

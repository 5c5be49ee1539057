package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"lifeblog/internal/apperr"
)

const (
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
)

// classify maps driver errors onto the apperr taxonomy. Errors that are
// already classified pass through untouched.
func classify(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return apperr.Validation("unknown category id")
		case pqInvalidTextRepr:
			return apperr.Validation("malformed identifier")
		}
	}

	return apperr.Unavailable(message, err)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// withTx runs fn inside a transaction and rolls back on any error.
func withTx(ctx context.Context, db *sqlx.DB, message string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err, message)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return classify(err, message)
	}

	if err := tx.Commit(); err != nil {
		return classify(err, message)
	}

	return nil
}

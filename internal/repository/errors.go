package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"duty-roster-backend/internal/roster"
)

// translate maps gorm failures onto roster error kinds. Roster errors raised
// inside a transaction pass through untouched.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if roster.KindOf(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return roster.NotFound("%s: record not found", msg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return roster.Conflict(err, "%s: concurrent write on the same key", msg)
	}
	return errors.Wrap(err, msg)
}

// forUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
// SQLite serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

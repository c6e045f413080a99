// Package repositories wraps the database access of each model.
//
// Every repository works against database.DB by default; WithTx returns a
// copy bound to a transaction so multi-step writes share one handle.
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/xcursi322/prakt/pkg/orm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type base struct {
	tx *gorm.DB
}

func (b base) query() *orm.Query {
	if b.tx != nil {
		return orm.Use(b.tx)
	}
	return orm.DB()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Package storage implements the PostgreSQL persistence gateway for users,
// products, product images, orders and audit logs.
package storage

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrOrderDecided indicates an order already carries a different
	// terminal status and cannot be transitioned again.
	ErrOrderDecided = errors.New("storage: order already decided")
)

// Store bundles the repositories over a shared connection pool.
type Store struct {
	Users    *UserRepo
	Products *ProductRepo
	Images   *ImageRepo
	Orders   *OrderRepo
	Logs     *LogRepo
}

// New wires all repositories onto the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{
		Users:    &UserRepo{db: db},
		Products: &ProductRepo{db: db},
		Images:   &ImageRepo{db: db},
		Orders:   &OrderRepo{db: db},
		Logs:     &LogRepo{db: db},
	}
}

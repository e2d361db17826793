package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/config"
)

// Storage is the root handle on the relational store. Reads go through the
// shared Reader; writes go through a Writer bound to a single transaction.
type Storage struct {
	DB     bob.DB
	Reader *Reader
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		log.Fatal(err)
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     bobDB,
		Reader: NewReader(bobDB),
	}
}

// Write begins a transaction and returns a Writer scoped to it. The caller
// owns Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

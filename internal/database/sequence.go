package database

import (
	"context"
	"errors"
)

// ErrSequenceUnavailable is returned when the named sequence does not
// exist in the current deployment. Callers fall back rather than fail.
var ErrSequenceUnavailable = errors.New("sequence unavailable")

// NextSequence returns the next value of a store-native monotonic
// counter. Atomicity under concurrent callers is the store's guarantee,
// not ours: postgres uses a real sequence, sqlite a single-statement
// counter update.
func (s *DB) NextSequence(ctx context.Context, name string) (int64, error) {
	log := s.log.Function("NextSequence")

	var next int64
	if s.driver == "postgres" {
		err := s.SQLWithContext(ctx).
			Raw("SELECT nextval(?::regclass)", name).
			Scan(&next).Error
		if err != nil {
			return 0, log.Err("failed to read postgres sequence", ErrSequenceUnavailable, "name", name, "cause", err)
		}
		return next, nil
	}

	tx := s.SQLWithContext(ctx).
		Raw("UPDATE sequences SET value = value + 1 WHERE name = ? RETURNING value", name).
		Scan(&next)
	if tx.Error != nil {
		return 0, log.Err("failed to advance sqlite counter", ErrSequenceUnavailable, "name", name, "cause", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return 0, log.Err("counter row missing", ErrSequenceUnavailable, "name", name)
	}

	return next, nil
}

// EnsureSequence creates the sqlite counter row when absent. Postgres
// sequences are created by the SQL migrations instead.
func (s *DB) EnsureSequence(ctx context.Context, name string, start int64) error {
	if s.driver == "postgres" {
		return nil
	}

	return s.SQLWithContext(ctx).
		Exec("INSERT INTO sequences (name, value) VALUES (?, ?) ON CONFLICT (name) DO NOTHING", name, start).
		Error
}

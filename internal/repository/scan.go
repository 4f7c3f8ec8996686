package repository

import (
	"errors"
	"fmt"

	"edge_api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

// rowScanner общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

// wrapNotFound превращает pgx.ErrNoRows в storage.ErrNotFound
func wrapNotFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// pageOffset смещение для limit/offset/page
func pageOffset(limit, offset, page int) uint64 {
	if offset > 0 {
		return uint64(offset)
	}
	if page > 1 {
		return uint64((page - 1) * limit)
	}
	return 0
}

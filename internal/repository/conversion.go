// Package repository contains data access abstractions for conversion history.
// Implementations live in subpackages (e.g. postgres).
package repository

import (
	"context"

	"pdfdocx/internal/model"
)

// ConversionRepository stores conversion metadata. No business logic here.
type ConversionRepository interface {
	// Create inserts a record and returns it as stored.
	Create(ctx context.Context, rec *model.ConversionRecord) (*model.ConversionRecord, error)

	// FindByID returns a record by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.ConversionRecord, error)

	// List returns a page of records, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ConversionRecord], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

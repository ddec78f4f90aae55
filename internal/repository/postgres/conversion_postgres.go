package postgres

import (
	"context"
	"database/sql"

	"pdfdocx/internal/model"
	"pdfdocx/internal/repository"
)

// ConversionPostgres is a PostgreSQL implementation of repository.ConversionRepository.
type ConversionPostgres struct {
	db *sql.DB
}

func NewConversionPostgres(db *sql.DB) *ConversionPostgres {
	return &ConversionPostgres{db: db}
}

var _ repository.ConversionRepository = (*ConversionPostgres)(nil)

const columns = `id, source_filename, result_filename, mode, page_start, page_end, page_count,
		source_size, result_size, status, error, storage_path, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.ConversionRecord, error) {
	var (
		rec        model.ConversionRecord
		mode       string
		start, end sql.NullInt32
	)
	if err := s.Scan(
		&rec.ID,
		&rec.SourceFilename,
		&rec.ResultFilename,
		&mode,
		&start,
		&end,
		&rec.PageCount,
		&rec.SourceSize,
		&rec.ResultSize,
		&rec.Status,
		&rec.Error,
		&rec.StoragePath,
		&rec.DurationMS,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.Mode = model.Mode(mode)
	if start.Valid {
		v := int(start.Int32)
		rec.PageStart = &v
	}
	if end.Valid {
		v := int(end.Int32)
		rec.PageEnd = &v
	}
	return &rec, nil
}

func nullInt(p *int) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*p), Valid: true}
}

// Create inserts a record and returns the stored row.
func (r *ConversionPostgres) Create(ctx context.Context, rec *model.ConversionRecord) (*model.ConversionRecord, error) {
	q := `
		INSERT INTO conversions (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + columns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.SourceFilename,
		rec.ResultFilename,
		string(rec.Mode),
		nullInt(rec.PageStart),
		nullInt(rec.PageEnd),
		rec.PageCount,
		rec.SourceSize,
		rec.ResultSize,
		rec.Status,
		rec.Error,
		rec.StoragePath,
		rec.DurationMS,
		rec.CreatedAt,
	)
	return scanRecord(row)
}

// FindByID fetches a single record. It returns sql.ErrNoRows when absent.
func (r *ConversionPostgres) FindByID(ctx context.Context, id string) (*model.ConversionRecord, error) {
	q := `SELECT ` + columns + ` FROM conversions WHERE id = $1`
	return scanRecord(r.db.QueryRowContext(ctx, q, id))
}

// List returns records newest first using LIMIT/OFFSET and a total count.
func (r *ConversionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ConversionRecord], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + columns + ` FROM conversions ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ConversionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ConversionRecord]{Items: items, Total: total}, nil
}

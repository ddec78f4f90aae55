package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfdocx/internal/model"
	"pdfdocx/internal/repository"
)

var recordColumns = []string{
	"id", "source_filename", "result_filename", "mode", "page_start", "page_end", "page_count",
	"source_size", "result_size", "status", "error", "storage_path", "duration_ms", "created_at",
}

func TestConversionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	start, end := 2, 4
	rec := &model.ConversionRecord{
		ID:             "conv-1",
		SourceFilename: "report.pdf",
		ResultFilename: "report.docx",
		Mode:           model.ModeTextPreserving,
		PageStart:      &start,
		PageEnd:        &end,
		PageCount:      3,
		SourceSize:     2048,
		ResultSize:     4096,
		Status:         model.StatusSucceeded,
		StoragePath:    "conversions/conv-1.docx",
		DurationMS:     12,
		CreatedAt:      now,
	}

	rows := sqlmock.NewRows(recordColumns).
		AddRow(rec.ID, rec.SourceFilename, rec.ResultFilename, "text", 2, 4, 3, 2048, 4096, "succeeded", "", rec.StoragePath, 12, now)

	mock.ExpectQuery("INSERT INTO conversions").
		WithArgs(rec.ID, rec.SourceFilename, rec.ResultFilename, "text", 2, 4, 3, int64(2048), int64(4096),
			model.StatusSucceeded, "", rec.StoragePath, int64(12), now).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, rec)

	require.NoError(t, err)
	assert.Equal(t, rec.ID, result.ID)
	assert.Equal(t, model.ModeTextPreserving, result.Mode)
	require.NotNil(t, result.PageStart)
	assert.Equal(t, 2, *result.PageStart)
	assert.Equal(t, 4, *result.PageEnd)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_CreateAllPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewConversionPostgres(db)
	now := time.Now().UTC()
	rec := &model.ConversionRecord{
		ID:             "conv-2",
		SourceFilename: "scan.pdf",
		ResultFilename: "scan.docx",
		Mode:           model.ModeImageFallback,
		PageCount:      5,
		Status:         model.StatusSucceeded,
		CreatedAt:      now,
	}

	rows := sqlmock.NewRows(recordColumns).
		AddRow(rec.ID, rec.SourceFilename, rec.ResultFilename, "image", nil, nil, 5, 0, 0, "succeeded", "", "", 0, now)

	mock.ExpectQuery("INSERT INTO conversions").
		WithArgs(rec.ID, rec.SourceFilename, rec.ResultFilename, "image", nil, nil, 5, int64(0), int64(0),
			model.StatusSucceeded, "", "", int64(0), now).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), rec)

	require.NoError(t, err)
	assert.Nil(t, result.PageStart)
	assert.Nil(t, result.PageEnd)
	assert.Equal(t, model.ModeImageFallback, result.Mode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(recordColumns).
			AddRow("conv-1", "a.pdf", "a.docx", "image", 1, 1, 1, 10, 20, "succeeded", "", "conversions/conv-1.docx", 3, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM conversions WHERE id = ?").
			WithArgs("conv-1").
			WillReturnRows(rows)

		rec, err := repo.FindByID(ctx, "conv-1")

		assert.NoError(t, err)
		assert.Equal(t, "conv-1", rec.ID)
		assert.Equal(t, "conversions/conv-1.docx", rec.StoragePath)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM conversions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(recordColumns).
			AddRow("2", "b.pdf", "b.docx", "text", nil, nil, 4, 10, 20, "succeeded", "", "", 5, time.Now()).
			AddRow("1", "a.pdf", "a.docx", "image", 1, 2, 2, 10, 20, "failed", "conversion failed: boom", "", 5, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM conversions ORDER BY created_at DESC").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "2", res.Items[0].ID)
		assert.Equal(t, model.StatusFailed, res.Items[1].Status)
		assert.Equal(t, "conversion failed: boom", res.Items[1].Error)
	})

	t.Run("count fails", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM conversions").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM conversions ORDER BY created_at DESC").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(recordColumns))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 20})

		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

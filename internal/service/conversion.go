package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/metrics"
	"pdfdocx/internal/model"
	"pdfdocx/internal/repository"
	"pdfdocx/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("conversion not found")
	ErrHistoryDisabled = errors.New("conversion history is disabled")
	ErrNotArchived     = errors.New("conversion result was not archived")
	ErrUnreadablePDF   = errors.New("unreadable pdf")
)

// Dispatcher routes a validated request to a converter.
type Dispatcher interface {
	Convert(ctx context.Context, doc model.UploadedDocument, req model.ConversionRequest) (*model.ConversionResult, error)
}

// Inspector reports page information about a PDF.
type Inspector interface {
	Inspect(data []byte) (*model.DocumentInfo, error)
}

// ConversionListResult is the service-level DTO for paginated history.
type ConversionListResult struct {
	Items []model.ConversionRecord `json:"data"`
	Total int                      `json:"total"`
}

// ConversionService defines the conversion use cases.
type ConversionService interface {
	// Convert runs one conversion. When archiving or history is configured the result is
	// stored as a side effect; failures there are logged and never fail the conversion.
	Convert(ctx context.Context, doc model.UploadedDocument, req model.ConversionRequest) (*model.ConversionResult, error)

	// Inspect reports the page count and page sizes of a PDF.
	Inspect(ctx context.Context, data []byte) (*model.DocumentInfo, error)

	// History returns recorded conversions using limit/offset and a total count.
	History(ctx context.Context, limit, offset int) (*ConversionListResult, error)

	// Record returns a single recorded conversion by ID.
	Record(ctx context.Context, id string) (*model.ConversionRecord, error)

	// OpenResult streams the archived DOCX of a recorded conversion.
	OpenResult(ctx context.Context, id string) (io.ReadCloser, *model.ConversionRecord, error)
}

// Options configure the optional parts of the service. A nil Store disables
// archiving and a nil Repo disables history.
type Options struct {
	Store     storage.Storage
	Repo      repository.ConversionRepository
	Metrics   *metrics.Conversion
	Logger    *slog.Logger
	Timeout   time.Duration
	URLExpiry time.Duration
}

type conversionService struct {
	dispatcher Dispatcher
	inspector  Inspector
	store      storage.Storage
	repo       repository.ConversionRepository
	metrics    *metrics.Conversion
	log        *slog.Logger
	timeout    time.Duration
	urlExpiry  time.Duration

	now   func() time.Time
	newID func() string
}

// NewConversionService constructs a new ConversionService.
func NewConversionService(d Dispatcher, insp Inspector, opts Options) ConversionService {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	expiry := opts.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &conversionService{
		dispatcher: d,
		inspector:  insp,
		store:      opts.Store,
		repo:       opts.Repo,
		metrics:    opts.Metrics,
		log:        log,
		timeout:    opts.Timeout,
		urlExpiry:  expiry,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
}

func archiveKey(id string) string {
	return "conversions/" + id + ".docx"
}

func (s *conversionService) Convert(ctx context.Context, doc model.UploadedDocument, req model.ConversionRequest) (*model.ConversionResult, error) {
	id := s.newID()
	started := s.now()

	convCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		convCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.dispatcher.Convert(convCtx, doc, req)
	elapsed := s.now().Sub(started)
	if err != nil {
		if !convert.IsValidation(err) && errors.Is(convCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("conversion timed out after %s: %w", s.timeout, context.DeadlineExceeded)
		}
		outcome := classify(err)
		s.metrics.Observe(string(req.Mode), outcome, elapsed, 0)
		s.log.Warn("conversion_failed",
			slog.String("conversion_id", id),
			slog.String("mode", string(req.Mode)),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		if outcome != metrics.OutcomeInvalid {
			rec := s.newRecord(id, doc, req, elapsed)
			rec.Status = model.StatusFailed
			rec.Error = err.Error()
			s.saveRecord(context.WithoutCancel(ctx), rec)
		}
		return nil, err
	}

	res.ID = id
	s.metrics.Observe(string(req.Mode), metrics.OutcomeSuccess, elapsed, res.PageCount)

	// Persistence uses the caller's context without the conversion deadline.
	persistCtx := context.WithoutCancel(ctx)
	rec := s.newRecord(id, doc, req, elapsed)
	rec.ResultFilename = res.Filename
	rec.PageCount = res.PageCount
	rec.ResultSize = int64(len(res.Data))
	rec.Status = model.StatusSucceeded

	if s.store != nil {
		rec.StoragePath, res.DownloadURL = s.archive(persistCtx, id, doc.Filename, res)
	}
	if !s.saveRecord(persistCtx, rec) && rec.StoragePath != "" {
		// Rollback: an archived object without a history row is unreachable.
		if delErr := s.store.Delete(persistCtx, rec.StoragePath); delErr != nil {
			s.log.Error("archive_rollback_failed",
				slog.String("conversion_id", id),
				slog.String("error", delErr.Error()),
			)
		}
		res.DownloadURL = ""
	}

	s.log.Info("conversion_succeeded",
		slog.String("conversion_id", id),
		slog.String("mode", string(req.Mode)),
		slog.Int("pages", res.PageCount),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
	return res, nil
}

// archive uploads the result and returns its key and a presigned download URL.
// Both are empty when the upload fails.
func (s *conversionService) archive(ctx context.Context, id, sourceName string, res *model.ConversionResult) (string, string) {
	key := archiveKey(id)
	info, err := s.store.Put(ctx, key, bytes.NewReader(res.Data), storage.PutObjectOptions{
		Size:        int64(len(res.Data)),
		ContentType: res.ContentType,
		Metadata: map[string]string{
			"original-filename": sourceName,
			"result-filename":   res.Filename,
		},
	})
	if err != nil {
		s.log.Error("archive_failed", slog.String("conversion_id", id), slog.String("error", err.Error()))
		return "", ""
	}
	if info.Key != "" {
		key = info.Key
	}
	url, err := s.store.PresignGet(ctx, key, s.urlExpiry)
	if err != nil {
		s.log.Warn("presign_failed", slog.String("conversion_id", id), slog.String("error", err.Error()))
		return key, ""
	}
	return key, url
}

// saveRecord reports whether the record was stored. It is a no-op returning
// true when history is disabled.
func (s *conversionService) saveRecord(ctx context.Context, rec *model.ConversionRecord) bool {
	if s.repo == nil {
		return true
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("history_save_failed",
			slog.String("conversion_id", rec.ID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (s *conversionService) newRecord(id string, doc model.UploadedDocument, req model.ConversionRequest, elapsed time.Duration) *model.ConversionRecord {
	rec := &model.ConversionRecord{
		ID:             id,
		SourceFilename: doc.Filename,
		ResultFilename: convert.ResultFilename(doc.Filename),
		Mode:           req.Mode,
		SourceSize:     int64(len(doc.Data)),
		DurationMS:     elapsed.Milliseconds(),
		CreatedAt:      s.now(),
	}
	if req.Pages != nil {
		start, end := req.Pages.Start, req.Pages.End
		rec.PageStart = &start
		rec.PageEnd = &end
	}
	return rec
}

func classify(err error) string {
	switch {
	case convert.IsValidation(err):
		return metrics.OutcomeInvalid
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case convert.IsConversion(err):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomeUnexpected
	}
}

func (s *conversionService) Inspect(ctx context.Context, data []byte) (*model.DocumentInfo, error) {
	if len(data) == 0 {
		return nil, &convert.ValidationError{Field: "file", Reason: "uploaded document is empty", Err: convert.ErrEmptyDocument}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := s.inspector.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	return info, nil
}

// History returns paginated records without exposing repository types.
func (s *conversionService) History(ctx context.Context, limit, offset int) (*ConversionListResult, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ConversionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *conversionService) Record(ctx context.Context, id string) (*model.ConversionRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *conversionService) OpenResult(ctx context.Context, id string) (io.ReadCloser, *model.ConversionRecord, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.store == nil || rec.StoragePath == "" {
		return nil, nil, ErrNotArchived
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open archived result: %w", err)
	}
	return rc, rec, nil
}

package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"firsgate/internal/domain"
	"firsgate/internal/index"
	"firsgate/internal/irn"
	"firsgate/internal/logger"
	"firsgate/internal/port"
	"firsgate/internal/upstream"
	"firsgate/internal/validator"
)

// Pipeline stage names, in run order.
const (
	StageValidation     = "validation"
	StageIRNProcessing  = "irn_processing"
	StageDuplicateCheck = "duplicate_check"
	StageSaveJSON       = "save_json"
	StageEncryption     = "encryption"
	StageSaveBase64     = "save_base64"
	StageQRGeneration   = "qr_generation"
	StageSaveRecord     = "save_record"
	StageFIRSAPI        = "firs_api"
	StageArchive        = "archive"
)

const (
	handlerProcessing = "invoice_processing"
	handlerSubmission = "firs_api_submission"
	handlerArchive    = "artifact_archive"
)

// SigningService runs the invoice signing pipeline.
type SigningService interface {
	Sign(ctx context.Context, inv domain.Invoice) (*domain.SignedInvoice, error)
}

type signingService struct {
	validator *validator.Engine
	index     port.InvoiceIndex
	store     port.ArtifactStore
	encryptor port.Encryptor
	upstream  port.UpstreamClient
	activity  port.ActivityLog
	archiver  port.Archiver // nil disables the archive stage
	now       func() time.Time
	log       zerolog.Logger
}

// SigningOption customizes the signing service.
type SigningOption func(*signingService)

// WithArchiver enables the best-effort archive stage.
func WithArchiver(a port.Archiver) SigningOption {
	return func(s *signingService) { s.archiver = a }
}

// WithClock sets the time source used for signed IRNs and signed_at.
func WithClock(now func() time.Time) SigningOption {
	return func(s *signingService) { s.now = now }
}

// NewSigningService creates a new SigningService implementation.
func NewSigningService(
	engine *validator.Engine,
	idx port.InvoiceIndex,
	store port.ArtifactStore,
	encryptor port.Encryptor,
	upstreamClient port.UpstreamClient,
	activity port.ActivityLog,
	opts ...SigningOption,
) SigningService {
	s := &signingService{
		validator: engine,
		index:     idx,
		store:     store,
		encryptor: encryptor,
		upstream:  upstreamClient,
		activity:  activity,
		now:       time.Now,
		log:       logger.WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type stopwatch struct {
	start   time.Time
	timings map[string]float64
	failed  domain.CallSite // where the last failing stage was run
}

func newStopwatch() *stopwatch {
	return &stopwatch{start: time.Now(), timings: make(map[string]float64)}
}

func millis(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}

// lap runs fn and records its duration under stage. A failing stage also
// records the line that ran it.
func (sw *stopwatch) lap(stage string, fn func() error) error {
	t := time.Now()
	err := fn()
	sw.timings[stage] = millis(time.Since(t))
	if err != nil {
		if _, file, line, ok := runtime.Caller(1); ok {
			sw.failed = domain.CallSite{File: file, Line: line}
		}
	}
	return err
}

func (sw *stopwatch) performance() domain.Performance {
	return domain.Performance{
		TotalTimeMS: millis(time.Since(sw.start)),
		Timings:     sw.timings,
	}
}

// Sign validates inv, signs its IRN, writes the artifacts, records the index
// entry, and submits the invoice upstream. Upstream and archive failures are
// logged and reported in the result without failing the call.
func (s *signingService) Sign(ctx context.Context, inv domain.Invoice) (*domain.SignedInvoice, error) {
	sw := newStopwatch()

	var result domain.ValidationResult
	_ = sw.lap(StageValidation, func() error {
		result = s.validator.ValidateFull(ctx, inv)
		return nil
	})
	if !result.Valid {
		return nil, &ValidationError{Result: result, Performance: sw.performance()}
	}

	var id, signedIRN string
	signedAt := s.now()
	if err := sw.lap(StageIRNProcessing, func() error {
		var err error
		id, err = irn.Extract(inv)
		if err != nil {
			return err
		}
		signedIRN = irn.FormatSigned(id, signedAt)
		return nil
	}); err != nil {
		// Unreachable for invoices that passed the IRN format rule.
		return nil, &ValidationError{
			Result: domain.ValidationResult{
				Errors: []domain.ValidationIssue{{Field: "irn", Message: err.Error()}},
			},
			Performance: sw.performance(),
		}
	}

	if err := sw.lap(StageDuplicateCheck, func() error {
		dup, err := s.index.IsDuplicate(ctx, id)
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrDuplicateIRN
		}
		return nil
	}); err != nil {
		if errors.Is(err, domain.ErrDuplicateIRN) {
			return nil, &ConflictError{IRN: id, Performance: sw.performance()}
		}
		return nil, s.fail(ctx, sw, id, StageDuplicateCheck, err)
	}

	var files domain.SignedFiles
	if err := sw.lap(StageSaveJSON, func() (err error) {
		files.JSON, err = s.store.SaveJSON(signedIRN, inv)
		return err
	}); err != nil {
		return nil, s.fail(ctx, sw, id, StageSaveJSON, err)
	}

	var encrypted string
	if err := sw.lap(StageEncryption, func() (err error) {
		encrypted, err = s.encryptor.Encrypt(id, signedIRN)
		return err
	}); err != nil {
		return nil, s.fail(ctx, sw, id, StageEncryption, err)
	}

	if err := sw.lap(StageSaveBase64, func() (err error) {
		files.Encrypted, err = s.store.SaveEncrypted(signedIRN, encrypted)
		return err
	}); err != nil {
		return nil, s.fail(ctx, sw, id, StageSaveBase64, err)
	}

	if err := sw.lap(StageQRGeneration, func() (err error) {
		files.QRCode, err = s.store.GenerateQR(signedIRN, encrypted)
		return err
	}); err != nil {
		return nil, s.fail(ctx, sw, id, StageQRGeneration, err)
	}

	if err := sw.lap(StageSaveRecord, func() error {
		rec := index.NewRecord(id, signedIRN, inv, files.Encrypted, files.QRCode, signedAt)
		return s.index.RecordSigned(ctx, &rec)
	}); err != nil {
		if errors.Is(err, domain.ErrDuplicateIRN) {
			return nil, &ConflictError{IRN: id, Performance: sw.performance()}
		}
		return nil, s.fail(ctx, sw, id, StageSaveRecord, err)
	}

	signed := &domain.SignedInvoice{
		IRN:           id,
		IRNSigned:     signedIRN,
		EncryptedData: encrypted,
		Files:         files,
	}

	submitted := true
	if s.upstream.Enabled() {
		_ = sw.lap(StageFIRSAPI, func() error {
			signed.UpstreamOutcome, submitted = s.submit(ctx, id, inv, files)
			return nil
		})
	}

	if s.archiver != nil {
		_ = sw.lap(StageArchive, func() error {
			s.archive(ctx, id, inv, files)
			return nil
		})
	}

	if submitted {
		s.activity.LogSuccess(ctx, domain.SuccessEvent{
			IRN:      id,
			HTTPCode: 200,
			Invoice:  inv,
			Files:    []string{files.JSON, files.Encrypted, files.QRCode},
		})
	}

	signed.Performance = sw.performance()
	s.log.Info().
		Str("irn", id).
		Str("irn_signed", signedIRN).
		Float64("total_time_ms", signed.Performance.TotalTimeMS).
		Msg("invoice signed")
	return signed, nil
}

// fail logs a local stage failure as an exception at the stage's call site
// and wraps it with the timings so far.
func (s *signingService) fail(ctx context.Context, sw *stopwatch, id, stage string, err error) error {
	s.activity.LogException(ctx, domain.ExceptionEvent{
		IRN:     id,
		Err:     err,
		Handler: handlerProcessing,
		Origin:  sw.failed,
		Context: map[string]any{"error_stage": stage},
	})
	s.log.Error().Err(err).Str("irn", id).Str("stage", stage).Msg("signing failed")
	return &ProcessingError{Stage: stage, Err: err, Performance: sw.performance()}
}

// submit forwards inv upstream. It reports false when the submission failed.
func (s *signingService) submit(ctx context.Context, id string, inv domain.Invoice, files domain.SignedFiles) (*domain.UpstreamResult, bool) {
	res, err := s.upstream.Submit(ctx, inv)
	if err == nil {
		return res, true
	}

	outcome := &domain.UpstreamResult{
		Status:  domain.UpstreamStatusError,
		Message: err.Error(),
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		outcome.HTTPCode = apiErr.HTTPCode
		outcome.Error = apiErr.ErrorJSON()

		handler := apiErr.Detail.Handler
		if handler == "" {
			handler = handlerSubmission
		}
		s.activity.LogError(ctx, domain.ErrorEvent{
			IRN:             id,
			HTTPCode:        apiErr.HTTPCode,
			ErrorType:       "firs_api_error",
			Handler:         handler,
			DetailedMessage: apiErr.Detail.Message,
			PublicMessage:   apiErr.Detail.PublicMessage,
			SourceFile:      "firs_api",
			Details:         apiErr.ErrorJSON(),
			Invoice:         inv,
		})
	} else {
		s.activity.LogException(ctx, domain.ExceptionEvent{
			IRN:     id,
			Err:     err,
			Handler: handlerSubmission,
			Context: map[string]any{
				"endpoint": upstream.PathSubmit,
				"files_created": map[string]string{
					"json":      filepath.Base(files.JSON),
					"encrypted": filepath.Base(files.Encrypted),
					"qr_code":   filepath.Base(files.QRCode),
				},
			},
		})
	}

	s.log.Warn().Err(err).Str("irn", id).Msg("upstream submission failed")
	return outcome, false
}

func (s *signingService) archive(ctx context.Context, id string, inv domain.Invoice, files domain.SignedFiles) {
	keys, err := s.archiver.Archive(ctx, inv.String("issue_date"), files.JSON, files.Encrypted, files.QRCode)
	if err == nil {
		s.log.Debug().Str("irn", id).Strs("keys", keys).Msg("artifacts archived")
		return
	}
	s.activity.LogError(ctx, domain.ErrorEvent{
		IRN:             id,
		HTTPCode:        500,
		ErrorType:       "archive_error",
		Handler:         handlerArchive,
		DetailedMessage: err.Error(),
		PublicMessage:   "Artifacts were saved locally but could not be archived",
		SourceFile:      "s3",
		Details:         map[string]any{"archived": keys},
		Invoice:         inv,
	})
}

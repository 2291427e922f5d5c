package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/Domenick1991/inflight/internal/metrics"
	"github.com/Domenick1991/inflight/internal/repository"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/Domenick1991/inflight/internal/service/scanner")

type ScannerUseCase interface {
	Verify(ctx context.Context, input VerifyInput) (*domain.Verification, error)
	VerifyBatch(ctx context.Context, input VerifyBatchInput) (*domain.BatchVerification, error)
}

type VerifyInput struct {
	QRURL     string
	FlightID  *int64
	EventType string
	AmountML  *float64
	UserID    *int64
}

type VerifyBatchInput struct {
	QRURLs []string
	// FlightID is accepted for symmetry with Verify; batch verification never records events.
	FlightID *int64
}

type ScannerService struct {
	codes    repository.KnownCodeRepository
	bottles  repository.BottleRepository
	recorder *EventRecorder
	metrics  *metrics.Scanner
}

type ScannerServiceOption func(*ScannerService)

func WithRecorder(recorder *EventRecorder) ScannerServiceOption {
	return func(s *ScannerService) {
		s.recorder = recorder
	}
}

func WithMetrics(m *metrics.Scanner) ScannerServiceOption {
	return func(s *ScannerService) {
		s.metrics = m
	}
}

func NewScannerService(codes repository.KnownCodeRepository, bottles repository.BottleRepository, opts ...ScannerServiceOption) *ScannerService {
	service := &ScannerService{codes: codes, bottles: bottles}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Verify resolves one payload. The bottle directory is consulted only for registered codes.
func (s *ScannerService) Verify(ctx context.Context, input VerifyInput) (*domain.Verification, error) {
	if strings.TrimSpace(input.QRURL) == "" {
		return nil, fmt.Errorf("%w: qr_url is required", domain.ErrValidation)
	}

	ctx, span := tracer.Start(ctx, "scanner.Verify")
	defer span.End()

	known, err := s.codes.Exists(ctx, input.QRURL)
	if err != nil {
		s.metrics.ObserveVerification(metrics.ModeSingle, metrics.OutcomeError)
		span.RecordError(err)
		return nil, fmt.Errorf("check known qr code: %w", err)
	}
	if !known {
		s.metrics.ObserveVerification(metrics.ModeSingle, metrics.OutcomeNotRecognized)
		return &domain.Verification{QRURL: input.QRURL, Reason: domain.ReasonNotRecognized}, nil
	}

	bottle, err := s.bottles.FindByQR(ctx, input.QRURL)
	if errors.Is(err, domain.ErrNotFound) {
		s.metrics.ObserveVerification(metrics.ModeSingle, metrics.OutcomeNoBottle)
		return &domain.Verification{QRURL: input.QRURL, Reason: domain.ReasonNoBottle}, nil
	}
	if err != nil {
		s.metrics.ObserveVerification(metrics.ModeSingle, metrics.OutcomeError)
		span.RecordError(err)
		return nil, fmt.Errorf("find bottle: %w", err)
	}

	span.SetAttributes(attribute.Int64("bottle.id", bottle.BottleID))
	s.metrics.ObserveVerification(metrics.ModeSingle, metrics.OutcomeVerified)

	if input.FlightID != nil && *input.FlightID > 0 && s.recorder != nil {
		fc := FlightContext{
			FlightID:  *input.FlightID,
			EventType: domain.EventType(input.EventType),
			AmountML:  input.AmountML,
			UserID:    input.UserID,
		}
		if rerr := s.recorder.Record(ctx, *bottle, fc); rerr != nil {
			s.metrics.ObserveRecorderFailure(rerr.Stage)
			zerolog.Ctx(ctx).Warn().
				Err(rerr).
				Int64("bottle_id", bottle.BottleID).
				Int64("flight_id", fc.FlightID).
				Msg("could not record bottle event")
		}
	}

	return &domain.Verification{QRURL: input.QRURL, Verified: true, Bottle: bottle}, nil
}

// VerifyBatch resolves every payload with one registry query and one directory query.
// Results keep input order and duplicates; a store fault fails the whole batch.
func (s *ScannerService) VerifyBatch(ctx context.Context, input VerifyBatchInput) (*domain.BatchVerification, error) {
	if len(input.QRURLs) == 0 {
		return nil, fmt.Errorf("%w: qr_urls must be a non-empty array", domain.ErrValidation)
	}

	ctx, span := tracer.Start(ctx, "scanner.VerifyBatch", trace.WithAttributes(attribute.Int("scanner.batch_size", len(input.QRURLs))))
	defer span.End()
	s.metrics.ObserveBatchSize(len(input.QRURLs))

	unique := dedupe(input.QRURLs)

	var (
		known   map[string]struct{}
		bottles map[string]domain.BottleSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.codes.ExistingAmong(gctx, unique)
		if err != nil {
			return fmt.Errorf("check known qr codes: %w", err)
		}
		known = res
		return nil
	})
	g.Go(func() error {
		res, err := s.bottles.FindByQRs(gctx, unique)
		if err != nil {
			return fmt.Errorf("find bottles: %w", err)
		}
		bottles = res
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObserveVerification(metrics.ModeBatch, metrics.OutcomeError)
		span.RecordError(err)
		return nil, err
	}

	results := make([]domain.Verification, 0, len(input.QRURLs))
	for _, qr := range input.QRURLs {
		if _, ok := known[qr]; !ok {
			s.metrics.ObserveVerification(metrics.ModeBatch, metrics.OutcomeNotRecognized)
			results = append(results, domain.Verification{QRURL: qr, Reason: domain.ReasonNotRecognized})
			continue
		}

		bottle, ok := bottles[qr]
		if !ok {
			s.metrics.ObserveVerification(metrics.ModeBatch, metrics.OutcomeNoBottle)
			results = append(results, domain.Verification{QRURL: qr, Reason: domain.ReasonNoBottle})
			continue
		}

		s.metrics.ObserveVerification(metrics.ModeBatch, metrics.OutcomeVerified)
		results = append(results, domain.Verification{QRURL: qr, Verified: true, Bottle: &bottle})
	}

	return &domain.BatchVerification{Results: results, Summary: domain.Summarize(results)}, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var _ ScannerUseCase = (*ScannerService)(nil)

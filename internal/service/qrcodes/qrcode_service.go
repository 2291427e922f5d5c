package qrcodes

import (
	"context"
	"fmt"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/Domenick1991/inflight/internal/repository"
	"github.com/rs/zerolog"
)

type QRCodeUseCase interface {
	ListKnownCodes(ctx context.Context) ([]domain.KnownCode, error)
	ListQRReferences(ctx context.Context, filter domain.QRReferenceFilter) ([]domain.QRCodeReference, error)
	RefreshKnownCodes(ctx context.Context) (int, error)
}

// KnownCodeCache stores the full registry listing. GetKnownCodes returns nil, nil on a miss.
type KnownCodeCache interface {
	GetKnownCodes(ctx context.Context) ([]domain.KnownCode, error)
	SetKnownCodes(ctx context.Context, codes []domain.KnownCode) error
}

type QRCodeService struct {
	codes   repository.KnownCodeRepository
	bottles repository.BottleRepository
	cache   KnownCodeCache
}

// NewQRCodeService creates the listing service. cache may be nil.
func NewQRCodeService(codes repository.KnownCodeRepository, bottles repository.BottleRepository, cache KnownCodeCache) *QRCodeService {
	return &QRCodeService{codes: codes, bottles: bottles, cache: cache}
}

func (s *QRCodeService) ListKnownCodes(ctx context.Context) ([]domain.KnownCode, error) {
	if s.cache != nil {
		cached, err := s.cache.GetKnownCodes(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("known codes cache read failed")
		}
	}

	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetKnownCodes(ctx, codes)
	}
	return codes, nil
}

func (s *QRCodeService) ListQRReferences(ctx context.Context, filter domain.QRReferenceFilter) ([]domain.QRCodeReference, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown bottle status %q", domain.ErrValidation, *filter.Status)
	}
	return s.bottles.ListQRReferences(ctx, filter)
}

// RefreshKnownCodes reloads the registry from the store and overwrites the cached listing.
func (s *QRCodeService) RefreshKnownCodes(ctx context.Context) (int, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return 0, err
	}
	if s.cache == nil {
		return len(codes), nil
	}
	if err := s.cache.SetKnownCodes(ctx, codes); err != nil {
		return 0, fmt.Errorf("write known codes cache: %w", err)
	}
	return len(codes), nil
}

var _ QRCodeUseCase = (*QRCodeService)(nil)

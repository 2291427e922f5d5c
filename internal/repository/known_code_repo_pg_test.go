package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/inflight/internal/domain"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestKnownCodeRepository_Exists(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    bool
		wantErr bool
	}{
		{
			name: "registered",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT qr_url FROM known_qr_codes WHERE qr_url = \$1`).
					WithArgs("Q1").
					WillReturnRows(pgxmock.NewRows([]string{"qr_url"}).AddRow("Q1"))
			},
			want: true,
		},
		{
			name: "not registered",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT qr_url FROM known_qr_codes WHERE qr_url = \$1`).
					WithArgs("Q1").
					WillReturnRows(pgxmock.NewRows([]string{"qr_url"}))
			},
			want: false,
		},
		{
			name: "storage fault",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT qr_url FROM known_qr_codes`).
					WithArgs("Q1").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setup(mock)
			repo := NewKnownCodeRepository(mock)

			got, err := repo.Exists(context.Background(), "Q1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKnownCodeRepository_ExistingAmong(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnownCodeRepository(mock)

	mock.ExpectQuery(`SELECT qr_url FROM known_qr_codes WHERE qr_url = ANY\(\$1\)`).
		WithArgs([]string{"Q1", "Q2", "Q9"}).
		WillReturnRows(pgxmock.NewRows([]string{"qr_url"}).AddRow("Q1").AddRow("Q2"))

	known, err := repo.ExistingAmong(context.Background(), []string{"Q1", "Q2", "Q9"})

	require.NoError(t, err)
	assert.Len(t, known, 2)
	assert.Contains(t, known, "Q1")
	assert.Contains(t, known, "Q2")
	assert.NotContains(t, known, "Q9")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnownCodeRepository_ExistingAmong_EmptyInputSkipsQuery(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnownCodeRepository(mock)

	known, err := repo.ExistingAmong(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, known)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnownCodeRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnownCodeRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM known_qr_codes\s+ORDER BY beverage_name`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "beverage_name", "qr_url", "created_at", "updated_at"}).
			AddRow(int64(1), "Beer", "Q1", now, now).
			AddRow(int64(2), "Red Wine", "Q2", now, now))

	codes, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, domain.KnownCode{ID: 1, BeverageName: "Beer", QRURL: "Q1", CreatedAt: now, UpdatedAt: now}, codes[0])
	assert.Equal(t, "Red Wine", codes[1].BeverageName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

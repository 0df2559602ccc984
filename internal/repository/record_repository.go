package repository

import (
	"context"

	"github.com/andresuchdata/paywatch/internal/domain"
)

// RecordRepository is the persistence contract for payment records. The
// postgres implementation lives in the postgres subpackage; tests use
// in-memory fakes.
type RecordRepository interface {
	Insert(ctx context.Context, rec domain.PaymentRecord) (int64, error)
	Get(ctx context.Context, id int64) (domain.PaymentRecord, error)
	GetAll(ctx context.Context) ([]domain.PaymentRecord, error)
	Update(ctx context.Context, rec domain.PaymentRecord) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

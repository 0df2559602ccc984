// internal/service/record_store.go
package service

import (
	"context"

	"github.com/andresuchdata/paywatch/internal/derive"
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/andresuchdata/paywatch/internal/repository"
	"github.com/rs/zerolog/log"
)

// RecordStore is the application-facing store for payment records. It owns
// the configured regulatory parameters and recomputes every derived field
// at write time, so persisted derivations are never stale and never
// trusted from the caller.
//
// Persistence failures are logged and surfaced as boolean/empty results:
// a broken store degrades the session, it does not crash it.
type RecordStore struct {
	repo   repository.RecordRepository
	params derive.Params
}

func NewRecordStore(repo repository.RecordRepository, params derive.Params) *RecordStore {
	return &RecordStore{repo: repo, params: params}
}

// Params returns the regulatory parameters this store derives with.
func (s *RecordStore) Params() derive.Params {
	return s.params
}

// Create derives and persists a record from its base fields, returning the
// assigned id. ok is false on any persistence failure.
func (s *RecordStore) Create(ctx context.Context, base domain.PaymentRecord) (int64, bool) {
	rec := derive.Apply(base, s.params)

	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		log.Error().Err(err).Str("supplier", base.SupplierName).Msg("failed to create payment record")
		return 0, false
	}
	return id, true
}

// ReadAll returns every stored record, or an empty slice on failure.
func (s *RecordStore) ReadAll(ctx context.Context) []domain.PaymentRecord {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read payment records")
		return nil
	}
	return records
}

// Update applies a base-field patch to an existing record, re-derives and
// persists it. Returns false when the id does not exist or persistence
// fails.
func (s *RecordStore) Update(ctx context.Context, id int64, patch domain.RecordPatch) bool {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to load payment record for update")
		return false
	}

	rec := derive.Apply(patch.ApplyTo(current), s.params)
	rec.ID = id

	ok, err := s.repo.Update(ctx, rec)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update payment record")
		return false
	}
	return ok
}

// Delete permanently removes one record. Returns false when the id does
// not exist or persistence fails.
func (s *RecordStore) Delete(ctx context.Context, id int64) bool {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete payment record")
		return false
	}
	return ok
}

// DeleteAll permanently empties the store. Confirmation is the caller's
// concern; the store deletes unconditionally.
func (s *RecordStore) DeleteAll(ctx context.Context) bool {
	if err := s.repo.DeleteAll(ctx); err != nil {
		log.Error().Err(err).Msg("failed to delete all payment records")
		return false
	}
	return true
}

// HasData reports whether the store is reachable and holds at least one
// record. Empty and unreachable/uninitialized stores both report false.
func (s *RecordStore) HasData(ctx context.Context) bool {
	count, err := s.repo.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not check store for data")
		return false
	}
	return count > 0
}

// ImportRecords derives and persists a batch, row by row. A failing row is
// logged and counted, never aborts the batch.
func (s *RecordStore) ImportRecords(ctx context.Context, recs []domain.PaymentRecord) (succeeded, failed int) {
	for _, rec := range recs {
		if _, ok := s.Create(ctx, rec); ok {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

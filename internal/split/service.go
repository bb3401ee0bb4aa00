package split

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/db"
	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/settlement"
)

var ErrHistoryDisabled = errors.New("settlement history is not enabled")

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Recorder persists computed settlements. *db.DB implements it.
type Recorder interface {
	RecordSettlement(ctx context.Context, rec *db.SettlementRecord) error
	GetSettlement(ctx context.Context, id uuid.UUID) (*db.SettlementRecord, error)
	ListSettlements(ctx context.Context, ownerID string, limit int) ([]db.SettlementRecord, error)
}

type Request struct {
	OwnerID      string
	Total        decimal.Decimal
	Participants []settlement.Participant
}

type Service struct {
	log      *logger.Logger
	recorder Recorder
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService builds a Service. recorder may be nil, in which case nothing is
// kept and the history methods return ErrHistoryDisabled.
func NewService(log *logger.Logger, recorder Recorder) *Service {
	return &Service{
		log:      log.With("component", "split"),
		recorder: recorder,
		now:      time.Now,
		newID:    uuid.New,
	}
}

func (s *Service) HistoryEnabled() bool {
	return s.recorder != nil
}

// Compute settles the request and records it when history is enabled.
// Input errors from the settlement package are returned unchanged.
func (s *Service) Compute(ctx context.Context, req Request) (*db.SettlementRecord, error) {
	res, err := settlement.Compute(req.Total, req.Participants)
	if err != nil {
		if settlement.IsInputError(err) {
			s.log.Debug("settlement input rejected", "error", err, "participants", len(req.Participants))
		} else {
			s.log.Error("settlement engine failure", "error", err, "total", req.Total.String(), "participants", len(req.Participants))
		}
		return nil, err
	}

	rec := &db.SettlementRecord{
		ID:        s.newID(),
		OwnerID:   req.OwnerID,
		Total:     req.Total,
		CreatedAt: s.now().UTC(),
		Result:    *res,
	}
	s.log.Info("settlement computed",
		"id", rec.ID.String(),
		"participants", len(res.Balances),
		"transactions", len(res.Transactions),
	)

	if s.recorder != nil {
		if err := s.recorder.RecordSettlement(ctx, rec); err != nil {
			s.log.Error("failed to record settlement", "id", rec.ID.String(), "error", err)
			return nil, fmt.Errorf("record settlement: %w", err)
		}
	}
	return rec, nil
}

// History lists the owner's recent settlements. limit is clamped to
// (0, MaxHistoryLimit]; zero or less means DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, ownerID string, limit int) ([]db.SettlementRecord, error) {
	if s.recorder == nil {
		return nil, ErrHistoryDisabled
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.recorder.ListSettlements(ctx, ownerID, limit)
}

// Get returns one settlement if it belongs to ownerID. Records of other
// owners are reported as db.ErrNotFound.
func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*db.SettlementRecord, error) {
	if s.recorder == nil {
		return nil, ErrHistoryDisabled
	}
	rec, err := s.recorder.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != ownerID {
		return nil, db.ErrNotFound
	}
	return rec, nil
}

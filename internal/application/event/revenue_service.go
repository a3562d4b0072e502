package event

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RevenueService is the admin surface over the per-event revenue ledger.
// The accumulators themselves are written only by order settlement; this
// service reads them and records organizer payouts.
type RevenueService struct {
	revenues event.RevenueRepository
	logger   *zap.Logger
}

// NewRevenueService creates a RevenueService.
func NewRevenueService(revenues event.RevenueRepository, logger *zap.Logger) *RevenueService {
	return &RevenueService{revenues: revenues, logger: logger}
}

// List returns every event's revenue row. Admin only.
func (s *RevenueService) List(ctx context.Context, caller *identity.User) ([]RevenueResponse, error) {
	if !caller.Role.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	rows, err := s.revenues.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RevenueResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toRevenueResponse(&rows[i]))
	}
	return out, nil
}

// GetByEvent returns one event's revenue row. Admin only.
func (s *RevenueService) GetByEvent(ctx context.Context, caller *identity.User, eventID uuid.UUID) (*RevenueResponse, error) {
	if !caller.Role.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	row, err := s.revenues.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	resp := toRevenueResponse(row)
	return &resp, nil
}

// RecordPayout sets the amount paid out to an event's organizer. Admin only.
// The value is absolute, not a delta, so re-submitting a payout form is safe.
func (s *RevenueService) RecordPayout(ctx context.Context, caller *identity.User, req RecordPayoutRequest) (*RevenueResponse, error) {
	if !caller.Role.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	if req.PaidCents < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Paid amount cannot be negative")
	}

	row, err := s.revenues.FindByEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if req.PaidCents > row.TotalCents() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Paid amount cannot exceed accrued revenue")
	}
	if err := s.revenues.RecordPayout(ctx, req.EventID, req.PaidCents); err != nil {
		return nil, err
	}
	row.PaidCents = req.PaidCents

	s.logger.Info("payout recorded",
		zap.String("event_id", req.EventID.String()),
		zap.Int64("paid_cents", req.PaidCents),
		zap.String("admin_id", caller.ID),
	)
	resp := toRevenueResponse(row)
	return &resp, nil
}

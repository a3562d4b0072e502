package order

import (
	"context"
	"errors"
	"time"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyStore filters webhook deliveries that were already processed.
// MarkProcessed returns true exactly once per delivery ID within the TTL;
// replays get false. It is a fast-path filter only: the status guard in each
// handler is what actually makes settlement idempotent.
type IdempotencyStore interface {
	MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error)
	// Forget releases a delivery ID marked too eagerly, so the gateway's
	// redelivery of a failed webhook is processed instead of dropped.
	Forget(ctx context.Context, deliveryID string) error
}

// SettlementService applies gateway webhook outcomes to orders. Every handler
// is idempotent: the order's current status decides whether the delivery has
// any effect, so replayed and out-of-order webhooks are safe.
type SettlementService struct {
	scope    TransactionScope
	notifier Notifier
	logger   *zap.Logger
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(scope TransactionScope, notifier Notifier, logger *zap.Logger) *SettlementService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SettlementService{scope: scope, notifier: notifier, logger: logger}
}

// HandlePaid settles a successful payment: reserved units become sold, the
// order completes and the event's revenue accumulators grow by the order
// total, all in one transaction. Unknown gateway order IDs and already
// terminal orders are acknowledged without effect.
func (s *SettlementService) HandlePaid(ctx context.Context, gatewayOrderID, paymentID string) error {
	var settled *order.Order
	var sponsorCreated bool

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("paid webhook for unknown order", zap.String("gateway_order_id", gatewayOrderID))
				return nil
			}
			return err
		}
		// Claim the order before touching any counter. The guarded update
		// takes the row lock, so of two concurrent settlements exactly one
		// sees a changed row; the loser stops here with nothing committed.
		claimed, err := repos.Orders().UpdateStatus(ctx, ord.ID, order.StatusReserved, order.StatusCompleted)
		if err != nil {
			return err
		}
		if claimed == 0 {
			s.logger.Info("paid webhook ignored, order already settled",
				zap.String("order_id", ord.ID.String()),
				zap.String("status", string(ord.Status)),
			)
			return nil
		}

		for _, item := range ord.Items {
			switch {
			case item.TicketID != nil:
				if err := repos.Tickets().Commit(ctx, *item.TicketID, item.Quantity); err != nil {
					return err
				}
			case item.PackageID != nil:
				if err := repos.Packages().Commit(ctx, *item.PackageID, item.Quantity); err != nil {
					return err
				}
			}
		}

		switch ord.Type {
		case order.TypeTicket:
			if err := repos.Revenues().AddTicketRevenue(ctx, ord.EventID, ord.TotalAmountCents); err != nil {
				return err
			}
		case order.TypePackage:
			if err := repos.Revenues().AddPackageRevenue(ctx, ord.EventID, ord.TotalAmountCents); err != nil {
				return err
			}
			created, err := repos.Sponsors().Create(ctx, event.NewSponsor(ord.EventID, ord.BuyerID))
			if err != nil {
				return err
			}
			sponsorCreated = created
		}

		if err := ord.Complete(paymentID); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}
		settled = ord
		return nil
	})
	if err != nil {
		return err
	}
	if settled == nil {
		return nil
	}

	s.logger.Info("order settled",
		zap.String("order_id", settled.ID.String()),
		zap.String("gateway_order_id", gatewayOrderID),
		zap.String("payment_id", paymentID),
		zap.Int64("amount_cents", settled.TotalAmountCents),
	)

	// Notifications ride outside the settlement transaction. A mail
	// failure must never roll back a captured payment.
	s.notifier.PurchaseConfirmed(ctx, settled)
	if sponsorCreated {
		s.notifier.NewSponsor(ctx, settled)
	}
	return nil
}

// HandlePaymentFailed reacts to a failed payment attempt: the order's held
// inventory is released immediately and the order goes FAILED, rather than
// waiting out the expiry window. Terminal orders are untouched.
func (s *SettlementService) HandlePaymentFailed(ctx context.Context, gatewayOrderID string) error {
	return s.finalizeUnpaid(ctx, gatewayOrderID, order.StatusFailed)
}

// HandleOrderFailed handles the gateway's own expiry of an unpaid order. It
// releases held inventory and marks the order EXPIRED, which the lazy sweep
// would otherwise do later.
func (s *SettlementService) HandleOrderFailed(ctx context.Context, gatewayOrderID string) error {
	return s.finalizeUnpaid(ctx, gatewayOrderID, order.StatusExpired)
}

func (s *SettlementService) finalizeUnpaid(ctx context.Context, gatewayOrderID string, to order.Status) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("webhook for unknown order", zap.String("gateway_order_id", gatewayOrderID))
				return nil
			}
			return err
		}
		// Status flips first: once a settlement has converted the holds to
		// sales, releasing them here would strand another order's units.
		changed, err := repos.Orders().UpdateStatus(ctx, ord.ID, order.StatusReserved, to)
		if err != nil {
			return err
		}
		if changed == 0 {
			return nil
		}

		if err := releaseOrderItems(ctx, repos, ord); err != nil {
			return err
		}
		s.logger.Info("order finalized without payment",
			zap.String("order_id", ord.ID.String()),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.String("status", string(to)),
		)
		return nil
	})
}

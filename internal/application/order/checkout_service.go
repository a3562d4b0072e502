package order

import (
	"context"
	"errors"
	"time"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReservationTTL is twice the gateway's own checkout expiry window, so
// the gateway can never accept a payment for an order we already expired.
const DefaultReservationTTL = 30 * time.Minute

// CheckoutService creates orders: it validates the request, sweeps stale
// reservations, holds inventory, registers the order with the payment
// gateway and persists the RESERVED order, all per the order lifecycle.
type CheckoutService struct {
	scope          TransactionScope
	eventRepo      event.EventRepository
	gateway        order.PaymentGateway
	reservationTTL time.Duration
	logger         *zap.Logger
	nowFn          func() time.Time
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(scope TransactionScope, eventRepo event.EventRepository, gateway order.PaymentGateway, reservationTTL time.Duration, logger *zap.Logger) *CheckoutService {
	if reservationTTL <= 0 {
		reservationTTL = DefaultReservationTTL
	}
	return &CheckoutService{
		scope:          scope,
		eventRepo:      eventRepo,
		gateway:        gateway,
		reservationTTL: reservationTTL,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// Checkout reserves inventory for the requested items and returns the gateway
// order handle for the hosted checkout. Validation failures surface before
// any reservation is made; a failure on any item rolls back the holds taken
// for the items before it.
func (s *CheckoutService) Checkout(ctx context.Context, buyer *identity.User, req CheckoutRequest) (*CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
		}
	}
	if req.OrderType == order.TypePackage && !buyer.Role.CanPurchasePackages() {
		return nil, shared.NewDomainError("FORBIDDEN_ROLE", "You need to be registered as a sponsor to purchase packages")
	}

	evt, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if evt.IsOrganizedBy(buyer.ID) {
		return nil, shared.NewDomainError("FORBIDDEN", "Organizer cannot buy tickets to or sponsor their own event")
	}

	// Free inventory held by reservations that ran out the clock before
	// competing for what is left.
	if err := s.sweepExpired(ctx, req.EventID, req.OrderType); err != nil {
		return nil, err
	}

	expiresAt := s.nowFn().Add(s.reservationTTL)
	ord, err := order.New(buyer.ID, req.EventID, req.OrderType, expiresAt)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			if req.OrderType == order.TypeTicket {
				ticket, err := repos.Tickets().FindByIDForEvent(ctx, item.ID, evt.ID)
				if err != nil {
					return err
				}
				if err := repos.Tickets().Reserve(ctx, ticket.ID, item.Quantity); err != nil {
					return err
				}
				if err := ord.AddTicketItem(ticket.ID, ticket.Title, ticket.Price, item.Quantity); err != nil {
					return err
				}
			} else {
				pkg, err := repos.Packages().FindByIDForEvent(ctx, item.ID, evt.ID)
				if err != nil {
					return err
				}
				if err := repos.Packages().Reserve(ctx, pkg.ID, item.Quantity); err != nil {
					return err
				}
				if err := ord.AddPackageItem(pkg.ID, pkg.Title, pkg.Price, item.Quantity); err != nil {
					return err
				}
			}
		}

		gatewayOrder, err := s.gateway.CreateOrder(ctx, &order.CreateGatewayOrderRequest{
			AmountCents: ord.TotalAmountCents,
			Currency:    "INR",
			Notes: map[string]string{
				"event_id": evt.ID.String(),
				"buyer_id": buyer.ID,
				"type":     string(req.OrderType),
			},
		})
		if err != nil {
			return err
		}
		if err := ord.AttachGatewayOrder(gatewayOrder.GatewayOrderID); err != nil {
			return err
		}

		return repos.Orders().Save(ctx, ord)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order reserved",
		zap.String("order_id", ord.ID.String()),
		zap.String("gateway_order_id", ord.GatewayOrderID),
		zap.String("event_id", evt.ID.String()),
		zap.Int64("amount_cents", ord.TotalAmountCents),
	)
	return toCheckoutResponse(ord), nil
}

// Status returns the current order status for buyer polling. The caller must
// be the order's buyer or an admin. No side effects.
func (s *CheckoutService) Status(ctx context.Context, caller *identity.User, gatewayOrderID string) (*StatusResponse, error) {
	if gatewayOrderID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Gateway order ID is required")
	}

	var resp *StatusResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil {
			return err
		}
		if ord.BuyerID != caller.ID && !caller.Role.IsAdmin() {
			return shared.ErrForbidden
		}
		resp = &StatusResponse{Status: ord.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// sweepExpired releases the holds of RESERVED orders past their expiry for
// the given event and type, flipping them EXPIRED. The sweep is lazy: it runs
// ahead of each new reservation attempt rather than on a timer, bounding
// staleness to one reservation cycle.
func (s *CheckoutService) sweepExpired(ctx context.Context, eventID uuid.UUID, orderType order.Type) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expired, err := repos.Orders().FindExpiredReserved(ctx, eventID, orderType, s.nowFn())
		if err != nil {
			return err
		}
		for i := range expired {
			// The RESERVED precondition claims the order ahead of the
			// releases; when a concurrent settlement already completed it,
			// its holds are sold units now and must stay untouched.
			changed, err := repos.Orders().UpdateStatus(ctx, expired[i].ID, order.StatusReserved, order.StatusExpired)
			if err != nil {
				return err
			}
			if changed == 0 {
				continue
			}
			if err := releaseOrderItems(ctx, repos, &expired[i]); err != nil {
				return err
			}
			s.logger.Info("expired stale reservation",
				zap.String("order_id", expired[i].ID.String()),
				zap.String("gateway_order_id", expired[i].GatewayOrderID),
			)
		}
		return nil
	})
}

// releaseOrderItems returns every held unit of the order to its pool.
func releaseOrderItems(ctx context.Context, repos TransactionalRepositories, ord *order.Order) error {
	for _, item := range ord.Items {
		var err error
		switch {
		case item.TicketID != nil:
			err = repos.Tickets().Release(ctx, *item.TicketID, item.Quantity)
		case item.PackageID != nil:
			err = repos.Packages().Release(ctx, *item.PackageID, item.Quantity)
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}
	return nil
}

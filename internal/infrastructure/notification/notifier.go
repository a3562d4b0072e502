package notification

import (
	"context"
	"fmt"

	apporder "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/order"
	"go.uber.org/zap"
)

// EmailNotifier implements the order Notifier port by emailing buyers and
// organizers through the mailer. Lookups and delivery failures are logged,
// never returned: settlement must not depend on email.
type EmailNotifier struct {
	mailer *ResendMailer
	users  identity.UserRepository
	events event.EventRepository
	logger *zap.Logger
}

// NewEmailNotifier creates an EmailNotifier
func NewEmailNotifier(mailer *ResendMailer, users identity.UserRepository, events event.EventRepository, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		mailer: mailer,
		users:  users,
		events: events,
		logger: logger,
	}
}

// PurchaseConfirmed emails the buyer their order confirmation
func (n *EmailNotifier) PurchaseConfirmed(ctx context.Context, o *order.Order) {
	buyer, err := n.users.FindByID(ctx, o.BuyerID)
	if err != nil {
		n.logger.Warn("purchase confirmation skipped, buyer lookup failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}
	evt, err := n.events.FindByID(ctx, o.EventID)
	if err != nil {
		n.logger.Warn("purchase confirmation skipped, event lookup failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}

	subject := fmt.Sprintf("Your order for %s is confirmed", evt.Summary)
	html := fmt.Sprintf(
		"<h2>Thanks, %s!</h2><p>Your payment of %s for <strong>%s</strong> went through.</p>%s",
		buyer.DisplayName(), formatINR(o.TotalAmountCents), evt.Summary, itemListHTML(o),
	)
	if err := n.mailer.Send(ctx, buyer.Email, subject, html); err != nil {
		n.logger.Warn("purchase confirmation email failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}
	n.logger.Info("purchase confirmation sent",
		zap.String("order_id", o.ID.String()), zap.String("to", buyer.Email))
}

// NewSponsor emails the event organizer about a first-time sponsor
func (n *EmailNotifier) NewSponsor(ctx context.Context, o *order.Order) {
	evt, err := n.events.FindByID(ctx, o.EventID)
	if err != nil {
		n.logger.Warn("sponsor notification skipped, event lookup failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}
	organizer, err := n.users.FindByID(ctx, evt.OrganizerID)
	if err != nil {
		n.logger.Warn("sponsor notification skipped, organizer lookup failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}
	sponsor, err := n.users.FindByID(ctx, o.BuyerID)
	if err != nil {
		n.logger.Warn("sponsor notification skipped, sponsor lookup failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}

	subject := fmt.Sprintf("New sponsor for %s", evt.Summary)
	html := fmt.Sprintf(
		"<h2>Good news!</h2><p><strong>%s</strong> is now sponsoring <strong>%s</strong> with a %s package purchase.</p>",
		sponsor.DisplayName(), evt.Summary, formatINR(o.TotalAmountCents),
	)
	if err := n.mailer.Send(ctx, organizer.Email, subject, html); err != nil {
		n.logger.Warn("sponsor notification email failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}
	n.logger.Info("sponsor notification sent",
		zap.String("order_id", o.ID.String()), zap.String("to", organizer.Email))
}

func itemListHTML(o *order.Order) string {
	out := "<ul>"
	for _, item := range o.Items {
		out += fmt.Sprintf("<li>%d × %s</li>", item.Quantity, item.Title)
	}
	return out + "</ul>"
}

func formatINR(cents int64) string {
	return fmt.Sprintf("₹%d.%02d", cents/100, cents%100)
}

// Ensure EmailNotifier implements Notifier
var _ apporder.Notifier = (*EmailNotifier)(nil)

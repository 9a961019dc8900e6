package listeners

import (
	"context"
	"fmt"
	"log/slog"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/ports"
)

// EmailListener mails the party affected by a refusal, a finished piece of
// work or a correction request. Sending is synchronous.
type EmailListener struct {
	parties ports.PartyRepository
	sender  ports.EmailSender
	logger  *slog.Logger
}

func NewEmailListener(parties ports.PartyRepository, sender ports.EmailSender, logger *slog.Logger) *EmailListener {
	return &EmailListener{
		parties: parties,
		sender:  sender,
		logger:  logger.With("component", "email_listener"),
	}
}

func (l *EmailListener) Register(bus Subscriber) {
	bus.Subscribe(order.EventPerformerRefused, l.Handle)
	bus.Subscribe(order.EventWorkSubmitted, l.Handle)
	bus.Subscribe(order.EventCorrectionRequested, l.Handle)
}

type letter struct {
	to      kernel.Role
	subject string
	body    string
}

func letterFor(e kernel.Event, p order.Participants) (letter, bool) {
	switch ev := e.(type) {
	case order.PerformerRefused:
		to := counterparty(ev.RefusedBy)
		body := "The customer has refused your work on order #%d %q. The order is open for replies again."
		if to == kernel.Customer {
			body = "The performer has refused order #%d %q. The order is open for replies again."
		}
		return letter{to, fmt.Sprintf("Order #%d: refusal", p.OrderID), fmt.Sprintf(body, p.OrderID, p.Title)}, true
	case order.WorkSubmitted:
		return letter{
			kernel.Customer,
			fmt.Sprintf("Order #%d: work completed", p.OrderID),
			fmt.Sprintf("The performer has finished order #%d %q. Please check the result.", p.OrderID, p.Title),
		}, true
	case order.CorrectionRequested:
		return letter{
			kernel.Performer,
			fmt.Sprintf("Order #%d: corrections requested", p.OrderID),
			fmt.Sprintf("The customer has asked for corrections on order #%d %q.", p.OrderID, p.Title),
		}, true
	default:
		return letter{}, false
	}
}

func (l *EmailListener) Handle(ctx context.Context, e kernel.Event) error {
	p, ok := participantsOf(e)
	if !ok {
		return nil
	}
	m, ok := letterFor(e, p)
	if !ok {
		return nil
	}

	recipient, err := lookup(ctx, l.parties, m.to, p)
	if err != nil {
		return fmt.Errorf("resolve %s of order %d: %w", m.to, p.OrderID, err)
	}

	if err = l.sender.SendPlain(ctx, recipient.email, m.subject, m.body); err != nil {
		return fmt.Errorf("send %q to account %d: %w", m.subject, recipient.accountID, err)
	}

	l.logger.InfoContext(ctx, "email sent",
		"event", e.Name(),
		"order_id", p.OrderID,
		"account_id", recipient.accountID,
	)
	return nil
}

package commands

import (
	"context"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/core/domain/services"
	"freelance/internal/core/ports"
)

// loadOwnedOrder loads the order and checks caller owns it as its customer.
func loadOwnedOrder(
	ctx context.Context, orders ports.OrderRepository, parties ports.PartyRepository,
	caller kernel.Caller, orderID kernel.ID,
) (*order.Order, error) {
	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	customer, err := parties.GetCustomer(ctx, o.CustomerID())
	if err != nil {
		return nil, err
	}
	if err = services.NewAccessGuard().AssertOwnership("order", customer, caller); err != nil {
		return nil, err
	}
	return o, nil
}

// loadOwnedReply loads the reply and checks caller owns it as its performer.
func loadOwnedReply(
	ctx context.Context, replies ports.ReplyRepository, parties ports.PartyRepository,
	caller kernel.Caller, replyID kernel.ID,
) (*reply.Reply, error) {
	r, err := replies.Get(ctx, replyID)
	if err != nil {
		return nil, err
	}
	performer, err := parties.GetPerformer(ctx, r.PerformerID())
	if err != nil {
		return nil, err
	}
	if err = services.NewAccessGuard().AssertOwnership("reply", performer, caller); err != nil {
		return nil, err
	}
	return r, nil
}

// loadChatAs loads the chat and resolves which side caller is on.
func loadChatAs(
	ctx context.Context, chats ports.ChatRepository, parties ports.PartyRepository,
	caller kernel.Caller, chatID kernel.ID,
) (*chat.Chat, kernel.Role, error) {
	c, err := chats.Get(ctx, chatID)
	if err != nil {
		return nil, kernel.UnknownRole, err
	}
	customer, err := parties.GetCustomer(ctx, c.CustomerID())
	if err != nil {
		return nil, kernel.UnknownRole, err
	}
	performer, err := parties.GetPerformer(ctx, c.PerformerID())
	if err != nil {
		return nil, kernel.UnknownRole, err
	}
	side, err := services.NewAccessGuard().ParticipantSide("chat", customer, performer, caller)
	if err != nil {
		return nil, kernel.UnknownRole, err
	}
	return c, side, nil
}

package commands

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

// GetMessagesCommandHandler returns the history oldest first and stamps the
// caller's read mark. Administrators may read any chat but leave no mark.
type GetMessagesCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewGetMessagesCommandHandler(uowFactory UoWFactory, clock kernel.Clock) GetMessagesCommandHandler {
	return GetMessagesCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h GetMessagesCommandHandler) Handle(ctx context.Context, cmd GetMessagesCommand) ([]*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chats := uow.ChatRepository()

	c, side, err := loadChatAs(ctx, chats, uow.PartyRepository(), cmd.Caller(), cmd.ChatID())
	participant := err == nil
	if errors.Is(err, errs.ErrAccessDenied) && cmd.Caller().IsAdministrator() {
		c, err = chats.Get(ctx, cmd.ChatID())
	}
	if err != nil {
		return nil, err
	}

	messages, err := chats.Messages(ctx, c.ID())
	if err != nil {
		return nil, err
	}

	if participant {
		if err = c.MarkChecked(side, h.clock.Now()); err != nil {
			return nil, err
		}
		if err = chats.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}

// SendMessageCommandHandler posts a message from one of the two parties and
// pushes it to realtime subscribers of the chat after commit.
type SendMessageCommandHandler struct {
	uowFactory UoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
}

func NewSendMessageCommandHandler(
	uowFactory UoWFactory, publisher EventPublisher, clock kernel.Clock,
) SendMessageCommandHandler {
	return SendMessageCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chats := uow.ChatRepository()

	c, side, err := loadChatAs(ctx, chats, uow.PartyRepository(), cmd.Caller(), cmd.ChatID())
	if err != nil {
		return nil, err
	}

	m, err := c.PostMessage(side, cmd.Caller().AccountID(), cmd.Text(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = chats.AddMessage(ctx, m); err != nil {
		return nil, err
	}

	if err = chats.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, uow.CollectEvents()...)
	return m, nil
}

// SoftDeleteChatCommandHandler hides a chat for the caller's side once the
// order behind it is done or has nobody working on it.
type SoftDeleteChatCommandHandler struct {
	uowFactory UoWFactory
}

func NewSoftDeleteChatCommandHandler(uowFactory UoWFactory) SoftDeleteChatCommandHandler {
	return SoftDeleteChatCommandHandler{uowFactory: uowFactory}
}

func (h SoftDeleteChatCommandHandler) Handle(ctx context.Context, cmd SoftDeleteChatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chats := uow.ChatRepository()

	c, side, err := loadChatAs(ctx, chats, uow.PartyRepository(), cmd.Caller(), cmd.ChatID())
	if err != nil {
		return err
	}

	orderID, err := c.RoomName().OrderID()
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = c.SoftDelete(side, o); err != nil {
		return err
	}

	if err = chats.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

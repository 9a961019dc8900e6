package queries

import (
	"context"
	"time"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

// chatRow is a chat joined with the account ids of both parties.
type chatRow struct {
	ID                       int64
	RoomName                 string
	CustomerID               int64
	PerformerID              int64
	CustomerAccountID        int64
	PerformerAccountID       int64
	LastMessageAt            *time.Time
	LastCheckedByCustomerAt  *time.Time
	LastCheckedByPerformerAt *time.Time
	DeletedByCustomer        bool
	DeletedByPerformer       bool
}

const chatRowSelect = `
	SELECT ch.id, ch.room_name, ch.customer_id, ch.performer_id,
		cu.account_id AS customer_account_id, pe.account_id AS performer_account_id,
		ch.last_message_at, ch.last_checked_by_customer_at, ch.last_checked_by_performer_at,
		ch.deleted_by_customer, ch.deleted_by_performer
	FROM chats ch
	JOIN customers cu ON cu.id = ch.customer_id
	JOIN performers pe ON pe.id = ch.performer_id`

// sideOf mirrors the participant check of the chat commands: account ids
// decide, administrators are not participants.
func (r chatRow) sideOf(caller kernel.Caller) (kernel.Role, error) {
	switch caller.AccountID().Int64() {
	case r.CustomerAccountID:
		return kernel.Customer, nil
	case r.PerformerAccountID:
		return kernel.Performer, nil
	default:
		return kernel.UnknownRole, errs.NewAccessDeniedError("chat")
	}
}

func (r chatRow) lastCheckedBy(side kernel.Role) *time.Time {
	if side == kernel.Customer {
		return r.LastCheckedByCustomerAt
	}
	return r.LastCheckedByPerformerAt
}

// countUnread counts messages of the other side newer than the side's last
// read. A side that never read the chat has every message of the other side
// unread.
func countUnread(db *gorm.DB, chatID int64, side kernel.Role, lastChecked *time.Time) (int64, error) {
	q := db.Table("messages").Where("chat_id = ? AND sender_type <> ?", chatID, int(side))
	if lastChecked != nil {
		q = q.Where("created_at > ?", *lastChecked)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type CountUnreadQueryHandler struct {
	db *gorm.DB
}

func NewCountUnreadQueryHandler(db *gorm.DB) CountUnreadQueryHandler {
	return CountUnreadQueryHandler{db: db}
}

func (h CountUnreadQueryHandler) Handle(ctx context.Context, query CountUnreadQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	db := h.db.WithContext(ctx)

	var row chatRow
	result := db.Raw(chatRowSelect+` WHERE ch.id = ?`, query.chatID.Int64()).Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewObjectNotFoundError("chat", query.chatID)
	}

	side, err := row.sideOf(query.caller)
	if err != nil {
		return 0, err
	}
	return countUnread(db, row.ID, side, row.lastCheckedBy(side))
}

type ListChatsQueryHandler struct {
	db *gorm.DB
}

func NewListChatsQueryHandler(db *gorm.DB) ListChatsQueryHandler {
	return ListChatsQueryHandler{db: db}
}

// Handle lists the caller's visible chats, most recently active first.
func (h ListChatsQueryHandler) Handle(ctx context.Context, query ListChatsQuery) ([]ChatView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	account := query.caller.AccountID().Int64()

	var rows []chatRow
	err := db.Raw(chatRowSelect+`
		WHERE (cu.account_id = ? AND ch.deleted_by_customer = ?)
		   OR (pe.account_id = ? AND ch.deleted_by_performer = ?)
		ORDER BY ch.last_message_at DESC, ch.id DESC
	`, account, false, account, false).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]ChatView, 0, len(rows))
	for _, r := range rows {
		side, sideErr := r.sideOf(query.caller)
		if sideErr != nil {
			return nil, sideErr
		}
		unread, countErr := countUnread(db, r.ID, side, r.lastCheckedBy(side))
		if countErr != nil {
			return nil, countErr
		}
		views = append(views, ChatView{
			ID:            kernel.ID(r.ID),
			RoomName:      chat.RoomName(r.RoomName),
			CustomerID:    kernel.ID(r.CustomerID),
			PerformerID:   kernel.ID(r.PerformerID),
			Side:          side,
			LastMessageAt: r.LastMessageAt,
			Unread:        unread,
		})
	}
	return views, nil
}

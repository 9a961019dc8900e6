package queries

import (
	"context"
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
	"freelance/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
	ErrListPerformerReviewsQueryIsNotConstructed = errors.New(
		"ListPerformerReviewsQuery must be created via NewListPerformerReviewsQuery constructor",
	)
)

// ListNotificationsQuery lists the notifications addressed to the caller's
// account, newest first.
type ListNotificationsQuery struct {
	caller     kernel.Caller
	unreadOnly bool
	guard      guard.ConstructorGuard
}

func NewListNotificationsQuery(caller kernel.Caller, unreadOnly bool) (ListNotificationsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{caller: caller, unreadOnly: unreadOnly, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

type NotificationView struct {
	ID        kernel.ID
	Type      notification.Type
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
	OrderID   *kernel.ID
}

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).
		Table("notifications").
		Select("id, type, title, message, is_read, created_at, related_order_id").
		Where("account_id = ?", query.caller.AccountID().Int64())
	if query.unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	rows, err := q.Order("created_at DESC, id DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]NotificationView, 0)
	for rows.Next() {
		var (
			v       NotificationView
			id      int64
			kind    int
			message *string
			orderID *int64
		)
		if err = rows.Scan(&id, &kind, &v.Title, &message, &v.IsRead, &v.CreatedAt, &orderID); err != nil {
			return nil, err
		}
		v.ID = kernel.ID(id)
		v.Type = notification.Type(kind)
		if message != nil {
			v.Message = *message
		}
		if orderID != nil {
			v.OrderID = kernel.IDPtr(kernel.ID(*orderID))
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListPerformerReviewsQuery lists the work experience entries of a performer.
// Reviews are public; no caller is needed.
type ListPerformerReviewsQuery struct {
	performerID kernel.ID
	guard       guard.ConstructorGuard
}

func NewListPerformerReviewsQuery(performerID kernel.ID) (ListPerformerReviewsQuery, error) {
	if err := performerID.Validate(); err != nil {
		return ListPerformerReviewsQuery{}, err
	}
	return ListPerformerReviewsQuery{performerID: performerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPerformerReviewsQuery) Validate() error {
	return q.guard.Validate(ErrListPerformerReviewsQueryIsNotConstructed)
}

type ReviewView struct {
	ID           kernel.ID
	Name         string
	Rate         int
	Text         string
	ReviewerType kernel.Role
	OrderID      *kernel.ID
	CustomerID   kernel.ID
	CreatedAt    time.Time
}

type reviewRow struct {
	ID           int64
	Name         string
	Rate         int
	Text         string
	ReviewerType int
	OrderID      *int64
	CustomerID   int64
	CreatedAt    time.Time
}

type ListPerformerReviewsQueryHandler struct {
	db *gorm.DB
}

func NewListPerformerReviewsQueryHandler(db *gorm.DB) ListPerformerReviewsQueryHandler {
	return ListPerformerReviewsQueryHandler{db: db}
}

func (h ListPerformerReviewsQueryHandler) Handle(ctx context.Context, query ListPerformerReviewsQuery) ([]ReviewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []reviewRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, rate, text, reviewer_type, order_id, customer_id, created_at
		FROM work_experiences
		WHERE performer_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.performerID.Int64()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, 0, len(rows))
	for _, r := range rows {
		v := ReviewView{
			ID:           kernel.ID(r.ID),
			Name:         r.Name,
			Rate:         r.Rate,
			Text:         r.Text,
			ReviewerType: kernel.Role(r.ReviewerType),
			CustomerID:   kernel.ID(r.CustomerID),
			CreatedAt:    r.CreatedAt,
		}
		if r.OrderID != nil {
			v.OrderID = kernel.IDPtr(kernel.ID(*r.OrderID))
		}
		views = append(views, v)
	}
	return views, nil
}

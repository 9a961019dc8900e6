package queries

import (
	"context"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const orderViewColumns = `
	o.id, o.customer_id, o.performer_id, o.title, o.description, o.scope,
	o.tech_stack, o.budget, o.status, o.published_at, o.started_at, o.ended_at,
	o.reply_bind`

type orderRow struct {
	ID          int64
	CustomerID  int64
	PerformerID *int64
	Title       string
	Description string
	Scope       string
	TechStack   string
	Budget      int64
	Status      int
	PublishedAt time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
	ReplyBind   int
}

func (r orderRow) view() OrderView {
	v := OrderView{
		ID:          kernel.ID(r.ID),
		CustomerID:  kernel.ID(r.CustomerID),
		Title:       r.Title,
		Description: r.Description,
		Scope:       r.Scope,
		TechStack:   r.TechStack,
		Budget:      r.Budget,
		Status:      order.Status(r.Status),
		PublishedAt: r.PublishedAt,
		StartedAt:   r.StartedAt,
		EndedAt:     r.EndedAt,
		ReplyBind:   r.ReplyBind,
	}
	if r.PerformerID != nil {
		v.PerformerID = kernel.IDPtr(kernel.ID(*r.PerformerID))
	}
	return v
}

func scanOrders(db *gorm.DB, sql string, args ...any) ([]OrderView, error) {
	var rows []orderRow
	if err := db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views, nil
}

type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

// Handle returns an empty slice, not an error, for an account without a
// customer profile.
func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrders(h.db.WithContext(ctx), `
		SELECT `+orderViewColumns+`
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE c.account_id = ? AND o.deleted_by_customer = ?
		ORDER BY o.published_at DESC, o.id DESC
	`, query.caller.AccountID().Int64(), false)
}

type ListPerformerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListPerformerOrdersQueryHandler(db *gorm.DB) ListPerformerOrdersQueryHandler {
	return ListPerformerOrdersQueryHandler{db: db}
}

func (h ListPerformerOrdersQueryHandler) Handle(ctx context.Context, query ListPerformerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrders(h.db.WithContext(ctx), `
		SELECT `+orderViewColumns+`
		FROM orders o
		JOIN performers p ON p.id = o.performer_id
		WHERE p.account_id = ?
		ORDER BY o.started_at DESC, o.id DESC
	`, query.caller.AccountID().Int64())
}

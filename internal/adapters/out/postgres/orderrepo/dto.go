// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// ReplyBind is advisory and only ever moved by AdjustReplyBind.
type OrderDTO struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID        int64  `gorm:"not null;index"`
	PerformerID       *int64 `gorm:"index"`
	Title             string `gorm:"size:255;not null"`
	Description       string `gorm:"type:text"`
	Scope             string `gorm:"type:text"`
	TechStack         string `gorm:"type:text"`
	Budget            int64
	Status            int  `gorm:"not null;index"`
	DeletedByCustomer bool `gorm:"not null;default:false"`
	PublishedAt       time.Time
	StartedAt         *time.Time
	EndedAt           *time.Time
	ReplyBind         int `gorm:"not null;default:0"`
	Version           int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var performerID *int64
	if id := o.Performer(); id != nil {
		raw := id.Int64()
		performerID = &raw
	}

	d := o.Details()
	t := o.Timeline()

	return OrderDTO{
		ID:                o.ID().Int64(),
		CustomerID:        o.CustomerID().Int64(),
		PerformerID:       performerID,
		Title:             d.Title(),
		Description:       d.Description(),
		Scope:             d.Scope(),
		TechStack:         d.TechStack(),
		Budget:            d.Budget(),
		Status:            int(o.Status()),
		DeletedByCustomer: o.IsDeletedByCustomer(),
		PublishedAt:       t.PublishedAt,
		StartedAt:         t.StartedAt,
		EndedAt:           t.EndedAt,
		ReplyBind:         o.ReplyBind(),
		Version:           o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	details, err := order.NewDetails(dto.Title, dto.Description, dto.Scope, dto.TechStack, dto.Budget)
	if err != nil {
		return nil, err
	}

	var performerID *kernel.ID
	if dto.PerformerID != nil {
		performerID = kernel.IDPtr(kernel.ID(*dto.PerformerID))
	}

	return order.RestoreOrder(
		kernel.ID(dto.ID),
		kernel.ID(dto.CustomerID),
		details,
		performerID,
		order.Status(dto.Status),
		dto.DeletedByCustomer,
		order.Timeline{PublishedAt: dto.PublishedAt, StartedAt: dto.StartedAt, EndedAt: dto.EndedAt},
		dto.ReplyBind,
		dto.Version,
	)
}

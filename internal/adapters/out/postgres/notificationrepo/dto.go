// Package notificationrepo persists notifications. Only the read flag of a
// stored notification ever changes.
package notificationrepo

import (
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
)

type NotificationDTO struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	AccountID          int64  `gorm:"not null;index:idx_notification_account,priority:1"`
	UserRole           int    `gorm:"not null"`
	Type               int    `gorm:"not null"`
	Title              string `gorm:"size:255;not null"`
	Message            string `gorm:"type:text"`
	IsRead             bool   `gorm:"not null;default:false;index:idx_notification_account,priority:2"`
	CreatedAt          time.Time
	RelatedOrderID     *int64 `gorm:"index"`
	RelatedPerformerID *int64
	RelatedCustomerID  *int64
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	rel := n.Related()
	return NotificationDTO{
		ID:                 n.ID().Int64(),
		AccountID:          n.AccountID().Int64(),
		UserRole:           int(n.UserRole()),
		Type:               int(n.Type()),
		Title:              n.Content().Title,
		Message:            n.Content().Message,
		IsRead:             n.IsRead(),
		CreatedAt:          n.CreatedAt(),
		RelatedOrderID:     rawID(rel.OrderID),
		RelatedPerformerID: rawID(rel.PerformerID),
		RelatedCustomerID:  rawID(rel.CustomerID),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	return notification.RestoreNotification(
		kernel.ID(dto.ID),
		kernel.ID(dto.AccountID),
		kernel.Role(dto.UserRole),
		notification.Type(dto.Type),
		notification.Content{Title: dto.Title, Message: dto.Message},
		notification.Related{
			OrderID:     domainID(dto.RelatedOrderID),
			PerformerID: domainID(dto.RelatedPerformerID),
			CustomerID:  domainID(dto.RelatedCustomerID),
		},
		dto.IsRead,
		dto.CreatedAt,
	)
}

func rawID(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func domainID(v *int64) *kernel.ID {
	if v == nil {
		return nil
	}
	return kernel.IDPtr(kernel.ID(*v))
}

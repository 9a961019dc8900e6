package notificationrepo

import (
	"context"
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	n.IdentifyAs(kernel.ID(dto.ID))
	return nil
}

func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Int64()).
		Update("is_read", n.IsRead())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID())
	}
	return nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.ID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormNotificationRepository) ExistsAbout(
	ctx context.Context, accountID kernel.ID, kind notification.Type, orderID kernel.ID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("account_id = ? AND type = ? AND related_order_id = ?", accountID.Int64(), int(kind), orderID.Int64()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormNotificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&NotificationDTO{}, "is_read = ? AND created_at < ?", true, before)
	return result.RowsAffected, result.Error
}

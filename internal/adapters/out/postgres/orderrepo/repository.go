package orderrepo

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and assigns it the generated ID.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.IdentifyAs(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update saves an existing order if nobody changed it since it was loaded.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "reply_bind").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.ID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Int64()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return errs.NewVersionIsInvalidError("order")
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// AdjustReplyBind moves the reply counter in place. The version is left
// alone so replies arriving concurrently never conflict with each other or
// with lifecycle updates.
func (r *GormOrderRepository) AdjustReplyBind(ctx context.Context, id kernel.ID, delta int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Int64()).
		UpdateColumn("reply_bind", gorm.Expr(
			"CASE WHEN reply_bind + ? < 0 THEN 0 ELSE reply_bind + ? END", delta, delta,
		))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}

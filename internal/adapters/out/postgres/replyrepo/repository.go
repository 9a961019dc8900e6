package replyrepo

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// GormReplyRepository implements ReplyRepository using GORM. Duplicate
// detection relies on the connection being opened with TranslateError.
type GormReplyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormReplyRepository(db *gorm.DB, tracker aggregateTracker) *GormReplyRepository {
	return &GormReplyRepository{db: db, tracker: tracker}
}

func (r *GormReplyRepository) Add(ctx context.Context, aggregate *reply.Reply) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("reply", aggregate.OrderID(), err)
		}
		return err
	}

	aggregate.IdentifyAs(kernel.ID(dto.ID))
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormReplyRepository) Update(ctx context.Context, aggregate *reply.Reply) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&ReplyDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("approved_by_customer", "done_this_task", "on_customer", "donned", "version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, "id = ?", dto.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("reply", aggregate.ID())
		}
		return errs.NewVersionIsInvalidError("reply")
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormReplyRepository) Get(ctx context.Context, id kernel.ID) (*reply.Reply, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, errs.NewObjectNotFoundError("reply", id), "id = ?", id.Int64())
}

func (r *GormReplyRepository) FindByOrderAndPerformer(
	ctx context.Context, orderID, performerID kernel.ID,
) (*reply.Reply, error) {
	return r.first(ctx,
		errs.NewObjectNotFoundError("reply", orderID.String()+"/"+performerID.String()),
		"order_id = ? AND performer_id = ?", orderID.Int64(), performerID.Int64(),
	)
}

func (r *GormReplyRepository) Exists(ctx context.Context, orderID, performerID kernel.ID) (bool, error) {
	return r.exists(ctx, "order_id = ? AND performer_id = ?", orderID.Int64(), performerID.Int64())
}

func (r *GormReplyRepository) Delete(ctx context.Context, aggregate *reply.Reply) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ReplyDTO{}, "id = ?", aggregate.ID().Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("reply", aggregate.ID())
	}
	return nil
}

func (r *GormReplyRepository) DeleteByOrder(ctx context.Context, orderID kernel.ID) (int, error) {
	result := r.db.WithContext(ctx).Delete(&ReplyDTO{}, "order_id = ?", orderID.Int64())
	return int(result.RowsAffected), result.Error
}

func (r *GormReplyRepository) DeleteByOrderAndPerformer(ctx context.Context, orderID, performerID kernel.ID) (int, error) {
	result := r.db.WithContext(ctx).
		Delete(&ReplyDTO{}, "order_id = ? AND performer_id = ?", orderID.Int64(), performerID.Int64())
	return int(result.RowsAffected), result.Error
}

func (r *GormReplyRepository) first(ctx context.Context, notFound error, query string, args ...any) (*reply.Reply, error) {
	var dto ReplyDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormReplyRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReplyDTO{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

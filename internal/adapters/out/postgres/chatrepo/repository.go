package chatrepo

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/chat"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormChatRepository(db *gorm.DB, tracker aggregateTracker) *GormChatRepository {
	return &GormChatRepository{db: db, tracker: tracker}
}

func (r *GormChatRepository) Add(ctx context.Context, aggregate *chat.Chat) error {
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

func (r *GormChatRepository) Update(ctx context.Context, aggregate *chat.Chat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ChatDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "customer_id", "performer_id", "room_name").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("chat", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormChatRepository) Get(ctx context.Context, id kernel.ID) (*chat.Chat, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChatDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormChatRepository) FindByRoom(
	ctx context.Context, roomName chat.RoomName, customerID, performerID kernel.ID,
) (*chat.Chat, error) {
	var dto ChatDTO
	err := r.db.WithContext(ctx).
		Where("room_name = ? AND customer_id = ? AND performer_id = ?",
			roomName.String(), customerID.Int64(), performerID.Int64()).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat", roomName.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormChatRepository) AddMessage(ctx context.Context, message *chat.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := messageFromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	message.IdentifyAs(kernel.ID(dto.ID))
	return nil
}

func (r *GormChatRepository) Messages(ctx context.Context, chatID kernel.ID) ([]*chat.Message, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID.Int64()).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := messageToDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

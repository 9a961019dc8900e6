// Package reviewrepo persists the work experience entries of performers.
package reviewrepo

import (
	"context"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/review"

	"gorm.io/gorm"
)

type WorkExperienceDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:255;not null"`
	Rate         int    `gorm:"not null"`
	Text         string `gorm:"type:text"`
	ReviewerType int    `gorm:"not null"`
	OrderID      *int64 `gorm:"index"`
	CustomerID   int64  `gorm:"not null"`
	PerformerID  int64  `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (WorkExperienceDTO) TableName() string {
	return "work_experiences"
}

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Add(ctx context.Context, w *review.WorkExperience) error {
	if err := w.Validate(); err != nil {
		return err
	}

	var orderID *int64
	if id := w.OrderID(); id != nil {
		v := id.Int64()
		orderID = &v
	}

	body := w.Body()
	dto := WorkExperienceDTO{
		Name:         body.Name,
		Rate:         body.Rate,
		Text:         body.Text,
		ReviewerType: int(w.ReviewerType()),
		OrderID:      orderID,
		CustomerID:   w.CustomerID().Int64(),
		PerformerID:  w.PerformerID().Int64(),
		CreatedAt:    w.CreatedAt(),
		UpdatedAt:    w.UpdatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	w.IdentifyAs(kernel.ID(dto.ID))
	return nil
}

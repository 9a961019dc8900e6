package ports

import (
	"context"

	"freelance/internal/core/domain/model/review"
)

type ReviewRepository interface {
	Add(ctx context.Context, w *review.WorkExperience) error
}

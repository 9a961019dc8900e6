// Package replyrepo maps replies to the replies table. The pair of order and
// performer is unique.
package replyrepo

import (
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/reply"
)

type ReplyDTO struct {
	ID                 int64 `gorm:"primaryKey;autoIncrement"`
	OrderID            int64 `gorm:"not null;uniqueIndex:uniq_reply_order_performer,priority:1"`
	PerformerID        int64 `gorm:"not null;uniqueIndex:uniq_reply_order_performer,priority:2;index"`
	ApprovedByCustomer bool  `gorm:"not null;default:false"`
	DoneThisTask       bool  `gorm:"not null;default:false"`
	OnCustomer         bool  `gorm:"not null;default:false"`
	Donned             bool  `gorm:"not null;default:false"`
	CreatedAt          time.Time
	Version            int `gorm:"not null;default:0"`
}

func (ReplyDTO) TableName() string {
	return "replies"
}

func fromDomain(r *reply.Reply) ReplyDTO {
	f := r.Flags()
	return ReplyDTO{
		ID:                 r.ID().Int64(),
		OrderID:            r.OrderID().Int64(),
		PerformerID:        r.PerformerID().Int64(),
		ApprovedByCustomer: f.ApprovedByCustomer,
		DoneThisTask:       f.DoneThisTask,
		OnCustomer:         f.OnCustomer,
		Donned:             f.Donned,
		CreatedAt:          r.CreatedAt(),
		Version:            r.Version(),
	}
}

func toDomain(dto ReplyDTO) (*reply.Reply, error) {
	return reply.RestoreReply(
		kernel.ID(dto.ID),
		kernel.ID(dto.OrderID),
		kernel.ID(dto.PerformerID),
		reply.Flags{
			ApprovedByCustomer: dto.ApprovedByCustomer,
			DoneThisTask:       dto.DoneThisTask,
			OnCustomer:         dto.OnCustomer,
			Donned:             dto.Donned,
		},
		dto.CreatedAt,
		dto.Version,
	)
}

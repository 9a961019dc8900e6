package ports

import (
	"context"
	"time"

	"freelance/internal/core/domain/model/verification"
)

// EmailSender delivers transactional mail. Sending is synchronous.
type EmailSender interface {
	SendPlain(ctx context.Context, to, subject, body string) error
	SendWithAttachment(ctx context.Context, to, subject, body, filePath string) error
}

// RealtimePublisher fans a payload out to the subscribers of topic, e.g.
// chat.<chatID> or notifications.<accountID>.
type RealtimePublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// CodeStore keeps verification codes with a time to live.
type CodeStore interface {
	Put(ctx context.Context, key string, code verification.Code, ttl time.Duration) error

	// GetIfNotExpired returns false when the key is absent or expired.
	GetIfNotExpired(ctx context.Context, key string) (verification.Code, bool, error)
	Remove(ctx context.Context, key string) error

	// SweepExpired drops expired entries and reports how many were removed.
	SweepExpired(ctx context.Context) (int, error)
}

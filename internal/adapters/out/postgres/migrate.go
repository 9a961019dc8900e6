package postgres

import (
	"fmt"

	"freelance/internal/adapters/out/postgres/chatrepo"
	"freelance/internal/adapters/out/postgres/notificationrepo"
	"freelance/internal/adapters/out/postgres/orderrepo"
	"freelance/internal/adapters/out/postgres/partyrepo"
	"freelance/internal/adapters/out/postgres/replyrepo"
	"freelance/internal/adapters/out/postgres/reviewrepo"

	"gorm.io/gorm"
)

// Models lists every table the module owns.
func Models() []any {
	return []any{
		&partyrepo.CustomerDTO{},
		&partyrepo.PerformerDTO{},
		&orderrepo.OrderDTO{},
		&replyrepo.ReplyDTO{},
		&chatrepo.ChatDTO{},
		&chatrepo.MessageDTO{},
		&notificationrepo.NotificationDTO{},
		&reviewrepo.WorkExperienceDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

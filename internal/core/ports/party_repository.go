package ports

import (
	"context"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/party"
)

// PartyRepository resolves customers and performers by entity id or by the
// account id the auth provider yields.
type PartyRepository interface {
	AddCustomer(ctx context.Context, customer *party.Customer) error
	AddPerformer(ctx context.Context, performer *party.Performer) error

	GetCustomer(ctx context.Context, id kernel.ID) (*party.Customer, error)
	GetPerformer(ctx context.Context, id kernel.ID) (*party.Performer, error)

	CustomerByAccount(ctx context.Context, accountID kernel.ID) (*party.Customer, error)
	PerformerByAccount(ctx context.Context, accountID kernel.ID) (*party.Performer, error)
}

package partyrepo

import (
	"context"
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/party"
	"freelance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartyRepository implements PartyRepository using GORM.
type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) AddCustomer(ctx context.Context, c *party.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := CustomerDTO{ProfileDTO{AccountID: c.AccountID().Int64(), Name: c.Name(), Email: c.Email()}}
	if err := r.create(ctx, &dto, "customer", c.AccountID()); err != nil {
		return err
	}

	c.IdentifyAs(kernel.ID(dto.ID))
	return nil
}

func (r *GormPartyRepository) AddPerformer(ctx context.Context, p *party.Performer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := PerformerDTO{ProfileDTO{AccountID: p.AccountID().Int64(), Name: p.Name(), Email: p.Email()}}
	if err := r.create(ctx, &dto, "performer", p.AccountID()); err != nil {
		return err
	}

	p.IdentifyAs(kernel.ID(dto.ID))
	return nil
}

func (r *GormPartyRepository) GetCustomer(ctx context.Context, id kernel.ID) (*party.Customer, error) {
	var dto CustomerDTO
	if err := r.first(ctx, &dto, "customer", id, "id = ?", id.Int64()); err != nil {
		return nil, err
	}
	return customerToDomain(dto)
}

func (r *GormPartyRepository) GetPerformer(ctx context.Context, id kernel.ID) (*party.Performer, error) {
	var dto PerformerDTO
	if err := r.first(ctx, &dto, "performer", id, "id = ?", id.Int64()); err != nil {
		return nil, err
	}
	return performerToDomain(dto)
}

func (r *GormPartyRepository) CustomerByAccount(ctx context.Context, accountID kernel.ID) (*party.Customer, error) {
	var dto CustomerDTO
	if err := r.first(ctx, &dto, "customer", accountID, "account_id = ?", accountID.Int64()); err != nil {
		return nil, err
	}
	return customerToDomain(dto)
}

func (r *GormPartyRepository) PerformerByAccount(ctx context.Context, accountID kernel.ID) (*party.Performer, error) {
	var dto PerformerDTO
	if err := r.first(ctx, &dto, "performer", accountID, "account_id = ?", accountID.Int64()); err != nil {
		return nil, err
	}
	return performerToDomain(dto)
}

func (r *GormPartyRepository) create(ctx context.Context, dto any, param string, accountID kernel.ID) error {
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause(param, accountID, err)
		}
		return err
	}
	return nil
}

func (r *GormPartyRepository) first(ctx context.Context, dto any, param string, id kernel.ID, query string, args ...any) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where(query, args...).First(dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(param, id)
		}
		return err
	}
	return nil
}

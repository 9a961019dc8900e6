package partyrepo_test

import (
	"context"
	"testing"

	"freelance/internal/adapters/out/postgres/partyrepo"
	"freelance/internal/adapters/out/postgres/sqlitetest"
	"freelance/internal/core/domain/model/party"
	"freelance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPartyRepository(t *testing.T) {
	ctx := context.Background()
	repository := partyrepo.NewGormPartyRepository(sqlitetest.Open(t))

	customer, err := party.NewCustomer(100, "Анна", "anna@example.com")
	require.NoError(t, err)
	require.NoError(t, repository.AddCustomer(ctx, customer))
	performer, err := party.NewPerformer(200, "Boris", "boris@example.com")
	require.NoError(t, err)
	require.NoError(t, repository.AddPerformer(ctx, performer))

	t.Run("by id", func(t *testing.T) {
		got, err := repository.GetCustomer(ctx, customer.ID())
		require.NoError(t, err)
		assert.Equal(t, "Анна", got.Name())
		assert.Equal(t, "anna@example.com", got.Email())
	})

	t.Run("by account", func(t *testing.T) {
		got, err := repository.PerformerByAccount(ctx, 200)
		require.NoError(t, err)
		assert.Equal(t, performer.ID(), got.ID())
		assert.EqualValues(t, 200, got.OwnerAccountID())
	})

	t.Run("roles are separate tables", func(t *testing.T) {
		_, err := repository.CustomerByAccount(ctx, 200)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = repository.GetPerformer(ctx, 404)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("one profile per account", func(t *testing.T) {
		again, err := party.NewCustomer(100, "Anna Again", "anna2@example.com")
		require.NoError(t, err)
		require.ErrorIs(t, repository.AddCustomer(ctx, again), errs.ErrObjectAlreadyExists)
	})
}

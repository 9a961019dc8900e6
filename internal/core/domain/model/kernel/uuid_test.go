package kernel_test

import (
	"testing"
	"time"

	"freelance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create unique version 4 UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		parsed, err := uuid.Parse(id1.String())
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.NotEqual(t, id1.String(), id2.String())
	})
}

func TestNewEventHeader_CarriesFreshID(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	a := kernel.NewEventHeader("order.created", at)
	b := kernel.NewEventHeader("order.created", at)

	assert.NotEqual(t, a.EventID().String(), b.EventID().String())
	assert.Equal(t, "order.created", a.Name())
	assert.Equal(t, at, a.OccurredAt())
}

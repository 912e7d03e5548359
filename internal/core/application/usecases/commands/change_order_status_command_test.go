package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Cancelled)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, order.Cancelled, cmd.Status())
}

func TestNewChangeOrderStatusCommand_EmptyID(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.Paid)
	require.Error(t, err)
}

func TestNewChangeOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Status(0))
	require.Error(t, err)
}

func TestChangeOrderStatusCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.ChangeOrderStatusCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
}

package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()
	items := []order.Item{mustItem(t, kernel.NewUUID(), 2, "3.50")}

	cmd, err := commands.NewCreateOrderCommand(orderID, items)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Len(t, cmd.Items(), 1)
}

func TestNewCreateOrderCommand_EmptyCart(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nil)
	require.NoError(t, err)
	assert.Empty(t, cmd.Items())
}

func TestNewCreateOrderCommand_EmptyID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, nil)
	require.Error(t, err)
}

func TestCreateOrderCommand_ItemsReturnsCopy(t *testing.T) {
	items := []order.Item{
		mustItem(t, kernel.NewUUID(), 1, "1.00"),
		mustItem(t, kernel.NewUUID(), 2, "2.00"),
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), items)
	require.NoError(t, err)

	got := cmd.Items()
	got[0] = got[1]
	assert.NotEqual(t, cmd.Items()[0], cmd.Items()[1])
}

func TestCreateOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}

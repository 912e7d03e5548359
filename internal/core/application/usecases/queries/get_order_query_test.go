package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.True(t, q.OrderID().IsEqual(orderID))
}

func TestNewGetOrderQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderQuery_ZeroValueFailsValidation(t *testing.T) {
	var q queries.GetOrderQuery
	require.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

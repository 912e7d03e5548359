package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	testCases := []struct {
		token    string
		expected order.Status
	}{
		{"PENDING", order.Pending},
		{"PAID", order.Paid},
		{"DELIVERED", order.Delivered},
		{"CANCELLED", order.Cancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			status, err := order.StatusFromString(tc.token)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
			assert.Equal(t, tc.token, status.String())
		})
	}

	t.Run("unknown token is rejected", func(t *testing.T) {
		for _, token := range []string{"", "pending", "SHIPPED", "UNKNOWN"} {
			_, err := order.StatusFromString(token)
			require.Error(t, err, "token %q must be rejected", token)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Paid, order.Delivered, order.Cancelled} {
		require.NoError(t, s.Validate())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
	assert.Equal(t, "PAID", order.Paid.String())
}

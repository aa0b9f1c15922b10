package order_test

import (
	"testing"

	"ordermanagement/internal/core/domain/model/kernel"
	"ordermanagement/internal/core/domain/model/order"
	"ordermanagement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	t.Run("starts pending without timestamps", func(t *testing.T) {
		s := order.NewShipment("UPS", "1Z999")

		require.NoError(t, s.Validate())
		assert.Equal(t, order.ShipmentPending, s.Status())
		assert.Equal(t, "UPS", s.Carrier())
		assert.Equal(t, "1Z999", s.TrackingNumber())
		assert.Nil(t, s.ShippedAt())
		assert.Nil(t, s.DeliveredAt())
		assert.False(t, s.CreatedAt().IsZero())
	})

	t.Run("carrier and tracking number are optional", func(t *testing.T) {
		s := order.NewShipment("", "")

		require.NoError(t, s.Validate())
	})
}

func TestShipmentMarkShipped(t *testing.T) {
	t.Run("pending shipment ships and stamps shippedAt", func(t *testing.T) {
		s := order.NewShipment("UPS", "1Z999")

		require.NoError(t, s.MarkShipped())

		assert.Equal(t, order.ShipmentShipped, s.Status())
		require.NotNil(t, s.ShippedAt())
		assert.Nil(t, s.DeliveredAt())
	})

	t.Run("shipped shipment cannot ship again", func(t *testing.T) {
		s := order.NewShipment("UPS", "1Z999")
		require.NoError(t, s.MarkShipped())

		err := s.MarkShipped()

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestShipmentMarkDelivered(t *testing.T) {
	t.Run("shipped shipment delivers and stamps deliveredAt", func(t *testing.T) {
		s := order.NewShipment("UPS", "1Z999")
		require.NoError(t, s.MarkShipped())

		require.NoError(t, s.MarkDelivered())

		assert.Equal(t, order.ShipmentDelivered, s.Status())
		require.NotNil(t, s.DeliveredAt())
	})

	t.Run("pending shipment cannot deliver", func(t *testing.T) {
		s := order.NewShipment("UPS", "1Z999")

		err := s.MarkDelivered()

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Nil(t, s.DeliveredAt())
	})
}

func TestShipmentValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var s order.Shipment

		require.ErrorIs(t, s.Validate(), order.ErrShipmentIsNotConstructed)
	})
}

func TestPaymentStatusString(t *testing.T) {
	tests := []struct {
		status   order.PaymentStatus
		expected string
	}{
		{order.PaymentInitiated, "INITIATED"},
		{order.PaymentAuthorized, "AUTHORIZED"},
		{order.PaymentCaptured, "CAPTURED"},
		{order.PaymentFailed, "FAILED"},
		{order.PaymentRefunded, "REFUNDED"},
		{order.PaymentStatusUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestNewPayment(t *testing.T) {
	t.Run("starts initiated", func(t *testing.T) {
		p, err := order.NewPayment(money(t, "25.00"), order.DefaultPaymentMethod)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, order.PaymentInitiated, p.Status())
		assert.True(t, p.Amount().IsEqual(money(t, "25.00")))
		assert.False(t, p.CreatedAt().IsZero())
	})

	t.Run("requires a method", func(t *testing.T) {
		_, err := order.NewPayment(money(t, "25.00"), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a constructed amount", func(t *testing.T) {
		var amount kernel.Money

		_, err := order.NewPayment(amount, order.DefaultPaymentMethod)

		require.Error(t, err)
	})
}

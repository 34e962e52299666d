package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alovak/payment-api/checkout"
	"github.com/alovak/payment-api/checkout/models"
	"github.com/alovak/payment-api/internal/twocheckout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	order := checkout.NewOrder("tok_abc")

	require.Equal(t, models.AuthorizationRequest{
		MerchantOrderID: "123",
		Token:           "tok_abc",
		Currency:        "USD",
		Total:           "1.00",
		BillingAddress: models.BillingAddress{
			Name:         "Testing Tester",
			AddressLine1: "123 Test St",
			City:         "Columbus",
			State:        "OH",
			ZipCode:      "43123",
			Country:      "USA",
			Email:        "example@2co.com",
			PhoneNumber:  "555-555-5555",
		},
	}, order)
}

func TestPlaceOrder_Outcomes(t *testing.T) {
	metrics := checkout.NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	approved := checkout.NewService(discardLogger(), &stubGateway{resp: &models.AuthorizationResponse{ResponseMsg: "Approved"}}, metrics)
	msg, err := approved.PlaceOrder(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "Order Complete: Approved", msg)

	declined := checkout.NewService(discardLogger(), &stubGateway{err: &twocheckout.Error{Message: "Card declined"}}, metrics)
	msg, err = declined.PlaceOrder(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "Order Failed: Card declined", msg)

	broken := checkout.NewService(discardLogger(), &stubGateway{err: errors.New("connection reset")}, metrics)
	_, err = broken.PlaceOrder(ctx, "tok")
	require.ErrorContains(t, err, "connection reset")

	empty := checkout.NewService(discardLogger(), &stubGateway{}, metrics)
	_, err = empty.PlaceOrder(ctx, "tok")
	require.Error(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.Orders.WithLabelValues("completed")))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.Orders.WithLabelValues("failed")))
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.Orders.WithLabelValues("error")))
}

func TestPlaceOrder_NilMetrics(t *testing.T) {
	svc := checkout.NewService(discardLogger(), &stubGateway{resp: &models.AuthorizationResponse{ResponseMsg: "Approved"}}, nil)

	msg, err := svc.PlaceOrder(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "Order Complete: Approved", msg)
}

package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alovak/payment-api/checkout/models"
	"github.com/alovak/payment-api/internal/mask"
	"github.com/alovak/payment-api/internal/twocheckout"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Authorizer is the payment gateway's synchronous authorize operation.
type Authorizer interface {
	Authorize(ctx context.Context, req models.AuthorizationRequest) (*models.AuthorizationResponse, error)
}

type Service struct {
	gateway Authorizer
	metrics *Metrics
	logger  *slog.Logger
}

func NewService(logger *slog.Logger, gateway Authorizer, metrics *Metrics) *Service {
	return &Service{
		gateway: gateway,
		metrics: metrics,
		logger:  logger,
	}
}

// NewOrder returns the fixed test order for token. Only the token comes from
// the caller.
func NewOrder(token string) models.AuthorizationRequest {
	return models.AuthorizationRequest{
		MerchantOrderID: "123",
		Token:           token,
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
	}
}

// PlaceOrder authorizes the fixed order with token and returns the message
// shown to the customer. A gateway rejection is not an error: it yields an
// "Order Failed" message. Any other failure is returned as error.
func (s *Service) PlaceOrder(ctx context.Context, token string) (string, error) {
	logger := s.logger.With(
		slog.String("attempt_id", uuid.New().String()),
		slog.String("token", mask.Token(token)),
	)

	start := time.Now()
	resp, err := s.gateway.Authorize(ctx, NewOrder(token))
	elapsed := time.Since(start)

	if err != nil {
		var gwErr *twocheckout.Error
		if errors.As(err, &gwErr) {
			s.metrics.observe(outcomeFailed, elapsed)
			logger.Info("order declined", slog.String("error_code", gwErr.Code), slog.String("reason", gwErr.Message))
			return "Order Failed: " + gwErr.Message, nil
		}

		s.metrics.observe(outcomeError, elapsed)
		logger.Error("authorizing order", "err", err)
		return "", fmt.Errorf("authorizing order: %w", err)
	}
	if resp == nil {
		s.metrics.observe(outcomeError, elapsed)
		logger.Error("authorizing order", "err", "empty gateway response")
		return "", fmt.Errorf("authorizing order: empty gateway response")
	}

	s.metrics.observe(outcomeCompleted, elapsed)
	logger.Info("order complete",
		slog.String("response_code", resp.ResponseCode),
		slog.String("order_number", resp.OrderNumber),
		slog.Duration("elapsed", elapsed),
	)

	return "Order Complete: " + resp.ResponseMsg, nil
}

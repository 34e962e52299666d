package twocheckout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alovak/payment-api/checkout/models"
)

const (
	SandboxURL = "https://sandbox.2checkout.com"
	LiveURL    = "https://www.2checkout.com"
)

// Credentials identify the seller account used for every call made by a Client.
type Credentials struct {
	SellerID   string
	PrivateKey string
	Sandbox    bool
	// BaseURL overrides the sandbox/live endpoint when set.
	BaseURL string
}

type Client struct {
	Base  string
	HTTP  *http.Client
	creds Credentials
}

func NewClient(creds Credentials, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	base := creds.BaseURL
	if base == "" {
		base = LiveURL
		if creds.Sandbox {
			base = SandboxURL
		}
	}

	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc, creds: creds}
}

// Error is an authorization failure reported by the gateway itself.
type Error struct {
	Message    string
	Code       string
	HTTPStatus string
}

func (e *Error) Error() string {
	return e.Message
}

type authRequest struct {
	SellerID   string `json:"sellerId"`
	PrivateKey string `json:"privateKey"`
	models.AuthorizationRequest
}

type envelope struct {
	ValidationErrors json.RawMessage `json:"validationErrors"`
	Exception        *exception      `json:"exception"`
	Response         *response       `json:"response"`
}

type exception struct {
	ErrorMsg   string     `json:"errorMsg"`
	ErrorCode  flexString `json:"errorCode"`
	HTTPStatus flexString `json:"httpStatus"`
}

type response struct {
	ResponseCode    string     `json:"responseCode"`
	ResponseMsg     string     `json:"responseMsg"`
	OrderNumber     flexString `json:"orderNumber"`
	MerchantOrderID flexString `json:"merchantOrderId"`
	TransactionID   flexString `json:"transactionId"`
	CurrencyCode    string     `json:"currencyCode"`
	Total           flexString `json:"total"`
}

// flexString accepts both JSON strings and numbers; the gateway is not consistent.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Authorize calls the gateway's authService and blocks until it answers.
// A gateway rejection is returned as *Error; anything else is a plain error.
func (c *Client) Authorize(ctx context.Context, req models.AuthorizationRequest) (*models.AuthorizationResponse, error) {
	target := fmt.Sprintf("%s/checkout/api/1/%s/rs/authService", c.Base, url.PathEscape(c.creds.SellerID))

	b, err := json.Marshal(authRequest{
		SellerID:             c.creds.SellerID,
		PrivateKey:           c.creds.PrivateKey,
		AuthorizationRequest: req,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding authorization: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("building authorization request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("authService: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading authService response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("authService status=%d body=%s: %w", resp.StatusCode, snippet(body), err)
	}

	if env.Exception != nil {
		return nil, &Error{
			Message:    env.Exception.ErrorMsg,
			Code:       string(env.Exception.ErrorCode),
			HTTPStatus: string(env.Exception.HTTPStatus),
		}
	}

	if env.Response == nil {
		return nil, errors.New("authService returned neither response nor exception")
	}

	r := env.Response
	return &models.AuthorizationResponse{
		ResponseCode:    r.ResponseCode,
		ResponseMsg:     r.ResponseMsg,
		OrderNumber:     string(r.OrderNumber),
		MerchantOrderID: string(r.MerchantOrderID),
		TransactionID:   string(r.TransactionID),
		CurrencyCode:    r.CurrencyCode,
		Total:           string(r.Total),
	}, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}

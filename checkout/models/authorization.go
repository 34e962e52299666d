package models

// AuthorizationRequest is the order payload sent to the gateway's authorize call.
type AuthorizationRequest struct {
	MerchantOrderID string         `json:"merchantOrderId"`
	Token           string         `json:"token"`
	Currency        string         `json:"currency"`
	Total           string         `json:"total"`
	BillingAddress  BillingAddress `json:"billingAddr"`
}

type BillingAddress struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addrLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
}

// AuthorizationResponse is the "response" object of a successful authorization.
type AuthorizationResponse struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMsg     string `json:"responseMsg"`
	OrderNumber     string `json:"orderNumber,omitempty"`
	MerchantOrderID string `json:"merchantOrderId,omitempty"`
	TransactionID   string `json:"transactionId,omitempty"`
	CurrencyCode    string `json:"currencyCode,omitempty"`
	Total           string `json:"total,omitempty"`
}

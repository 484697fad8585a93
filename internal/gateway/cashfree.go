// Package gateway is the boundary to the Cashfree payment API. Only
// this process talks to the provider; the browser never does, since that
// would require shipping the secret key in client-delivered code.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"luxelush/internal/domain"
)

const (
	apiVersion    = "2023-08-01"
	productionURL = "https://api.cashfree.com/pg"
	sandboxURL    = "https://sandbox.cashfree.com/pg"
)

// Config selects the provider environment and credentials. BaseURL
// overrides the environment-derived endpoint, used by tests.
type Config struct {
	AppID       string
	SecretKey   string
	Environment string // "sandbox" or "production"
	BaseURL     string
	Timeout     time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	appID   string
	secret  string
	log     *zap.Logger
}

// New builds a gateway client. Missing credentials are an
// IntegrationError: a deployment defect, not a payment failure.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.AppID == "" || cfg.SecretKey == "" {
		return nil, &domain.IntegrationError{Msg: "cashfree credentials are not configured"}
	}
	base := cfg.BaseURL
	if base == "" {
		if cfg.Environment == "production" {
			base = productionURL
		} else {
			base = sandboxURL
		}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: base,
		appID:   cfg.AppID,
		secret:  cfg.SecretKey,
		log:     log,
	}, nil
}

// CreateOrderResult is the canonical unwrapped shape handed to the rest
// of the system regardless of how the provider framed its response.
type CreateOrderResult struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	Status           string `json:"order_status"`
	Amount           int64  `json:"order_amount"`
	Currency         string `json:"order_currency"`
}

type customerWire struct {
	ID    string `json:"customer_id"`
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
	Phone string `json:"customer_phone"`
}

type orderMetaWire struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type createOrderWire struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     int64             `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails customerWire      `json:"customer_details"`
	OrderMeta       orderMetaWire     `json:"order_meta"`
	OrderNote       string            `json:"order_note,omitempty"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type createOrderRespWire struct {
	OrderID          string  `json:"order_id"`
	PaymentSessionID string  `json:"payment_session_id"`
	Status           string  `json:"order_status"`
	Amount           float64 `json:"order_amount"`
	Currency         string  `json:"order_currency"`
}

type paymentWire struct {
	ID      int64   `json:"cf_payment_id"`
	Status  string  `json:"payment_status"`
	Amount  float64 `json:"payment_amount"`
	Message string  `json:"payment_message"`
	Time    string  `json:"payment_time"`
}

type orderStatusWire struct {
	OrderID  string        `json:"order_id"`
	Status   string        `json:"order_status"`
	Amount   float64       `json:"order_amount"`
	Currency string        `json:"order_currency"`
	Payments []paymentWire `json:"payments"`
}

// CreateOrder registers the order with the provider and returns the
// payment session handle the hosted checkout needs. A response without a
// payment_session_id is a ProtocolError, treated as more severe than a
// declined payment because it means the integration contract is broken.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (*CreateOrderResult, error) {
	body := createOrderWire{
		OrderID:       order.ID,
		OrderAmount:   order.Amount,
		OrderCurrency: order.Currency,
		CustomerDetails: customerWire{
			ID:    order.Customer.ID,
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
		},
		OrderMeta: orderMetaWire{ReturnURL: order.ReturnURL, NotifyURL: order.NotifyURL},
		OrderNote: order.Note,
		OrderTags: order.Tags,
	}

	raw, err := c.post(ctx, "/orders", body)
	if err != nil {
		return nil, err
	}

	var resp createOrderRespWire
	if err := json.Unmarshal(unwrapEnvelope(raw), &resp); err != nil {
		return nil, &domain.ProtocolError{Msg: "malformed create-order response", Err: err}
	}
	if resp.PaymentSessionID == "" {
		return nil, &domain.ProtocolError{Msg: "create-order response missing payment_session_id"}
	}

	c.log.Info("gateway order created",
		zap.String("order_id", resp.OrderID),
		zap.String("order_status", resp.Status))

	return &CreateOrderResult{
		OrderID:          resp.OrderID,
		PaymentSessionID: resp.PaymentSessionID,
		Status:           resp.Status,
		Amount:           int64(math.Round(resp.Amount)),
		Currency:         resp.Currency,
	}, nil
}

// GetOrderStatus fetches the provider's current view of an order.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	raw, err := c.get(ctx, "/orders/"+orderID)
	if err != nil {
		return nil, err
	}

	var resp orderStatusWire
	if err := json.Unmarshal(unwrapEnvelope(raw), &resp); err != nil {
		return nil, &domain.ProtocolError{Msg: "malformed order-status response", Err: err}
	}
	if resp.OrderID == "" || resp.Status == "" {
		return nil, &domain.ProtocolError{Msg: "order-status response missing order_id or order_status"}
	}

	status := &domain.OrderStatus{
		OrderID:  resp.OrderID,
		Status:   resp.Status,
		Amount:   int64(math.Round(resp.Amount)),
		Currency: resp.Currency,
	}
	for _, p := range resp.Payments {
		status.Payments = append(status.Payments, domain.PaymentAttempt{
			ID:      p.ID,
			Status:  p.Status,
			Amount:  int64(math.Round(p.Amount)),
			Message: p.Message,
			Time:    p.Time,
		})
	}
	return status, nil
}

// VerifyPayment is the best-effort return-URL check. It returns false,
// not an error, for an ordinary "not yet paid"; a failing status query
// still surfaces as a GatewayError so the UI can tell "we don't know"
// apart from "we know it failed".
func (c *Client) VerifyPayment(ctx context.Context, orderID string) (bool, error) {
	status, err := c.GetOrderStatus(ctx, orderID)
	if err != nil {
		return false, err
	}
	return Verified(status), nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.GatewayError{Msg: "request to payment gateway failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	if err != nil {
		return nil, &domain.GatewayError{Msg: "reading gateway response failed", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.GatewayError{StatusCode: resp.StatusCode, Msg: errorMessage(raw)}
	}
	return raw, nil
}

// errorMessage pulls the provider's "message" field out of an error
// body, substituting a generic text when the body is not parseable.
func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "payment gateway returned an error"
}

// unwrapEnvelope normalizes the two response framings the backend may
// use, flat or {success, data}, into the flat shape. The rest of the
// system only ever sees the canonical form.
func unwrapEnvelope(raw []byte) []byte {
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if env.Success != nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf.Bytes(), nil
}

package bold

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

	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

const (
	defaultBaseURL            = "https://integrations.api.bold.co"
	linkPath                  = "online/link/v2"
	responseBodyReadLimit     = 2048
	defaultCurrency           = "COP"
	amountTypeClosed          = "CLOSE"
	defaultExpirationSecs     = 300
	defaultHTTPTimeout        = 15 * time.Second
	authorizationHeaderFormat = "x-api-key %s"
)

var errAPIKeyRequired = errors.New("bold api key is required")

// Client wraps the Bold payment-link API used for checkout and
// reconciliation status queries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	currency   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Bold base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Bold client from configuration.
func NewClient(cfg config.BoldConfig, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		currency:   defaultCurrency,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}
	if trimmed := strings.TrimSpace(cfg.Currency); trimmed != "" {
		client.currency = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return client, nil
}

// CreateLinkRequest describes a new payment link.
type CreateLinkRequest struct {
	AmountMinorUnits  int64
	Description       string
	ExpirationSeconds int
	CallbackURL       string
}

// PaymentLink is the minted link returned by Bold.
type PaymentLink struct {
	URL    string
	LinkID string
}

type linkAmount struct {
	Currency    string `json:"currency"`
	TotalAmount int64  `json:"total_amount"`
}

type createLinkPayload struct {
	AmountType     string     `json:"amount_type"`
	Amount         linkAmount `json:"amount"`
	Description    string     `json:"description"`
	ExpirationDate int64      `json:"expiration_date"`
	CallbackURL    string     `json:"callback_url,omitempty"`
}

type createLinkResponse struct {
	Payload struct {
		URL         string `json:"url"`
		PaymentLink string `json:"payment_link"`
	} `json:"payload"`
	Errors []json.RawMessage `json:"errors"`
	Error  *json.RawMessage  `json:"error"`
}

type linkStatusResponse struct {
	Status *string           `json:"status"`
	Errors []json.RawMessage `json:"errors"`
	Error  *json.RawMessage  `json:"error"`
}

// CreatePaymentLink mints a closed-amount payment link and returns its
// redirect URL plus the provider-issued link reference.
func (c *Client) CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "bold client not configured")
	}
	if req.AmountMinorUnits <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	expiration := req.ExpirationSeconds
	if expiration <= 0 {
		expiration = defaultExpirationSecs
	}

	// Bold expects the expiration as an absolute epoch-nanosecond deadline.
	payload := createLinkPayload{
		AmountType: amountTypeClosed,
		Amount: linkAmount{
			Currency:    c.currency,
			TotalAmount: req.AmountMinorUnits,
		},
		Description:    req.Description,
		ExpirationDate: time.Now().Add(time.Duration(expiration) * time.Second).UnixNano(),
		CallbackURL:    strings.TrimSpace(req.CallbackURL),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal link request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(linkPath), bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build link request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute link request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, upstreamStatusError(resp, "create payment link failed")
	}

	var apiResp createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode link response")
	}

	// Bold sometimes reports failures inside an HTTP 200 body.
	if embedded := embeddedError(apiResp.Errors, apiResp.Error); embedded != "" {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "provider rejected link creation").
			WithDetails(map[string]any{"provider_errors": embedded})
	}

	if apiResp.Payload.URL == "" || apiResp.Payload.PaymentLink == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "provider response missing payment link payload")
	}

	return &PaymentLink{
		URL:    apiResp.Payload.URL,
		LinkID: apiResp.Payload.PaymentLink,
	}, nil
}

// GetLinkStatus queries the live status of an existing payment link.
func (c *Client) GetLinkStatus(ctx context.Context, linkID string) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeConfiguration, "bold client not configured")
	}
	trimmed := strings.TrimSpace(linkID)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "link id is required")
	}

	endpoint := fmt.Sprintf("%s/%s", c.buildURL(linkPath), url.PathEscape(trimmed))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build link status request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute link status request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", upstreamStatusError(resp, "link status query failed")
	}

	var apiResp linkStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode link status response")
	}

	if embedded := embeddedError(apiResp.Errors, apiResp.Error); embedded != "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "provider rejected link status query").
			WithDetails(map[string]any{"provider_errors": embedded})
	}

	// A 200 without a status field is a protocol violation, not "no status".
	if apiResp.Status == nil || strings.TrimSpace(*apiResp.Status) == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "provider response missing status field")
	}

	return *apiResp.Status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf(authorizationHeaderFormat, c.apiKey))
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), strings.TrimLeft(path, "/"))
}

func upstreamStatusError(resp *http.Response, message string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeUpstream,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		message,
	)
}

func embeddedError(errs []json.RawMessage, single *json.RawMessage) string {
	if len(errs) > 0 {
		parts := make([]string, 0, len(errs))
		for _, raw := range errs {
			parts = append(parts, string(raw))
		}
		return strings.Join(parts, "; ")
	}
	if single != nil && len(*single) > 0 && string(*single) != "null" && string(*single) != `""` {
		return string(*single)
	}
	return ""
}

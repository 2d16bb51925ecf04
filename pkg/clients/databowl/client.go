package databowl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"databowl-gateway/pkg/apperrors"
	"databowl-gateway/pkg/config"
	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/metrics"
	"databowl-gateway/pkg/models"
	"databowl-gateway/pkg/utils"
)

const (
	userAgent = "DataBowl-Validator/1.0"

	// ServiceValidate is the only validation service DataBowl exposes.
	ServiceValidate = "validate"
	TypeHLR         = "hlr"
	TypeEmail       = "email"

	maxBodyBytes     = 1 << 20
	maxErrorBodySize = 200
)

// Client defines the interface for interacting with the DataBowl APIs.
type Client interface {
	// Validate performs a signed GET against the validation API.
	Validate(ctx context.Context, service, validationType string, data []Param) (*ValidationResponse, error)
	// SubmitLead POSTs a flattened lead. idempotencyKey may be empty.
	SubmitLead(ctx context.Context, payload models.LeadPayload, idempotencyKey string) (*SubmitResponse, error)
}

// ValidationResponse is the decoded validation API reply. result is a
// string for HLR lookups and a bool for email lookups.
type ValidationResponse struct {
	Result  json.RawMessage   `json:"result"`
	Network models.FlexString `json:"network"`
}

// ResultString returns result when it is a JSON string.
func (r *ValidationResponse) ResultString() (string, bool) {
	var s string
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return "", false
	}
	return s, true
}

// ResultBool returns result when it is a JSON bool.
func (r *ValidationResponse) ResultBool() (bool, bool) {
	var b bool
	if err := json.Unmarshal(r.Result, &b); err != nil {
		return false, false
	}
	return b, true
}

// SubmitResponse describes an accepted lead.
type SubmitResponse struct {
	StatusCode int
	// Body is the upstream JSON, or nil when the body was empty or not JSON.
	Body json.RawMessage
}

// Option customises a client.
type Option func(*clientImpl)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) { c.httpClient = hc }
}

// WithClock replaces time.Now, used for the signed timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *clientImpl) { c.now = now }
}

type clientImpl struct {
	cfg        config.DataBowlConfig
	httpClient *http.Client
	logger     logger.Logger
	now        func() time.Time
}

// NewClient creates a new DataBowl client.
func NewClient(cfg config.DataBowlConfig, log logger.Logger, opts ...Option) Client {
	c := &clientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithFields(map[string]interface{}{"component": "databowl"}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *clientImpl) Validate(ctx context.Context, service, validationType string, data []Param) (*ValidationResponse, error) {
	op := "validate_" + validationType
	started := time.Now()

	endpoint, err := c.signedURL(service, validationType, data)
	if err != nil {
		return nil, fmt.Errorf("error building validation URL: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("calling DataBowl validation API", map[string]interface{}{
		"url": utils.MaskSecrets(endpoint, c.cfg.PublicKey, c.cfg.PrivateKey),
	})

	status, body, err := c.do(req)
	if err != nil {
		metrics.ObserveRemoteCall(op, "transport_error", started)
		return nil, err
	}

	c.logger.Debug("DataBowl validation response", map[string]interface{}{
		"status": status,
		"body":   truncate(string(body), 500),
	})

	if status != http.StatusOK {
		metrics.ObserveRemoteCall(op, "remote_error", started)
		return nil, apperrors.NewRemoteError(status, truncate(string(body), maxErrorBodySize))
	}

	var out ValidationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		metrics.ObserveRemoteCall(op, "malformed", started)
		return nil, apperrors.NewMalformedResponse(status, truncate(string(body), maxErrorBodySize), err)
	}

	metrics.ObserveRemoteCall(op, "ok", started)
	return &out, nil
}

func (c *clientImpl) SubmitLead(ctx context.Context, payload models.LeadPayload, idempotencyKey string) (*SubmitResponse, error) {
	started := time.Now()

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	endpoint := LeadURL(c.cfg.LeadURL, payload.CampaignID, payload.SupplierID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.PublicKey)
	req.Header.Set("User-Agent", userAgent)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	status, body, err := c.do(req)
	if err != nil {
		metrics.ObserveRemoteCall("submit_lead", "transport_error", started)
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		metrics.ObserveRemoteCall("submit_lead", "remote_error", started)
		return nil, apperrors.NewRemoteError(status, truncate(string(body), maxErrorBodySize))
	}

	metrics.ObserveRemoteCall("submit_lead", "ok", started)

	out := &SubmitResponse{StatusCode: status}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && json.Valid(trimmed) {
		out.Body = json.RawMessage(trimmed)
	}
	return out, nil
}

// LeadURL substitutes {campaign_id} and {supplier_id} in the configured
// lead endpoint.
func LeadURL(template, campaignID, supplierID string) string {
	return strings.NewReplacer(
		"{campaign_id}", url.PathEscape(campaignID),
		"{supplier_id}", url.PathEscape(supplierID),
	).Replace(template)
}

func (c *clientImpl) signedURL(service, validationType string, data []Param) (string, error) {
	u, err := url.Parse(c.cfg.ValidationURL)
	if err != nil {
		return "", err
	}

	timestamp := c.now().Unix()
	q := u.Query()
	q.Set("key", c.cfg.PublicKey)
	q.Set("timestamp", strconv.FormatInt(timestamp, 10))
	q.Set("signature", Sign(c.cfg.PrivateKey, timestamp, service, validationType, data))
	q.Set("service", service)
	q.Set("type", validationType)
	for _, p := range data {
		q.Set("data["+p.Key+"]", p.Value)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *clientImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func (c *clientImpl) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full signed URL; keep only the cause.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.Warn("DataBowl request failed", map[string]interface{}{
			"method": req.Method,
			"host":   req.URL.Host,
			"error":  err.Error(),
		})
		return 0, nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, apperrors.NewTransportError(fmt.Errorf("error reading response: %w", err))
	}
	return resp.StatusCode, body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

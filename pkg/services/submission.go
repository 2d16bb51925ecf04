package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"databowl-gateway/pkg/apperrors"
	"databowl-gateway/pkg/clients/databowl"
	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/metrics"
	"databowl-gateway/pkg/models"
	"databowl-gateway/pkg/store"
	"databowl-gateway/pkg/utils"
)

const (
	// MsgMissingLeadFields is returned when a submit-lead body lacks a required field.
	MsgMissingLeadFields = "Missing required fields: leadData, campaign_id, supplier_id"
	// MsgLeadInProgress is returned for a retry while the first attempt is running.
	MsgLeadInProgress = "Lead submission already in progress, retry shortly"
)

// SubmitResult describes a submission that did not fail.
type SubmitResult struct {
	// Duplicate is set when a submission with the same idempotency key was
	// already accepted upstream and nothing was sent this time.
	Duplicate      bool
	IdempotencyKey string
	StatusCode     int
	Body           json.RawMessage
}

// LeadSubmissionService defines the interface for forwarding leads to DataBowl
type LeadSubmissionService interface {
	Submit(ctx context.Context, req models.LeadSubmitRequest, idempotencyKey string) (*SubmitResult, error)
}

type leadSubmissionServiceImpl struct {
	client databowl.Client
	ledger store.Ledger
	logger logger.Logger
	now    func() time.Time
}

// NewLeadSubmissionService creates a new submission service. ledger may be
// store.NoopLedger{} when deduplication is off.
func NewLeadSubmissionService(client databowl.Client, ledger store.Ledger, log logger.Logger) LeadSubmissionService {
	return &leadSubmissionServiceImpl{
		client: client,
		ledger: ledger,
		logger: log.WithFields(map[string]interface{}{"component": "lead_submission"}),
		now:    time.Now,
	}
}

// Submit maps the lead to DataBowl fields and POSTs it once. When no
// idempotency key is given one is derived from the payload.
func (s *leadSubmissionServiceImpl) Submit(ctx context.Context, req models.LeadSubmitRequest, idempotencyKey string) (*SubmitResult, error) {
	if req.LeadData == nil || req.CampaignID == "" || req.SupplierID == "" {
		metrics.LeadSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewInvalidFormat(MsgMissingLeadFields)
	}

	payload := models.NewLeadPayload(*req.LeadData, req.CampaignID.String(), req.SupplierID.String(), s.now())

	if idempotencyKey == "" {
		key, err := Fingerprint(payload)
		if err != nil {
			return nil, err
		}
		idempotencyKey = key
	}

	log := s.logger.WithFields(map[string]interface{}{
		"campaign_id":     payload.CampaignID,
		"supplier_id":     payload.SupplierID,
		"phone_hash":      utils.ShortHash(payload.Phone),
		"idempotency_key": idempotencyKey,
	})

	switch s.reserve(ctx, log, idempotencyKey) {
	case store.Completed:
		log.Info("duplicate lead submission skipped", nil)
		metrics.LeadSubmissionsTotal.WithLabelValues("duplicate").Inc()
		return &SubmitResult{Duplicate: true, IdempotencyKey: idempotencyKey}, nil
	case store.InFlight:
		log.Info("lead submission already in progress", nil)
		metrics.LeadSubmissionsTotal.WithLabelValues("in_progress").Inc()
		return nil, apperrors.NewInProgress(MsgLeadInProgress)
	}

	// The ledger calls below must run even when the caller has gone away.
	ledgerCtx := context.WithoutCancel(ctx)

	resp, err := s.client.SubmitLead(ctx, payload, idempotencyKey)
	if err != nil {
		log.Error("lead submission failed", map[string]interface{}{"error": err.Error()})
		metrics.LeadSubmissionsTotal.WithLabelValues("failed").Inc()
		if relErr := s.ledger.Release(ledgerCtx, idempotencyKey); relErr != nil {
			log.Warn("could not release idempotency key", map[string]interface{}{"error": relErr.Error()})
		}
		return nil, err
	}

	if err := s.ledger.Complete(ledgerCtx, idempotencyKey); err != nil {
		log.Warn("could not mark idempotency key done", map[string]interface{}{"error": err.Error()})
	}

	log.Info("lead submitted", map[string]interface{}{"status": resp.StatusCode})
	metrics.LeadSubmissionsTotal.WithLabelValues("submitted").Inc()

	return &SubmitResult{
		IdempotencyKey: idempotencyKey,
		StatusCode:     resp.StatusCode,
		Body:           resp.Body,
	}, nil
}

// reserve claims the key. A ledger failure counts as Reserved.
func (s *leadSubmissionServiceImpl) reserve(ctx context.Context, log logger.Logger, key string) store.Reservation {
	state, err := s.ledger.Reserve(ctx, key)
	if err != nil {
		log.Warn("idempotency ledger unavailable", map[string]interface{}{"error": err.Error()})
		return store.Reserved
	}
	return state
}

// Fingerprint is the SHA-256 of the payload without its timestamp, so two
// identical posts map to the same key.
func Fingerprint(payload models.LeadPayload) (string, error) {
	payload.Timestamp = ""
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error fingerprinting lead: %w", err)
	}
	return utils.HashString(string(b)), nil
}

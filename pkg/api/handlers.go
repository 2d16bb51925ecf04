package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"databowl-gateway/pkg/apperrors"
	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/middleware"
	"databowl-gateway/pkg/models"
	"databowl-gateway/pkg/services"
)

const (
	msgInvalidJSON       = "Invalid JSON request"
	msgLeadSubmitted     = "Lead successfully submitted to DataBowl"
	msgLeadDuplicate     = "Lead already submitted to DataBowl"
	msgLeadSubmitFailed  = "Error submitting lead"
	msgMethodNotAllowed  = "Method not allowed"
	msgNotFound          = "Not found"
	idempotencyKeyHeader = "Idempotency-Key"
	maxRequestBodyBytes  = 1 << 20
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	validationService services.ValidationService
	submissionService services.LeadSubmissionService
	leadSchema        *SchemaValidator
	logger            logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	validationService services.ValidationService,
	submissionService services.LeadSubmissionService,
	log logger.Logger,
) (*Handlers, error) {
	schema, err := NewLeadSchemaValidator()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		validationService: validationService,
		submissionService: submissionService,
		leadSchema:        schema,
		logger:            log,
	}, nil
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleValidate runs the phone, email or postcode checks named by action.
// Failed checks still answer 200; only a malformed request is a 400.
func (h *Handlers) HandleValidate(c *gin.Context) {
	log := h.requestLogger(c)

	body, ok := h.readBody(c, log)
	if !ok {
		c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: msgInvalidJSON})
		return
	}

	if !isJSONObject(body) || isEmptyObject(body) {
		log.Warn("validation request is empty or not a JSON object", nil)
		c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: msgInvalidJSON})
		return
	}

	var req models.ValidationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warn("error parsing validation request", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: msgInvalidJSON})
		return
	}

	data, err := h.validationService.Dispatch(c.Request.Context(), req, ClientIP(c.Request))
	if err != nil {
		log.Warn("validation request rejected", map[string]interface{}{
			"action": req.Action,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: data})
}

// HandleSubmitLead forwards a funnel lead to DataBowl.
func (h *Handlers) HandleSubmitLead(c *gin.Context) {
	log := h.requestLogger(c)

	body, ok := h.readBody(c, log)
	if !ok || !isJSONObject(body) {
		h.leadFailed(c, msgInvalidJSON)
		return
	}

	if err := h.leadSchema.Validate(body); err != nil {
		log.Warn("lead body failed schema validation", map[string]interface{}{"error": err.Error()})
		h.leadFailed(c, err.Error())
		return
	}

	var req models.LeadSubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Warn("error parsing lead body", map[string]interface{}{"error": err.Error()})
		h.leadFailed(c, msgInvalidJSON)
		return
	}

	res, err := h.submissionService.Submit(c.Request.Context(), req, c.GetHeader(idempotencyKeyHeader))
	if apperrors.IsInProgress(err) {
		c.JSON(http.StatusConflict, models.APIResponse{
			Success: false,
			Message: msgLeadSubmitFailed,
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		h.leadFailed(c, err.Error())
		return
	}

	c.Header(idempotencyKeyHeader, res.IdempotencyKey)

	if res.Duplicate {
		c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: msgLeadDuplicate})
		return
	}

	c.JSON(http.StatusOK, models.LeadSubmitResponse{
		Success:  true,
		Message:  msgLeadSubmitted,
		HTTPCode: res.StatusCode,
		Data:     res.Body,
	})
}

// MethodNotAllowed answers requests whose path exists under another method.
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.APIResponse{Success: false, Error: msgMethodNotAllowed})
}

func (h *Handlers) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.APIResponse{Success: false, Error: msgNotFound})
}

func (h *Handlers) leadFailed(c *gin.Context, reason string) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Message: msgLeadSubmitFailed,
		Error:   reason,
	})
}

func (h *Handlers) readBody(c *gin.Context, log logger.Logger) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBodyBytes))
	if err != nil {
		log.Warn("error reading request body", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func (h *Handlers) requestLogger(c *gin.Context) logger.Logger {
	return h.logger.WithFields(map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"route":      c.FullPath(),
	})
}

func isJSONObject(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '{' && json.Valid(body)
}

// isEmptyObject reports a body of {}, which carries no request at all.
func isEmptyObject(body []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}

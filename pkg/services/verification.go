package services

import (
	"context"

	"databowl-gateway/pkg/clients/databowl"
	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/metrics"
	"databowl-gateway/pkg/models"
	"databowl-gateway/pkg/utils"
	"databowl-gateway/pkg/validation"
)

const (
	msgPhoneLive        = "Telefoonnummer is geldig en actief"
	msgPhoneDead        = "Dit telefoonnummer is niet actief of ongeldig"
	msgPhoneRetryLater  = "Telefoonnummer kan op dit moment niet worden geverifieerd. Probeer het later opnieuw."
	msgPhoneUnknown     = "Onbekende validatiestatus"
	msgPhoneLookupError = "Fout bij validatie van telefoonnummer: "
	msgEmailValid       = "E-mailadres is geldig"
	msgEmailUnreachable = "Dit e-mailadres is niet geldig of bereikbaar"
	msgEmailFormatOnly  = "E-mailadres format is geldig"
	msgEmailLookupError = "Fout bij validatie van e-mailadres: "
	defaultNetwork      = "Unknown"
)

// PhoneVerificationService checks Dutch mobile numbers with an HLR lookup.
type PhoneVerificationService interface {
	VerifyPhone(ctx context.Context, phone string) models.ValidationResult
}

type phoneVerificationServiceImpl struct {
	client databowl.Client
	logger logger.Logger
}

// NewPhoneVerificationService creates a new phone verification service
func NewPhoneVerificationService(client databowl.Client, log logger.Logger) PhoneVerificationService {
	return &phoneVerificationServiceImpl{
		client: client,
		logger: log.WithFields(map[string]interface{}{"check": "phone"}),
	}
}

// VerifyPhone normalizes the number and asks DataBowl whether it is live.
// A number that fails normalization never reaches the network.
func (s *phoneVerificationServiceImpl) VerifyPhone(ctx context.Context, phone string) models.ValidationResult {
	normalized, err := validation.NormalizeDutchPhone(phone)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("phone", models.StatusInvalidFormat).Inc()
		return models.Failure(models.StatusInvalidFormat, err.Error())
	}

	phoneHash := utils.ShortHash(normalized)

	resp, err := s.client.Validate(ctx, databowl.ServiceValidate, databowl.TypeHLR, []databowl.Param{
		{Key: "mobile", Value: normalized},
	})
	if err != nil {
		s.logger.Error("phone lookup failed", map[string]interface{}{
			"phone_hash": phoneHash,
			"error":      err.Error(),
		})
		metrics.ValidationsTotal.WithLabelValues("phone", models.StatusError).Inc()
		return models.Failure(models.StatusError, msgPhoneLookupError+err.Error())
	}

	status, _ := resp.ResultString()
	s.logger.Info("phone lookup completed", map[string]interface{}{
		"phone_hash": phoneHash,
		"result":     status,
	})

	var result models.ValidationResult
	switch status {
	case models.StatusLive:
		network := resp.Network.String()
		if network == "" {
			network = defaultNetwork
		}
		result = models.ValidationResult{
			Success:        true,
			Status:         models.StatusLive,
			Network:        network,
			FormattedPhone: normalized,
			Message:        msgPhoneLive,
		}
	case models.StatusDead:
		result = models.Failure(models.StatusDead, msgPhoneDead)
	case models.StatusRetryLater:
		result = models.Failure(models.StatusRetryLater, msgPhoneRetryLater)
	default:
		result = models.Failure(models.StatusUnknown, msgPhoneUnknown)
	}

	metrics.ValidationsTotal.WithLabelValues("phone", result.Status).Inc()
	return result
}

// EmailVerificationService checks email format and deliverability.
type EmailVerificationService interface {
	VerifyEmail(ctx context.Context, email string) models.ValidationResult
}

type emailVerificationServiceImpl struct {
	client          databowl.Client
	logger          logger.Logger
	fallbackOnError bool
}

// NewEmailVerificationService creates a new email verification service.
// With fallbackOnError set, a failed lookup accepts any well-formed address.
func NewEmailVerificationService(client databowl.Client, log logger.Logger, fallbackOnError bool) EmailVerificationService {
	return &emailVerificationServiceImpl{
		client:          client,
		logger:          log.WithFields(map[string]interface{}{"check": "email"}),
		fallbackOnError: fallbackOnError,
	}
}

func (s *emailVerificationServiceImpl) VerifyEmail(ctx context.Context, email string) models.ValidationResult {
	email, err := validation.CheckEmailFormat(email)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("email", models.StatusInvalidFormat).Inc()
		return models.Failure(models.StatusInvalidFormat, err.Error())
	}

	resp, err := s.client.Validate(ctx, databowl.ServiceValidate, databowl.TypeEmail, []databowl.Param{
		{Key: "email", Value: email},
	})
	if err != nil {
		return s.lookupFailed(email, err)
	}

	if ok, isBool := resp.ResultBool(); isBool && ok {
		metrics.ValidationsTotal.WithLabelValues("email", models.StatusValid).Inc()
		return models.ValidationResult{
			Success: true,
			Status:  models.StatusValid,
			Email:   email,
			Message: msgEmailValid,
		}
	}

	metrics.ValidationsTotal.WithLabelValues("email", models.StatusUndeliverable).Inc()
	return models.Failure(models.StatusUndeliverable, msgEmailUnreachable)
}

func (s *emailVerificationServiceImpl) lookupFailed(email string, err error) models.ValidationResult {
	fields := map[string]interface{}{
		"email_hash": utils.ShortHash(email),
		"error":      err.Error(),
	}

	if !s.fallbackOnError {
		s.logger.Error("email lookup failed", fields)
		metrics.ValidationsTotal.WithLabelValues("email", models.StatusError).Inc()
		return models.Failure(models.StatusError, msgEmailLookupError+err.Error())
	}

	s.logger.Warn("email lookup failed, accepting on format", fields)
	metrics.EmailFallbacksTotal.Inc()
	metrics.ValidationsTotal.WithLabelValues("email", "fallback").Inc()
	return models.ValidationResult{
		Success: true,
		Status:  models.StatusValid,
		Email:   email,
		Message: msgEmailFormatOnly,
	}
}

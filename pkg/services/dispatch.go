package services

import (
	"context"

	"databowl-gateway/pkg/apperrors"
	"databowl-gateway/pkg/metrics"
	"databowl-gateway/pkg/models"
	"databowl-gateway/pkg/validation"
)

// ValidationService routes a validation request to the matching checks.
type ValidationService interface {
	// Dispatch returns a models.ValidationResult, or a models.CombinedResult
	// for validate-all. Only an unknown action is an error; failed checks
	// are reported inside the result.
	Dispatch(ctx context.Context, req models.ValidationRequest, clientIP string) (interface{}, error)
}

type validationServiceImpl struct {
	phone PhoneVerificationService
	email EmailVerificationService
}

func NewValidationService(phone PhoneVerificationService, email EmailVerificationService) ValidationService {
	return &validationServiceImpl{phone: phone, email: email}
}

func (s *validationServiceImpl) Dispatch(ctx context.Context, req models.ValidationRequest, clientIP string) (interface{}, error) {
	switch req.Action {
	case models.ActionValidatePhone:
		return s.phone.VerifyPhone(ctx, req.Phone.String()), nil
	case models.ActionValidateEmail:
		return s.email.VerifyEmail(ctx, req.Email), nil
	case models.ActionValidatePostcode:
		return verifyPostcode(req), nil
	case models.ActionValidateAll:
		// Sequential; each check runs whatever the others returned.
		return models.CombinedResult{
			Phone:    s.phone.VerifyPhone(ctx, req.Phone.String()),
			Email:    s.email.VerifyEmail(ctx, req.Email),
			Postcode: verifyPostcode(req),
			ClientIP: clientIP,
		}, nil
	}
	return nil, apperrors.NewUnknownAction(req.Action)
}

func verifyPostcode(req models.ValidationRequest) models.ValidationResult {
	result := validation.ValidateDutchPostcode(req.Postcode, req.HouseNumber.String())
	metrics.ValidationsTotal.WithLabelValues("postcode", result.Status).Inc()
	return result
}

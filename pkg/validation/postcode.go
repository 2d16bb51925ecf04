package validation

import (
	"regexp"
	"strings"

	"databowl-gateway/pkg/models"
)

var (
	dutchPostcode = regexp.MustCompile(`^\d{4}[A-Z]{2}$`)
	houseNumber   = regexp.MustCompile(`^\d+[A-Z]?$`)
)

// ValidateDutchPostcode checks a postcode (NNNN AA) and, when given, a house
// number (digits plus at most one capital letter). No external call is made.
func ValidateDutchPostcode(postcode, houseNo string) models.ValidationResult {
	cleaned := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if !dutchPostcode.MatchString(cleaned) {
		return models.Failure(models.StatusInvalidFormat, MsgPostcodeInvalid)
	}

	if houseNo != "" {
		houseNo = strings.TrimSpace(strings.NewReplacer("-", "", " ", "").Replace(houseNo))
		if !houseNumber.MatchString(houseNo) {
			return models.Failure(models.StatusInvalidFormat, MsgHouseNumberInvalid)
		}
	}

	return models.ValidationResult{
		Success:     true,
		Status:      models.StatusValid,
		Postcode:    cleaned,
		HouseNumber: houseNo,
		ValidFormat: true,
		Message:     MsgPostcodeValid,
	}
}

// Package validation holds the pure, network free checks for Dutch contact data.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"databowl-gateway/pkg/apperrors"
)

var (
	canonicalDutchPhone = regexp.MustCompile(`^\+31\d{9,10}$`)
	bareCountryCode     = regexp.MustCompile(`^31\d{9,10}$`)
	localMobile         = regexp.MustCompile(`^06\d{8}$`)
)

// NormalizeDutchPhone rewrites a loosely formatted Dutch number to +31 form.
// Accepted shapes, in order: +31..., 0031..., 06 plus 8 digits, 31 plus 9-10
// digits. The returned number always matches ^\+31\d{9,10}$.
func NormalizeDutchPhone(raw string) (string, error) {
	cleaned := stripPhone(raw)

	switch {
	case strings.HasPrefix(cleaned, "+31"):
		return checkCanonical(cleaned)
	case strings.HasPrefix(cleaned, "0031"):
		return checkCanonical("+31" + cleaned[4:])
	case localMobile.MatchString(cleaned):
		return "+31" + cleaned[1:], nil
	case bareCountryCode.MatchString(cleaned):
		return "+" + cleaned, nil
	}

	return "", apperrors.NewInvalidFormat(MsgPhoneInvalid)
}

func checkCanonical(phone string) (string, error) {
	if len(phone) < 11 {
		return "", apperrors.NewInvalidFormat(MsgPhoneTooShort)
	}
	if !canonicalDutchPhone.MatchString(phone) {
		return "", apperrors.NewInvalidFormat(MsgPhoneInvalid)
	}
	return phone, nil
}

func stripPhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '(', ')', '.':
			return -1
		}
		return r
	}, raw)
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"databowl-gateway/pkg/models"
)

func TestValidateDutchPostcode(t *testing.T) {
	tests := []struct {
		name         string
		postcode     string
		houseNo      string
		wantSuccess  bool
		wantPostcode string
		wantHouseNo  string
		wantErr      string
	}{
		{name: "spaced postcode", postcode: "1234 AB", wantSuccess: true, wantPostcode: "1234AB"},
		{name: "lowercase postcode", postcode: "1234ab", wantSuccess: true, wantPostcode: "1234AB"},
		{name: "three letters", postcode: "1234ABC", wantErr: MsgPostcodeInvalid},
		{name: "three digits", postcode: "123 AB", wantErr: MsgPostcodeInvalid},
		{name: "empty", postcode: "", wantErr: MsgPostcodeInvalid},
		{name: "house number digits", postcode: "1234AB", houseNo: "12", wantSuccess: true, wantPostcode: "1234AB", wantHouseNo: "12"},
		{name: "house number letter", postcode: "1234AB", houseNo: "12A", wantSuccess: true, wantPostcode: "1234AB", wantHouseNo: "12A"},
		{name: "house number hyphen", postcode: "1234AB", houseNo: "12-A", wantSuccess: true, wantPostcode: "1234AB", wantHouseNo: "12A"},
		{name: "house number lowercase", postcode: "1234AB", houseNo: "12-a", wantErr: MsgHouseNumberInvalid},
		{name: "house number two letters", postcode: "1234AB", houseNo: "12AB", wantErr: MsgHouseNumberInvalid},
		{name: "house number letter only", postcode: "1234AB", houseNo: "A", wantErr: MsgHouseNumberInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateDutchPostcode(tt.postcode, tt.houseNo)

			assert.Equal(t, tt.wantSuccess, res.Success)
			if !tt.wantSuccess {
				assert.Equal(t, tt.wantErr, res.Error)
				assert.Equal(t, models.StatusInvalidFormat, res.Status)
				return
			}
			assert.Empty(t, res.Error)
			assert.True(t, res.ValidFormat)
			assert.Equal(t, tt.wantPostcode, res.Postcode)
			assert.Equal(t, tt.wantHouseNo, res.HouseNumber)
			assert.Equal(t, MsgPostcodeValid, res.Message)
		})
	}
}

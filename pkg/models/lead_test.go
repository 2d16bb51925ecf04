package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeadPayload_OnlyEmailAndPhone(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := LeadRecord{Email: "jan@example.nl", Phone: "+31612345678"}

	payload := NewLeadPayload(rec, "12", "34", now)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	emptyFields := []string{
		"f_18_title", "f_19_firstname", "f_20_lastname",
		"f_street_name", "f_house_number", "f_postal_code", "f_city",
		"f_question_1", "f_question_2", "f_question_3", "f_question_4", "f_question_5",
	}
	for _, name := range emptyFields {
		value, ok := fields[name]
		require.True(t, ok, "field %s missing", name)
		assert.Equal(t, "", value, "field %s", name)
	}

	assert.Equal(t, "jan@example.nl", fields["f_17_email"])
	assert.Equal(t, "+31612345678", fields["f_phone"])
	assert.Equal(t, "12", fields["campaign_id"])
	assert.Equal(t, "34", fields["supplier_id"])
	assert.Equal(t, LeadSource, fields["f_source"])
	assert.Equal(t, "2025-03-14T09:26:53Z", fields["f_timestamp"])
}

func TestNewLeadPayload_FullRecord(t *testing.T) {
	var req LeadSubmitRequest
	body := `{
		"campaign_id": 101,
		"supplier_id": "7",
		"leadData": {
			"title": "Dhr.",
			"firstname": "Jan",
			"lastname": "Jansen",
			"email": "jan@example.nl",
			"street": "Damrak",
			"housenumber": 12,
			"postcode": "1012LG",
			"city": "Amsterdam",
			"phone": "+31612345678",
			"funnel_answers": {
				"question_1": "ja",
				"question_2": "zuid",
				"question_3": 3500,
				"question_4": "30m2",
				"question_5": "koopwoning",
				"question_6": "ignored"
			}
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.LeadData)

	payload := NewLeadPayload(*req.LeadData, req.CampaignID.String(), req.SupplierID.String(), time.Now())

	assert.Equal(t, "101", payload.CampaignID)
	assert.Equal(t, "7", payload.SupplierID)
	assert.Equal(t, "Dhr.", payload.Title)
	assert.Equal(t, "12", payload.HouseNumber)
	assert.Equal(t, "1012LG", payload.PostalCode)
	assert.Equal(t, "ja", payload.Question1)
	assert.Equal(t, "3500", payload.Question3)
	assert.Equal(t, "koopwoning", payload.Question5)
}

func TestFlexString_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{`"abc"`, "abc", false},
		{`42`, "42", false},
		{`4.5`, "4.5", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"a":1}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexString
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.String())
		})
	}
}

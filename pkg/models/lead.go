package models

import "time"

// LeadSource is sent as f_source for every lead.
const LeadSource = "Web Form"

// FunnelAnswers holds the qualification answers keyed question_1..question_5.
type FunnelAnswers map[string]FlexString

// LeadRecord is the lead as collected by the landing page.
type LeadRecord struct {
	Title         string        `json:"title"`
	FirstName     string        `json:"firstname"`
	LastName      string        `json:"lastname"`
	Email         string        `json:"email"`
	Street        string        `json:"street"`
	HouseNumber   FlexString    `json:"housenumber"`
	Postcode      string        `json:"postcode"`
	City          string        `json:"city"`
	Phone         string        `json:"phone"`
	FunnelAnswers FunnelAnswers `json:"funnel_answers"`
}

// LeadSubmitRequest is the body posted to the submit-lead endpoint.
type LeadSubmitRequest struct {
	LeadData   *LeadRecord `json:"leadData"`
	CampaignID FlexString  `json:"campaign_id"`
	SupplierID FlexString  `json:"supplier_id"`
}

// LeadPayload is the flat DataBowl representation of a lead. No field is
// omitempty: absent values are sent as "".
type LeadPayload struct {
	CampaignID  string `json:"campaign_id"`
	SupplierID  string `json:"supplier_id"`
	Title       string `json:"f_18_title"`
	FirstName   string `json:"f_19_firstname"`
	LastName    string `json:"f_20_lastname"`
	Email       string `json:"f_17_email"`
	Street      string `json:"f_street_name"`
	HouseNumber string `json:"f_house_number"`
	PostalCode  string `json:"f_postal_code"`
	City        string `json:"f_city"`
	Phone       string `json:"f_phone"`
	Question1   string `json:"f_question_1"`
	Question2   string `json:"f_question_2"`
	Question3   string `json:"f_question_3"`
	Question4   string `json:"f_question_4"`
	Question5   string `json:"f_question_5"`
	Source      string `json:"f_source"`
	Timestamp   string `json:"f_timestamp"`
}

// NewLeadPayload flattens a LeadRecord into DataBowl field names.
func NewLeadPayload(rec LeadRecord, campaignID, supplierID string, now time.Time) LeadPayload {
	answer := func(key string) string {
		if rec.FunnelAnswers == nil {
			return ""
		}
		return rec.FunnelAnswers[key].String()
	}

	return LeadPayload{
		CampaignID:  campaignID,
		SupplierID:  supplierID,
		Title:       rec.Title,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Email:       rec.Email,
		Street:      rec.Street,
		HouseNumber: rec.HouseNumber.String(),
		PostalCode:  rec.Postcode,
		City:        rec.City,
		Phone:       rec.Phone,
		Question1:   answer("question_1"),
		Question2:   answer("question_2"),
		Question3:   answer("question_3"),
		Question4:   answer("question_4"),
		Question5:   answer("question_5"),
		Source:      LeadSource,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

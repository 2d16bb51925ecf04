package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"databowl-gateway/pkg/apperrors"
)

// leadSchema describes the types of a submit-lead body. Presence of
// leadData, campaign_id and supplier_id is checked by the service so the
// caller gets the same message for a missing and an empty field.
const leadSchema = `{
  "type": "object",
  "properties": {
    "campaign_id": {"type": ["string", "number", "null"]},
    "supplier_id": {"type": ["string", "number", "null"]},
    "leadData": {
      "type": ["object", "null"],
      "properties": {
        "title":       {"type": ["string", "null"]},
        "firstname":   {"type": ["string", "null"]},
        "lastname":    {"type": ["string", "null"]},
        "email":       {"type": ["string", "null"]},
        "street":      {"type": ["string", "null"]},
        "housenumber": {"type": ["string", "number", "null"]},
        "postcode":    {"type": ["string", "null"]},
        "city":        {"type": ["string", "null"]},
        "phone":       {"type": ["string", "null"]},
        "funnel_answers": {
          "type": ["object", "null"],
          "additionalProperties": {"type": ["string", "number", "null"]}
        }
      }
    }
  }
}`

// SchemaValidator checks raw request bodies against a compiled JSON schema.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

// NewLeadSchemaValidator compiles the submit-lead schema.
func NewLeadSchemaValidator() (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(leadSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile lead schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate returns nil when body conforms, otherwise an error listing every
// violation.
func (v *SchemaValidator) Validate(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return apperrors.NewInvalidFormat("Invalid lead data: " + strings.Join(problems, "; "))
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"databowl-gateway/pkg/clients/databowl"
	"databowl-gateway/pkg/models"
)

type mockDataBowlClient struct {
	mock.Mock
}

func (m *mockDataBowlClient) Validate(ctx context.Context, service, validationType string, data []databowl.Param) (*databowl.ValidationResponse, error) {
	args := m.Called(ctx, service, validationType, data)
	if resp := args.Get(0); resp != nil {
		return resp.(*databowl.ValidationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDataBowlClient) SubmitLead(ctx context.Context, payload models.LeadPayload, idempotencyKey string) (*databowl.SubmitResponse, error) {
	args := m.Called(ctx, payload, idempotencyKey)
	if resp := args.Get(0); resp != nil {
		return resp.(*databowl.SubmitResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func hlrResponse(result, network string) *databowl.ValidationResponse {
	raw, _ := json.Marshal(result)
	return &databowl.ValidationResponse{Result: raw, Network: models.FlexString(network)}
}

func emailResponse(result bool) *databowl.ValidationResponse {
	raw, _ := json.Marshal(result)
	return &databowl.ValidationResponse{Result: raw}
}

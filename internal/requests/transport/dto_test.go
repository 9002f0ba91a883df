package transport

import (
	"encoding/json"
	"testing"

	"fitconnect-backend/internal/requests/domain"

	"github.com/google/uuid"
)

func TestCreateRequestRequestDecodesBudget(t *testing.T) {
	raw := `{"category":"Yoga","description":"need a yoga coach soon","budget":"about 50 EUR/h"}`
	var req CreateRequestRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Budget != "about 50 EUR/h" {
		t.Errorf("budget = %q, want %q", req.Budget, "about 50 EUR/h")
	}
}

func TestServiceRequestResponseCarriesBudget(t *testing.T) {
	request := domain.ServiceRequest{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		Category:    "Yoga",
		Description: "need a yoga coach soon",
		Budget:      "about 50 EUR/h",
		Status:      domain.RequestOpen,
	}
	resp := ToServiceRequestResponse(request)
	if resp.Budget != "about 50 EUR/h" {
		t.Errorf("budget = %q, want %q", resp.Budget, "about 50 EUR/h")
	}
}

package auth

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewAPIUserMapsRecord(t *testing.T) {
	user := &User{
		ID:           uuid.New(),
		Username:     "johndoe",
		Email:        "johndoe@example.com",
		FirstName:    "John",
		LastName:     "Doe",
		PasswordHash: "$2a$14$not-a-real-hash",
		Disabled:     true,
	}

	api := NewAPIUser(user)

	if api.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, api.ID)
	}
	if api.Username != "johndoe" || api.Email != "johndoe@example.com" {
		t.Errorf("unexpected identity fields: %+v", api)
	}
	if api.FirstName != "John" || api.LastName != "Doe" {
		t.Errorf("unexpected name fields: %+v", api)
	}
	if !api.Disabled {
		t.Error("expected disabled flag to carry over")
	}
}

func TestNewAPIUserNilRecord(t *testing.T) {
	api := NewAPIUser(nil)
	if api != (APIUser{}) {
		t.Errorf("expected zero value for nil record, got %+v", api)
	}
}

func TestAPIUserNeverExposesPasswordHash(t *testing.T) {
	user := &User{
		ID:           uuid.New(),
		Username:     "johndoe",
		Email:        "johndoe@example.com",
		PasswordHash: "$2a$14$super-secret",
	}

	raw, err := json.Marshal(NewAPIUser(user))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(raw), "super-secret") || strings.Contains(string(raw), "password") {
		t.Errorf("serialized API user leaks credential material: %s", raw)
	}
}

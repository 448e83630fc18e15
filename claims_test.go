package auth_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gemstack/go-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAccessClaims_Accessors(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	exp := now.Add(30 * time.Minute)

	claims := &auth.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   auth.TokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Identifier: "johndoe",
	}

	assert.Equal(t, auth.TokenSubject, claims.Subject())
	assert.Equal(t, "johndoe", claims.Username())
	assert.True(t, claims.Expires().Equal(exp))
	assert.True(t, claims.IssuedAt().Equal(now))
}

func TestAccessClaims_ZeroValues(t *testing.T) {
	claims := &auth.AccessClaims{}

	assert.Empty(t, claims.Subject())
	assert.Empty(t, claims.Username())
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}

func TestAccessClaims_JSONShape(t *testing.T) {
	claims := &auth.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: auth.TokenSubject,
		},
		Identifier: "johndoe",
	}

	raw, err := json.Marshal(claims)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	// The identifier travels under the username key on the wire
	assert.Equal(t, "johndoe", decoded["username"])
	assert.Equal(t, auth.TokenSubject, decoded["sub"])
	_, hasIdentifier := decoded["Identifier"]
	assert.False(t, hasIdentifier)
}

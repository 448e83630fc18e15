package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gemstack/go-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewTokenService(t *testing.T) {
	signingKey := []byte("test-signing-key")
	issuer := "test-issuer"

	t.Run("creates token service with logger", func(t *testing.T) {
		logger := &MockLogger{}

		service := auth.NewTokenService(signingKey, time.Hour, issuer, logger)

		assert.NotNil(t, service)
	})

	t.Run("creates token service with nil logger", func(t *testing.T) {
		service := auth.NewTokenService(signingKey, time.Hour, issuer, nil)

		assert.NotNil(t, service)
	})
}

func TestTokenService_Issue(t *testing.T) {
	signingKey := []byte("test-signing-key")
	issuer := "test-issuer"
	logger := &MockLogger{}

	service := auth.NewTokenService(signingKey, 30*time.Minute, issuer, logger)

	t.Run("issues valid access token", func(t *testing.T) {
		tokenString, err := service.Issue("johndoe")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		// Parse the token to verify structure
		token, err := jwt.ParseWithClaims(tokenString, &auth.AccessClaims{}, func(token *jwt.Token) (any, error) {
			return signingKey, nil
		})

		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims, ok := token.Claims.(*auth.AccessClaims)
		assert.True(t, ok)
		assert.Equal(t, auth.TokenSubject, claims.Subject())
		assert.Equal(t, "johndoe", claims.Username())
		assert.Equal(t, issuer, claims.Issuer)
		assert.NotNil(t, claims.RegisteredClaims.IssuedAt)
		assert.NotNil(t, claims.RegisteredClaims.ExpiresAt)
	})

	t.Run("sets correct expiration time", func(t *testing.T) {
		beforeIssue := time.Now()
		tokenString, err := service.Issue("johndoe")
		afterIssue := time.Now()

		assert.NoError(t, err)

		token, err := jwt.ParseWithClaims(tokenString, &auth.AccessClaims{}, func(token *jwt.Token) (any, error) {
			return signingKey, nil
		})

		assert.NoError(t, err)
		claims := token.Claims.(*auth.AccessClaims)

		expectedExpiry := beforeIssue.Add(30 * time.Minute)
		actualExpiry := claims.RegisteredClaims.ExpiresAt.Time

		// Allow for a small margin of difference due to timing
		assert.True(t, actualExpiry.After(expectedExpiry.Add(-time.Second)))
		assert.True(t, actualExpiry.Before(afterIssue.Add(30*time.Minute+time.Second)))
	})

	t.Run("honors explicit ttl override", func(t *testing.T) {
		tokenString, err := service.Issue("johndoe", time.Minute)
		assert.NoError(t, err)

		token, err := jwt.ParseWithClaims(tokenString, &auth.AccessClaims{}, func(token *jwt.Token) (any, error) {
			return signingKey, nil
		})

		assert.NoError(t, err)
		claims := token.Claims.(*auth.AccessClaims)
		assert.WithinDuration(t, time.Now().Add(time.Minute), claims.Expires(), 2*time.Second)
	})
}

func TestTokenService_Validate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	issuer := "test-issuer"
	logger := &MockLogger{}

	service := auth.NewTokenService(signingKey, 30*time.Minute, issuer, logger)

	t.Run("validates freshly issued token", func(t *testing.T) {
		tokenString, err := service.Issue("johndoe")
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.NoError(t, err)
		assert.NotNil(t, claims)
		assert.Equal(t, auth.TokenSubject, claims.Subject())
		assert.Equal(t, "johndoe", claims.Username())
	})

	t.Run("returns error for expired token", func(t *testing.T) {
		// Negative TTL mints a token that expired in the past
		tokenString, err := service.Issue("johndoe", -time.Minute)
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("returns error for malformed token", func(t *testing.T) {
		malformedToken := "not.a.valid.jwt.token"

		claims, err := service.Validate(malformedToken)

		assert.Error(t, err)
		assert.Nil(t, claims)
		assert.Contains(t, err.Error(), "token is malformed")
	})

	t.Run("returns error for tampered token", func(t *testing.T) {
		tokenString, err := service.Issue("johndoe")
		assert.NoError(t, err)

		// Flip a character in the payload segment
		parts := strings.Split(tokenString, ".")
		assert.Len(t, parts, 3)
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		parts[1] = string(payload)
		tampered := strings.Join(parts, ".")

		claims, err := service.Validate(tampered)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("returns error for token with wrong signing key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("wrong-signing-key"), 30*time.Minute, issuer, logger)

		tokenString, err := other.Issue("johndoe")
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects unsigned token regardless of payload", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": auth.TokenSubject,
			"iss": issuer,
			"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		assert.NoError(t, err)

		logger.On("Error", mock.AnythingOfType("string"), mock.Anything).Maybe()

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects token with wrong subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":      "refresh",
			"iss":      issuer,
			"username": "johndoe",
			"exp":      jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		tokenString, err := token.SignedString(signingKey)
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects token without expiration", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":      auth.TokenSubject,
			"iss":      issuer,
			"username": "johndoe",
		})
		tokenString, err := token.SignedString(signingKey)
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("rejects token from a different issuer", func(t *testing.T) {
		other := auth.NewTokenService(signingKey, 30*time.Minute, "other-issuer", logger)

		tokenString, err := other.Issue("johndoe")
		assert.NoError(t, err)

		claims, err := service.Validate(tokenString)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestTokenService_Integration(t *testing.T) {
	signingKey := []byte("integration-test-key")
	issuer := "integration-issuer"
	logger := &MockLogger{}

	service := auth.NewTokenService(signingKey, time.Hour, issuer, logger)

	t.Run("full issue and validate cycle", func(t *testing.T) {
		tokenString, err := service.Issue("integration-user")
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		claims, err := service.Validate(tokenString)
		assert.NoError(t, err)
		assert.NotNil(t, claims)

		assert.Equal(t, auth.TokenSubject, claims.Subject())
		assert.Equal(t, "integration-user", claims.Username())
		assert.True(t, claims.Expires().After(time.Now()))
		assert.False(t, claims.IssuedAt().IsZero())
	})
}

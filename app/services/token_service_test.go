package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret-key-that-is-long-enough-123"
	testIssuer   = "locallens"
	testAudience = "locallens-api"
)

func newTestTokenService(t *testing.T) TokenService {
	t.Helper()
	svc, err := NewTokenService(testIssuer, testAudience, false, "", testSecret)
	require.NoError(t, err)
	return svc
}

// signTestToken mints a token the way the external identity provider
// would, sharing only the HMAC secret with the verifier.
func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testClaims(overrides map[string]any) jwt.MapClaims {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"customer_id":  float64(42),
		"account_type": "creator",
		"token_type":   "access",
		"jti":          "test-jti-1",
		"iat":          now.Unix(),
		"exp":          now.Add(15 * time.Minute).Unix(),
		"iss":          testIssuer,
		"aud":          testAudience,
	}
	for k, v := range overrides {
		claims[k] = v
	}
	return claims
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(testIssuer, testAudience, false, "", "")
	require.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	svc := newTestTokenService(t)

	token := signTestToken(t, testClaims(nil))
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.CustomerID)
	assert.Equal(t, "creator", claims.AccountType)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "test-jti-1", claims.TokenID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, testClaims(nil)).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t)

	past := time.Now().UTC().Add(-1 * time.Hour)
	token := signTestToken(t, testClaims(map[string]any{
		"iat": past.Add(-15 * time.Minute).Unix(),
		"exp": past.Unix(),
	}))

	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	svc := newTestTokenService(t)

	token := signTestToken(t, testClaims(map[string]any{"iss": "someone-else"}))
	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsWrongAudience(t *testing.T) {
	svc := newTestTokenService(t)

	token := signTestToken(t, testClaims(map[string]any{"aud": "other-api"}))
	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsMissingClaims(t *testing.T) {
	svc := newTestTokenService(t)

	token := signTestToken(t, testClaims(map[string]any{"jti": nil}))
	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	svc := newTestTokenService(t)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, testClaims(nil)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

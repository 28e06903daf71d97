package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://id.example.com/realms/edu"

type recordingUserRepo struct {
	upserted []entity.User
}

func (r *recordingUserRepo) UpsertUser(ctx context.Context, model entity.User) *app_error.AppError {
	r.upserted = append(r.upserted, model)
	return nil
}

func (r *recordingUserRepo) FindUserByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError) {
	return &entity.User{ID: userId}, nil
}

type authFixture struct {
	key   *rsa.PrivateKey
	users *recordingUserRepo
	auth  func(http.Handler) http.Handler
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		set := state.JWKSet{Keys: []state.JWK{{
			Kty: "RSA",
			Kid: "test-kid",
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}}}
		json.NewEncoder(w).Encode(set) //nolint:errcheck
	}))
	t.Cleanup(jwks.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	keys, err := state.InitKeycloak(context.Background(), jwks.URL, time.Minute, rdb)
	require.NoError(t, err)

	users := &recordingUserRepo{}
	return &authFixture{
		key:   key,
		users: users,
		auth:  KeycloakAuth(keys, users, testIssuer, ""),
	}
}

func (f *authFixture) sign(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":                subject,
		"iss":                testIssuer,
		"exp":                time.Now().Add(time.Hour).Unix(),
		"preferred_username": "jdoe",
		"given_name":         "Jane",
		"family_name":        "Doe",
		"email":              "jdoe@example.com",
	})
	token.Header["kid"] = "test-kid"
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func TestKeycloakAuth_ValidToken(t *testing.T) {
	fixture := newAuthFixture(t)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFrom(r.Context())
		require.True(t, ok, "claims should be in the request context")
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/threads", nil)
	req.Header.Set("Authorization", "Bearer "+fixture.sign(t, "user-123"))
	rec := httptest.NewRecorder()

	fixture.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotUserID)

	// the user row was synced from the claims
	require.Len(t, fixture.users.upserted, 1)
	assert.Equal(t, "user-123", fixture.users.upserted[0].ID)
	assert.Equal(t, "jdoe", fixture.users.upserted[0].Username)
	assert.Equal(t, "Jane", fixture.users.upserted[0].FirstName)
}

func TestKeycloakAuth_MissingHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/threads", nil)
	rec := httptest.NewRecorder()

	fixture.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, fixture.users.upserted)

	// rejections use the same envelope as handler errors
	var body dtos.Response[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Missing Authorization header", body.Error)
}

func TestKeycloakAuth_MalformedHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/threads", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	fixture.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestKeycloakAuth_ForgedToken(t *testing.T) {
	fixture := newAuthFixture(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "attacker",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "test-kid"
	forged, err := token.SignedString(otherKey)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/threads", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()

	fixture.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, fixture.users.upserted)

	var body dtos.Response[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid or expired token", body.Error)
}

func TestUserIDFrom_EmptyContext(t *testing.T) {
	_, ok := UserIDFrom(context.Background())
	assert.False(t, ok)
}

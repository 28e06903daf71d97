package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos"
	"github.com/benedekkincses/edu-bridge-sub000/internal/entity"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	user_repo "github.com/benedekkincses/edu-bridge-sub000/internal/repo/user"
	"github.com/benedekkincses/edu-bridge-sub000/internal/utils"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type claimsKey string

const UserClaimsKey claimsKey = "userClaims"

// KeycloakAuth verifies the bearer token against the issuer's signing
// keys and synchronizes the user row from its claims before handing the
// request on.
func KeycloakAuth(keys *state.KeycloakKeys, users user_repo.UserRepoContract, issuer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAppError(w, r, app_error.Unauthorized("Missing Authorization header"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeAppError(w, r, app_error.Unauthorized("Invalid Authorization header format"))
				return
			}

			tokenStr := parts[1]

			// key resolution may refresh the JWKS, bound it by the
			// request's lifetime
			keyFunc := func(token *jwt.Token) (any, error) {
				kid, _ := token.Header["kid"].(string)
				if kid == "" {
					return nil, fmt.Errorf("token has no key id")
				}
				return keys.Key(r.Context(), kid)
			}

			claims, err := utils.ParseAndVerifyToken(tokenStr, keyFunc, issuer, audience)
			if err != nil {
				log.Error().Err(err).Msg("jwt verify failed")
				writeAppError(w, r, app_error.Unauthorized("Invalid or expired token"))
				return
			}

			// upsert-on-auth: keep the local identity row in sync with
			// the token claims
			if appErr := users.UpsertUser(r.Context(), entity.User{
				ID:        claims.Subject,
				Username:  claims.PreferredUsername,
				FirstName: claims.GivenName,
				LastName:  claims.FamilyName,
				Email:     claims.Email,
				Phone:     claims.PhoneNumber,
			}); appErr != nil {
				log.Error().Err(appErr).Msg("failed to sync user from claims")
				writeAppError(w, r, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the authenticated subject placed by KeycloakAuth.
func UserIDFrom(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*utils.Claims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// writeAppError emits the same envelope handlers.WrapHandler produces,
// so rejected requests look no different from handler errors.
func writeAppError(w http.ResponseWriter, r *http.Request, appErr *app_error.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	_ = json.NewEncoder(w).Encode(dtos.Response[any]{
		Success:   false,
		Error:     appErr.Message,
		RequestID: RequestIDFrom(r.Context()),
	})
}

package state

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const jwksCacheKey = "keycloak:jwks"

type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// KeycloakKeys resolves token signing keys by kid against the issuer's
// JWKS endpoint. The raw key set is cached in Redis so restarts and
// unknown-kid refreshes do not hammer the issuer.
type KeycloakKeys struct {
	certsURL string
	cacheTTL time.Duration
	client   *http.Client
	redis    *redis.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

func NewKeycloakKeys(certsURL string, cacheTTL time.Duration, rdb *redis.Client) *KeycloakKeys {
	return &KeycloakKeys{
		certsURL: certsURL,
		cacheTTL: cacheTTL,
		client:   &http.Client{Timeout: 10 * time.Second},
		redis:    rdb,
		keys:     make(map[string]*rsa.PublicKey),
	}
}

func InitKeycloak(ctx context.Context, certsURL string, cacheTTL time.Duration, rdb *redis.Client) (*KeycloakKeys, error) {
	keys := NewKeycloakKeys(certsURL, cacheTTL, rdb)
	if err := keys.refresh(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to fetch issuer keys: %w", err)
	}
	log.Info().Msgf("Keycloak signing keys loaded from %s", certsURL)
	return keys, nil
}

// Key returns the RSA public key for kid, refreshing the key set once
// on a miss to pick up rotated keys.
func (k *KeycloakKeys) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	key, ok := k.keys[kid]
	k.mu.RUnlock()
	if ok {
		return key, nil
	}

	// the cached set predates the unknown kid, go straight to the issuer
	if err := k.refresh(ctx, true); err != nil {
		return nil, err
	}

	k.mu.RLock()
	key, ok = k.keys[kid]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown signing key id %q", kid)
	}
	return key, nil
}

// refresh rebuilds the kid index. bypassCache skips the Redis copy so
// a rotation inside the cache TTL is picked up from the issuer.
func (k *KeycloakKeys) refresh(ctx context.Context, bypassCache bool) error {
	var set *JWKSet
	if !bypassCache {
		cached, appErr := utils.GetCacheData[JWKSet](ctx, k.redis, jwksCacheKey)
		if appErr != nil {
			log.Error().Err(appErr).Msg("jwks cache lookup failed, falling back to issuer")
		}
		set = cached
	}

	if set == nil {
		fetched, err := k.fetch(ctx)
		if err != nil {
			return err
		}
		set = fetched
		if err := utils.SetCacheData(ctx, k.redis, jwksCacheKey, set, k.cacheTTL); err != nil {
			log.Error().Err(err).Msg("failed to cache jwks")
		}
	}

	parsed := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Kty != "RSA" || jwk.Kid == "" {
			continue
		}
		key, err := jwk.publicKey()
		if err != nil {
			log.Error().Err(err).Msgf("skipping unparsable jwk %q", jwk.Kid)
			continue
		}
		parsed[jwk.Kid] = key
	}

	if len(parsed) == 0 {
		return fmt.Errorf("issuer key set at %s contains no usable RSA keys", k.certsURL)
	}

	k.mu.Lock()
	k.keys = parsed
	k.mu.Unlock()
	return nil
}

func (k *KeycloakKeys) fetch(ctx context.Context) (*JWKSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.certsURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var set JWKSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}
	return &set, nil
}

func (j JWK) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

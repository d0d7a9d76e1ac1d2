package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/mailio/go-mailio-alias-server/alias"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/redis/go-redis/v9"
)

const (
	// generated secret keys are URL-safe random strings of this length
	secretKeyLength = 32

	keyRingCacheKey = "aliaskeys:ring"
	keyRingCacheTTL = 30 * time.Second
)

// KeyService owns the key ring: the set of secret keys and the real
// recipients their aliases deliver to
type KeyService struct {
	keyRepo repository.Repository
	env     *types.Environment
}

func NewKeyService(dbSelector repository.DBSelector, env *types.Environment) *KeyService {
	db, err := dbSelector.ChooseDB(repository.AliasKeys)
	if err != nil {
		panic(err)
	}
	return &KeyService{
		keyRepo: db,
		env:     env,
	}
}

// CreateKey generates a fresh secret key and stores it bound to the
// given recipient. The secret is returned exactly once, on creation.
func (ks *KeyService) CreateKey(ctx context.Context, recipient, label string) (*types.AliasKey, error) {
	provider, pErr := alias.DefaultProvider()
	if pErr != nil {
		return nil, pErr
	}
	secret, sErr := alias.GenerateSecureRandomString(provider, secretKeyLength)
	if sErr != nil {
		return nil, sErr
	}

	key := &types.AliasKey{
		SecretKey: secret,
		Recipient: recipient,
		Label:     label,
		Enabled:   true,
		Created:   time.Now().UTC().UnixMilli(),
	}
	id := uuid.NewString()
	if err := ks.keyRepo.Save(ctx, id, key); err != nil {
		return nil, err
	}
	key.ID = id
	ks.invalidateKeyRingCache(ctx)
	return key, nil
}

// GetKey returns a stored key by its document id
func (ks *KeyService) GetKey(ctx context.Context, id string) (*types.AliasKey, error) {
	response, err := ks.keyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var key types.AliasKey
	if mErr := repository.MapToObject(response, &key); mErr != nil {
		return nil, mErr
	}
	if key.ID == "" {
		key.ID = key.UnderscoreID
	}
	return &key, nil
}

type keyFindResult struct {
	Docs []*types.AliasKey `json:"docs"`
}

// ListKeys returns stored keys, newest first
func (ks *KeyService) ListKeys(ctx context.Context, limit, skip int) ([]*types.AliasKey, error) {
	response, err := ks.keyRepo.Find(ctx, map[string]interface{}{
		"selector": map[string]interface{}{
			"created": map[string]interface{}{"$gt": 0},
		},
		"sort":      []map[string]interface{}{{"created": "desc"}},
		"use_index": []string{"aliaskey-created-desc-index"},
		"limit":     limit,
		"skip":      skip,
	})
	if err != nil {
		return nil, err
	}
	var result keyFindResult
	if mErr := repository.MapToObject(response, &result); mErr != nil {
		return nil, mErr
	}
	for _, k := range result.Docs {
		if k.ID == "" {
			k.ID = k.UnderscoreID
		}
	}
	return result.Docs, nil
}

// DisableKey keeps the document but removes the key from the ring, so
// mail to its aliases starts bouncing without losing the audit trail
func (ks *KeyService) DisableKey(ctx context.Context, id string) error {
	key, err := ks.GetKey(ctx, id)
	if err != nil {
		return err
	}
	key.Enabled = false
	key.UnderscoreID = ""
	key.Rev = key.UnderscoreRev
	if uErr := ks.keyRepo.Update(ctx, id, map[string]interface{}{
		"_rev":      key.Rev,
		"secretKey": key.SecretKey,
		"recipient": key.Recipient,
		"label":     key.Label,
		"enabled":   false,
		"created":   key.Created,
	}); uErr != nil {
		return uErr
	}
	ks.invalidateKeyRingCache(ctx)
	return nil
}

// DeleteKey removes a key document entirely
func (ks *KeyService) DeleteKey(ctx context.Context, id string) error {
	if err := ks.keyRepo.Delete(ctx, id); err != nil {
		return err
	}
	ks.invalidateKeyRingCache(ctx)
	return nil
}

// KeyRing returns the secret->recipient map validation consumes. The
// ring is cached in redis for a short interval because it is read on
// every inbound message.
func (ks *KeyService) KeyRing(ctx context.Context) (map[string]string, error) {
	if ring, ok := ks.cachedKeyRing(ctx); ok {
		return ring, nil
	}

	keys, err := ks.ListKeys(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}
	ring := make(map[string]string, len(keys))
	for _, k := range keys {
		if !k.Enabled {
			continue
		}
		ring[k.SecretKey] = k.Recipient
	}
	ks.cacheKeyRing(ctx, ring)
	return ring, nil
}

func (ks *KeyService) cachedKeyRing(ctx context.Context) (map[string]string, bool) {
	if ks.env == nil || ks.env.RedisClient == nil {
		return nil, false
	}
	cached, err := ks.env.RedisClient.Get(ctx, keyRingCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			level.Error(global.Logger).Log("msg", "failed to read key ring cache", "error", err)
		}
		return nil, false
	}
	var ring map[string]string
	if uErr := json.Unmarshal([]byte(cached), &ring); uErr != nil {
		return nil, false
	}
	return ring, true
}

func (ks *KeyService) cacheKeyRing(ctx context.Context, ring map[string]string) {
	if ks.env == nil || ks.env.RedisClient == nil {
		return
	}
	encoded, err := json.Marshal(ring)
	if err != nil {
		return
	}
	if sErr := ks.env.RedisClient.Set(ctx, keyRingCacheKey, encoded, keyRingCacheTTL).Err(); sErr != nil {
		level.Error(global.Logger).Log("msg", "failed to cache key ring", "error", sErr)
	}
}

func (ks *KeyService) invalidateKeyRingCache(ctx context.Context) {
	if ks.env == nil || ks.env.RedisClient == nil {
		return
	}
	if err := ks.env.RedisClient.Del(ctx, keyRingCacheKey).Err(); err != nil {
		level.Error(global.Logger).Log("msg", "failed to invalidate key ring cache", "error", err)
	}
}

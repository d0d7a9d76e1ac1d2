package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mailio/go-mailio-alias-server/alias"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/metrics"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/mailio/go-mailio-alias-server/util"
)

// AliasService ties the alias scheme to the stored key ring: generating
// aliases from stored keys and resolving inbound aliases to recipients
type AliasService struct {
	keyService   *KeyService
	statsService *StatisticsService
}

func NewAliasService(keyService *KeyService, statsService *StatisticsService) *AliasService {
	return &AliasService{
		keyService:   keyService,
		statsService: statsService,
	}
}

// EffectiveHashLength resolves the configured signature length, falling
// back to the scheme default when unset
func EffectiveHashLength(requested int) int {
	if requested > 0 {
		return requested
	}
	if global.Conf.Alias.HashLength > 0 {
		return global.Conf.Alias.HashLength
	}
	return alias.DefaultHashLength
}

// GenerateAlias creates a verifiable alias from a stored key. The key
// must exist and be enabled, and the domain must be served here.
func (as *AliasService) GenerateAlias(ctx context.Context, keyID string, aliasParts []string, domain string, hashLength int) (string, error) {
	if !util.IsServedDomain(domain) {
		return "", fmt.Errorf("domain %s is not served here: %w", domain, types.ErrBadRequest)
	}
	key, err := as.keyService.GetKey(ctx, keyID)
	if err != nil {
		return "", err
	}
	if !key.Enabled {
		return "", fmt.Errorf("key %s is disabled: %w", keyID, types.ErrBadRequest)
	}

	provider, pErr := alias.DefaultProvider()
	if pErr != nil {
		return "", pErr
	}
	generated, gErr := alias.Generate(provider, key.SecretKey, aliasParts, domain, EffectiveHashLength(hashLength))
	if gErr != nil {
		return "", gErr
	}
	metrics.AliasesGeneratedMetricsCount.Inc()
	return generated, nil
}

// ResolveRecipient validates a full alias against the key ring and
// returns the real recipient, or "" when no key signs it. Every call is
// counted in the day's statistics.
func (as *AliasService) ResolveRecipient(ctx context.Context, fullAlias string, hashLength int) (string, error) {
	ring, err := as.keyService.KeyRing(ctx)
	if err != nil {
		return "", err
	}
	provider, pErr := alias.DefaultProvider()
	if pErr != nil {
		return "", pErr
	}

	start := time.Now()
	recipient := alias.Validate(provider, ring, fullAlias, EffectiveHashLength(hashLength))
	metrics.AliasValidationProcessingLatency.Observe(float64(time.Since(start).Milliseconds()))

	if recipient == "" {
		metrics.ValidationsRejectedMetricsCount.Inc()
		as.statsService.RecordRejected(ctx)
		return "", nil
	}
	metrics.ValidationsAcceptedMetricsCount.Inc()
	as.statsService.RecordAccepted(ctx, recipient)
	return recipient, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/mailio/go-mailio-alias-server/util"
)

const (
	statsDaysKey          = "aliasstats:days"
	statsAcceptedKeyFmt   = "aliasstats:%s:accepted"
	statsRejectedKeyFmt   = "aliasstats:%s:rejected"
	statsRecipientsKeyFmt = "aliasstats:%s:recipients"
	statsKeyTTL           = 72 * time.Hour
)

// StatisticsService counts accepted and rejected validations in redis
// and periodically flushes them to the aliasstats database. Recipients
// are recorded as scrypt hashes only.
type StatisticsService struct {
	statsRepo repository.Repository
	env       *types.Environment
}

func NewStatisticsService(dbSelector repository.DBSelector, env *types.Environment) *StatisticsService {
	db, err := dbSelector.ChooseDB(repository.AliasStats)
	if err != nil {
		panic(err)
	}
	return &StatisticsService{
		statsRepo: db,
		env:       env,
	}
}

// RecordAccepted counts one successfully validated message for the day
func (ss *StatisticsService) RecordAccepted(ctx context.Context, recipient string) {
	if ss.env == nil || ss.env.RedisClient == nil {
		return
	}
	day := util.DayUTC(time.Now())
	pipe := ss.env.RedisClient.Pipeline()
	pipe.SAdd(ctx, statsDaysKey, day)
	pipe.Incr(ctx, fmt.Sprintf(statsAcceptedKeyFmt, day))
	pipe.Expire(ctx, fmt.Sprintf(statsAcceptedKeyFmt, day), statsKeyTTL)
	if recipient != "" {
		hashed, hErr := util.ScryptEmail(recipient)
		if hErr == nil {
			pipe.HIncrBy(ctx, fmt.Sprintf(statsRecipientsKeyFmt, day), hashed, 1)
			pipe.Expire(ctx, fmt.Sprintf(statsRecipientsKeyFmt, day), statsKeyTTL)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		level.Error(global.Logger).Log("msg", "failed to record accepted statistics", "error", err)
	}
}

// RecordRejected counts one message that failed alias validation
func (ss *StatisticsService) RecordRejected(ctx context.Context) {
	if ss.env == nil || ss.env.RedisClient == nil {
		return
	}
	day := util.DayUTC(time.Now())
	pipe := ss.env.RedisClient.Pipeline()
	pipe.SAdd(ctx, statsDaysKey, day)
	pipe.Incr(ctx, fmt.Sprintf(statsRejectedKeyFmt, day))
	pipe.Expire(ctx, fmt.Sprintf(statsRejectedKeyFmt, day), statsKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		level.Error(global.Logger).Log("msg", "failed to record rejected statistics", "error", err)
	}
}

// FlushStatistics merges the redis counters of every pending day into
// their aliasstats documents and clears the counters. Wired to a cron
// schedule at startup.
func (ss *StatisticsService) FlushStatistics(ctx context.Context) error {
	if ss.env == nil || ss.env.RedisClient == nil {
		return nil
	}
	days, err := ss.env.RedisClient.SMembers(ctx, statsDaysKey).Result()
	if err != nil {
		return err
	}
	for _, day := range days {
		if fErr := ss.flushDay(ctx, day); fErr != nil {
			level.Error(global.Logger).Log("msg", "failed to flush statistics", "day", day, "error", fErr)
			continue
		}
		ss.env.RedisClient.SRem(ctx, statsDaysKey, day)
	}
	return nil
}

func (ss *StatisticsService) flushDay(ctx context.Context, day string) error {
	rc := ss.env.RedisClient
	accepted, _ := rc.GetDel(ctx, fmt.Sprintf(statsAcceptedKeyFmt, day)).Int64()
	rejected, _ := rc.GetDel(ctx, fmt.Sprintf(statsRejectedKeyFmt, day)).Int64()
	byRecipient, _ := rc.HGetAll(ctx, fmt.Sprintf(statsRecipientsKeyFmt, day)).Result()
	rc.Del(ctx, fmt.Sprintf(statsRecipientsKeyFmt, day))

	if accepted == 0 && rejected == 0 && len(byRecipient) == 0 {
		return nil
	}

	doc := &types.AliasStatistics{
		Day:           day,
		Accepted:      accepted,
		Rejected:      rejected,
		ByRecipient:   map[string]int64{},
		FlushedMillis: time.Now().UTC().UnixMilli(),
	}
	for recipient, count := range byRecipient {
		var c int64
		fmt.Sscanf(count, "%d", &c)
		doc.ByRecipient[recipient] = c
	}

	existing, gErr := ss.GetStatistics(ctx, day)
	if gErr == nil {
		doc.Accepted += existing.Accepted
		doc.Rejected += existing.Rejected
		for recipient, count := range existing.ByRecipient {
			doc.ByRecipient[recipient] += count
		}
		doc.UnderscoreRev = existing.UnderscoreRev
	} else if !errors.Is(gErr, types.ErrNotFound) {
		return gErr
	}

	return ss.statsRepo.Save(ctx, day, doc)
}

// GetStatistics returns the flushed document for one day (YYYY-MM-DD)
func (ss *StatisticsService) GetStatistics(ctx context.Context, day string) (*types.AliasStatistics, error) {
	response, err := ss.statsRepo.GetByID(ctx, day)
	if err != nil {
		return nil, err
	}
	var stats types.AliasStatistics
	if mErr := repository.MapToObject(response, &stats); mErr != nil {
		return nil, mErr
	}
	return &stats, nil
}

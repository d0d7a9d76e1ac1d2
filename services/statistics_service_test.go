package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/stretchr/testify/assert"
)

func TestGetStatistics(t *testing.T) {
	selector := initMockSelector(t, repository.AliasStats)
	defer httpmock.DeactivateAndReset()

	doc, _ := httpmock.NewJsonResponder(200, types.AliasStatistics{
		BaseDocument: types.BaseDocument{UnderscoreID: "2026-08-28", UnderscoreRev: "1-abc"},
		Day:          "2026-08-28",
		Accepted:     10,
		Rejected:     3,
	})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, repository.AliasStats, "2026-08-28"), doc)

	ss := NewStatisticsService(selector, types.NewEnvironment(nil))
	stats, err := ss.GetStatistics(context.Background(), "2026-08-28")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(10), stats.Accepted)
	assert.Equal(t, int64(3), stats.Rejected)
}

func TestGetStatisticsNotFound(t *testing.T) {
	selector := initMockSelector(t, repository.AliasStats)
	defer httpmock.DeactivateAndReset()

	notFound, _ := httpmock.NewJsonResponder(404, types.CouchDBError{Error: "not_found", Reason: "missing"})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, repository.AliasStats, "2026-01-01"), notFound)

	ss := NewStatisticsService(selector, types.NewEnvironment(nil))
	_, err := ss.GetStatistics(context.Background(), "2026-01-01")
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestRecordWithoutRedisIsNoop(t *testing.T) {
	selector := initMockSelector(t, repository.AliasStats)
	defer httpmock.DeactivateAndReset()

	ss := NewStatisticsService(selector, types.NewEnvironment(nil))
	ss.RecordAccepted(context.Background(), "inbox@real.com")
	ss.RecordRejected(context.Background())
	if err := ss.FlushStatistics(context.Background()); err != nil {
		t.Fatal(err)
	}
}

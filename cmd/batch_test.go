package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/account-brief/internal/model"
)

func okBrief(_ context.Context, domain string) (*model.Brief, error) {
	return &model.Brief{Domain: domain, CompanyName: domain, ICPScore: model.ICPScore{Score: 70}}, nil
}

func TestProcessBatch_PreservesOrder(t *testing.T) {
	domains := []string{"a.com", "b.com", "c.com", "d.com"}
	generate := func(ctx context.Context, domain string) (*model.Brief, error) {
		// Earlier domains finish last.
		if domain == "a.com" {
			time.Sleep(20 * time.Millisecond)
		}
		return okBrief(ctx, domain)
	}

	results := processBatch(context.Background(), domains, 4, generate, nil)
	require.Len(t, results, 4)
	for i, d := range domains {
		assert.Equal(t, d, results[i].Domain)
		require.NotNil(t, results[i].Brief)
		assert.Nil(t, results[i].Push)
		assert.Empty(t, results[i].Error)
	}
}

func TestProcessBatch_FailureRecorded(t *testing.T) {
	generate := func(ctx context.Context, domain string) (*model.Brief, error) {
		if domain == "bad.com" {
			return nil, errors.New("Tavily API error: 500 - down")
		}
		return okBrief(ctx, domain)
	}

	results := processBatch(context.Background(), []string{"good.com", "bad.com", "also.com"}, 2, generate, nil)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Brief)
	assert.Nil(t, results[1].Brief)
	assert.Equal(t, "Tavily API error: 500 - down", results[1].Error)
	assert.NotNil(t, results[2].Brief)
}

func TestProcessBatch_Push(t *testing.T) {
	var pushed atomic.Int64
	push := func(_ context.Context, req model.PushRequest) (*model.PushResult, error) {
		pushed.Add(1)
		if req.Domain == "crm-down.com" {
			return nil, errors.New("HubSpot API error: 503 - unavailable")
		}
		return &model.PushResult{CompanyID: "c-" + req.Domain}, nil
	}
	generate := func(ctx context.Context, domain string) (*model.Brief, error) {
		if domain == "broken.com" {
			return nil, errors.New("parse failed")
		}
		return okBrief(ctx, domain)
	}

	results := processBatch(context.Background(), []string{"ok.com", "broken.com", "crm-down.com"}, 1, generate, push)
	require.Len(t, results, 3)

	assert.Equal(t, int64(2), pushed.Load(), "failed briefs are not pushed")
	require.NotNil(t, results[0].Push)
	assert.Equal(t, "c-ok.com", results[0].Push.CompanyID)

	assert.Equal(t, "parse failed", results[1].Error)

	assert.NotNil(t, results[2].Brief)
	assert.Nil(t, results[2].Push)
	assert.Equal(t, "push: HubSpot API error: 503 - unavailable", results[2].Error)
}

func TestProcessBatch_ConcurrencyLimit(t *testing.T) {
	var inflight, peak atomic.Int64
	generate := func(ctx context.Context, domain string) (*model.Brief, error) {
		n := inflight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inflight.Add(-1)
		return okBrief(ctx, domain)
	}

	domains := []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com"}
	processBatch(context.Background(), domains, 2, generate, nil)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestProcessBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := processBatch(ctx, []string{"a.com", "b.com"}, 1, okBrief, nil)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Brief)
		assert.Contains(t, r.Error, "batch cancelled")
	}
}

func TestProcessBatch_Empty(t *testing.T) {
	assert.Empty(t, processBatch(context.Background(), nil, 3, okBrief, nil))
}

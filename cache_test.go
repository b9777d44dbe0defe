package bondyield

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource serves one instrument and counts position fetches.
type countingSource struct {
	calls atomic.Int32
	fail  bool
}

func (s *countingSource) Instruments(context.Context, []string) ([]Instrument, error) {
	return []Instrument{{Code: "A", Name: "Alpha", Class: 1}}, nil
}

func (s *countingSource) Positions(_ context.Context, q Query) ([]PositionRecord, error) {
	s.calls.Add(1)
	if s.fail {
		return nil, errors.New("warehouse unavailable")
	}
	return holding("A", q.Range, "1000000", "100", "100"), nil
}

func (s *countingSource) CashFlows(context.Context, Query) ([]CashFlowPeriod, error) {
	return coupon, nil
}

func (s *countingSource) Valuations(context.Context, Query) ([]ValuationRecord, error) {
	return nil, nil
}

func (s *countingSource) Trades(context.Context, Query) ([]TradeRecord, error) { return nil, nil }

func TestCachedEngineComputesOnce(t *testing.T) {
	src := new(countingSource)
	cache := NewMapCache()
	ce := NewCachedEngine(NewEngine(src), cache)
	req := Request{Range: days("2025-01-01", "2025-01-10"), Scope: ScopeBonds}

	var wg sync.WaitGroup
	reports := make([]*Report, 16)
	for i := range reports {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rep, err := ce.Run(context.Background(), req)
			assert.NoError(t, err)
			reports[i] = rep
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, rep := range reports {
		assert.Same(t, reports[0], rep)
	}
	assert.Equal(t, 1, cache.Len())
}

// blockingSource holds position fetches until released.
type blockingSource struct {
	countingSource
	started, release chan struct{}
}

func (s *blockingSource) Positions(ctx context.Context, q Query) ([]PositionRecord, error) {
	close(s.started)
	<-s.release
	return s.countingSource.Positions(ctx, q)
}

func TestCachedEngineCallerCancellation(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	ce := NewCachedEngine(NewEngine(src), NewMapCache())
	req := Request{Range: days("2025-01-01", "2025-01-10")}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error)
	go func() {
		_, err := ce.Run(ctx, req)
		first <- err
	}()
	<-src.started
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan *Report)
	go func() {
		rep, err := ce.Run(context.Background(), req)
		assert.NoError(t, err)
		second <- rep
	}()
	close(src.release)
	rep := <-second
	require.NotNil(t, rep)
	assert.False(t, rep.Empty())
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestCachedEngineKeysByScope(t *testing.T) {
	src := new(countingSource)
	ce := NewCachedEngine(NewEngine(src), NewMapCache())
	ctx := context.Background()
	r := days("2025-01-01", "2025-01-10")

	bonds, err := ce.Run(ctx, Request{Range: r, Scope: ScopeBonds})
	require.NoError(t, err)
	cds, err := ce.Run(ctx, Request{Range: r, Scope: ScopeCDs})
	require.NoError(t, err)
	_, err = ce.Run(ctx, Request{Range: r, Scope: ScopeBonds})
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
	assert.False(t, bonds.Empty())
	assert.True(t, cds.Empty(), "a rate bond is not a certificate of deposit")
}

func TestRequestKey(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	a := Request{Range: r, Codes: []string{"B", "A", "A"}}.Key()
	b := Request{Range: r, Codes: []string{"A", "B"}}.Key()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Request{Range: r, Codes: []string{"A"}}.Key())
	assert.NotEqual(t, a, Request{Range: r, Scope: ScopeCDs, Codes: []string{"A", "B"}}.Key())
}

func TestNoCacheAndErrors(t *testing.T) {
	src := &countingSource{fail: true}
	ce := NewCachedEngine(NewEngine(src), nil)
	req := Request{Range: days("2025-01-01", "2025-01-10")}

	_, err := ce.Run(context.Background(), req)
	require.Error(t, err)
	_, err = ce.Run(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load(), "failures are not cached")

	src.fail = false
	_, err = ce.Run(context.Background(), req)
	require.NoError(t, err)
	_, err = ce.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(4), src.calls.Load(), "NoCache computes every time")
}

// Package memory implements an in-memory bondyield.Source.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/date"
)

// Store holds every record in memory. It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	instruments map[string]bondyield.Instrument
	positions   []bondyield.PositionRecord
	cashFlows   []bondyield.CashFlowPeriod
	valuations  []bondyield.ValuationRecord
	trades      []bondyield.TradeRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{instruments: make(map[string]bondyield.Instrument)}
}

var _ bondyield.Source = (*Store)(nil)

// AddInstruments adds or replaces reference data.
func (s *Store) AddInstruments(instruments ...bondyield.Instrument) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range instruments {
		s.instruments[inst.Code] = inst
	}
	return s
}

func (s *Store) AddPositions(records ...bondyield.PositionRecord) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append(s.positions, records...)
	return s
}

func (s *Store) AddCashFlows(periods ...bondyield.CashFlowPeriod) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashFlows = append(s.cashFlows, periods...)
	return s
}

func (s *Store) AddValuations(records ...bondyield.ValuationRecord) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valuations = append(s.valuations, records...)
	return s
}

func (s *Store) AddTrades(trades ...bondyield.TradeRecord) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trades...)
	return s
}

func (s *Store) Instruments(_ context.Context, codes []string) ([]bondyield.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []bondyield.Instrument
	for _, code := range codes {
		if inst, ok := s.instruments[code]; ok {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *Store) Positions(_ context.Context, q bondyield.Query) ([]bondyield.PositionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.positions, func(p bondyield.PositionRecord) bool {
		return q.Range.Contains(p.Date) && q.HasCode(p.Code) && !q.Excludes(p.Portfolio) &&
			(q.CarryType == 0 || q.CarryType == p.CarryType)
	}), nil
}

func (s *Store) CashFlows(_ context.Context, q bondyield.Query) ([]bondyield.CashFlowPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.cashFlows, func(p bondyield.CashFlowPeriod) bool {
		return q.HasCode(p.Code) && date.NewRange(p.Start, p.End).Intersect(q.Range).Valid()
	}), nil
}

func (s *Store) Valuations(_ context.Context, q bondyield.Query) ([]bondyield.ValuationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.valuations, func(v bondyield.ValuationRecord) bool {
		return q.Range.Contains(v.Date) && q.HasCode(v.Code)
	}), nil
}

func (s *Store) Trades(_ context.Context, q bondyield.Query) ([]bondyield.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.trades, func(t bondyield.TradeRecord) bool {
		return q.Range.Contains(t.Date) && q.HasCode(t.Code) && !q.Excludes(t.Portfolio)
	}), nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return slices.Clip(out)
}

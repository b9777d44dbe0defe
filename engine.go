package bondyield

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options tune the engine.
type Options struct {
	// PaddingDays widens the position window on both sides of the range.
	PaddingDays int
	// ValuationLookbackDays widens the valuation window on both sides of the range.
	ValuationLookbackDays int
	CostPriceFallback     CostPriceFallbackPolicy
	ValuationDefault      ValuationDefaultPolicy
	// Workers is the number of instruments computed concurrently, 1 or less is sequential.
	Workers  int
	Currency string
	// ExcludedPortfolios are custodial portfolios left out of positions and trades.
	ExcludedPortfolios []string
}

// DefaultOptions returns the options used by NewEngine.
func DefaultOptions() Options {
	return Options{
		PaddingDays:           10,
		ValuationLookbackDays: 60,
		CostPriceFallback:     CarryForwardThenPar,
		ValuationDefault:      ParValue,
		Workers:               1,
		Currency:              DefaultCurrency,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithOptions replaces the engine options.
func WithOptions(o Options) Option { return func(e *Engine) { e.opts = o } }

// WithLogger sets the logger, silent by default.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// Engine computes attribution reports from a Source.
type Engine struct {
	src  Source
	opts Options
	log  zerolog.Logger
}

// NewEngine returns an engine reading from src.
func NewEngine(src Source, options ...Option) *Engine {
	e := &Engine{src: src, opts: DefaultOptions(), log: zerolog.Nop()}
	for _, o := range options {
		o(e)
	}
	return e
}

// Options returns the engine options.
func (e *Engine) Options() Options { return e.opts }

// Run computes the attribution of req.
//
// An invalid range returns an empty report without reading the source. Only
// source failures are errors: missing data falls back to the documented defaults.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	rep := newReport(req, e.opts.Currency)
	log := e.log.With().Str("report", rep.ID).Stringer("range", req.Range).Stringer("scope", req.Scope).Logger()
	if !req.Range.Valid() {
		log.Debug().Msg("invalid range, empty report")
		return rep, nil
	}

	padded := req.Range.Pad(e.opts.PaddingDays)
	positions, err := e.src.Positions(ctx, Query{
		Range:              padded,
		Codes:              req.Codes,
		CarryType:          CarryOwned,
		ExcludedPortfolios: e.opts.ExcludedPortfolios,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching positions %s: %w", padded, err)
	}
	trades, err := e.src.Trades(ctx, Query{Range: req.Range, Codes: req.Codes, ExcludedPortfolios: e.opts.ExcludedPortfolios})
	if err != nil {
		return nil, fmt.Errorf("fetching trades %s: %w", req.Range, err)
	}
	timelines := BuildTimelines(req.Range, e.opts.PaddingDays, positions)
	log.Debug().Int("positions", len(positions)).Int("trades", len(trades)).Int("timelines", len(timelines)).Msg("positions loaded")

	codes := e.candidates(req.Range, timelines, trades)
	instruments, err := e.src.Instruments(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("fetching instruments: %w", err)
	}
	rep.Catalog = e.catalog(log, req.Scope, codes, NewCatalog(instruments), timelines)
	codes = rep.Catalog.Codes()
	log.Debug().Int("instruments", len(codes)).Msg("scope resolved")
	if len(codes) == 0 {
		return rep, nil
	}

	flows, err := e.src.CashFlows(ctx, Query{Range: padded, Codes: codes})
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}
	valuations, err := e.src.Valuations(ctx, Query{Range: req.Range.Pad(e.opts.ValuationLookbackDays), Codes: codes})
	if err != nil {
		return nil, fmt.Errorf("fetching valuations: %w", err)
	}

	flowsOf := groupBy(flows, func(f CashFlowPeriod) string { return f.Code })
	valuationsOf := groupBy(valuations, func(v ValuationRecord) string { return v.Code })
	tradesOf := groupBy(trades, func(t TradeRecord) string { return t.Code })

	series := make([][]DailyAttribution, len(codes))
	attribute := func(i int) {
		code := codes[i]
		inst, _ := rep.Catalog.Get(code)
		series[i] = e.attribute(log, req.Range, padded, inst, timelines[code], flowsOf[code], valuationsOf[code], tradesOf[code])
	}
	if e.opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Workers)
		for i := range codes {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				attribute(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range codes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			attribute(i)
		}
	}
	for _, s := range series {
		rep.daily = append(rep.daily, s...)
	}

	rep.holdings = holdingsOn(req.Range.To, rep.Catalog, timelines)
	var scoped []TradeRecord
	for _, t := range trades {
		if _, ok := rep.Catalog.Get(t.Code); ok {
			scoped = append(scoped, t)
		}
	}
	rep.trades = MergeAllocations(scoped)
	log.Debug().Int("rows", len(rep.daily)).Int("holdings", len(rep.holdings)).Msg("report computed")
	return rep, nil
}

// candidates returns the codes held in r, plus those sold in r with a position in the padded window.
func (e *Engine) candidates(r date.Range, timelines map[string]*Timeline, trades []TradeRecord) []string {
	codes := HeldIn(r, timelines)
	for _, t := range trades {
		if !t.IsRealizing() || slices.Contains(codes, t.Code) {
			continue
		}
		if tl, ok := timelines[t.Code]; ok && tl.Recorded(tl.Range) {
			codes = append(codes, t.Code)
		}
	}
	slices.Sort(codes)
	return codes
}

// catalog completes the reference data of codes and applies the scope.
func (e *Engine) catalog(log zerolog.Logger, scope Scope, codes []string, ref *Catalog, timelines map[string]*Timeline) *Catalog {
	out := NewCatalog(nil)
	for _, code := range codes {
		tl := timelines[code]
		if tl.Market() == "" {
			log.Debug().Str("code", code).Msg("no market, instrument skipped")
			continue
		}
		inst, ok := ref.Get(code)
		if !ok {
			log.Warn().Str("code", code).Msg("no reference data")
			inst = Instrument{Code: code, Name: tl.Name(), Class: UnknownClass}
		}
		if inst.Market == "" {
			inst.Market = tl.Market()
		}
		if inst.Name == "" {
			inst.Name = tl.Name()
		}
		if !scope.Includes(inst.Category()) {
			continue
		}
		out.Add(inst)
	}
	return out
}

func (e *Engine) attribute(log zerolog.Logger, r, padded date.Range, inst Instrument, tl *Timeline, flows []CashFlowPeriod, valuations []ValuationRecord, trades []TradeRecord) []DailyAttribution {
	acc := NewAccrual(flows, padded)
	val := NewValuation(valuations, e.opts.ValuationDefault)
	if val.Empty() {
		log.Debug().Str("code", inst.Code).Stringer("policy", e.opts.ValuationDefault).Msg("no valuation, default price")
	}
	gains := CapitalGains(trades, tl, e.opts.CostPriceFallback)
	for _, g := range gains {
		if g.Substituted {
			log.Debug().Str("code", inst.Code).Stringer("date", g.Date).
				Stringer("price", g.PriorCostNetPrice).Stringer("policy", e.opts.CostPriceFallback).
				Msg("prior-day cost price substituted")
		}
	}
	daily := Attribute(r, inst, tl, acc, val, gains)
	uncovered := 0
	for _, d := range daily {
		if !d.Held.IsZero() && !acc.Covers(d.Date) {
			uncovered++
		}
	}
	if uncovered > 0 {
		log.Debug().Str("code", inst.Code).Int("days", uncovered).Msg("held without coupon period, no interest accrued")
	}
	return daily
}

func groupBy[T any](items []T, key func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

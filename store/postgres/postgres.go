// Package postgres implements bondyield.Source over the desk's PostgreSQL warehouse.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/date"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Tables names the warehouse tables.
type Tables struct {
	Instruments string `toml:"instruments"`
	Positions   string `toml:"positions"`
	CashFlows   string `toml:"cashflows"`
	Valuations  string `toml:"valuations"`
	Primary     string `toml:"primary_trades"`
	Interbank   string `toml:"interbank_trades"`
	Exchange    string `toml:"exchange_trades"`
}

// DefaultTables returns the table names of the warehouse.
func DefaultTables() Tables {
	return Tables{
		Instruments: "bond_basic_info",
		Positions:   "bond_carry_holds",
		CashFlows:   "bond_cash_flows",
		Valuations:  "bond_valuations",
		Primary:     "bond_primary_trades",
		Interbank:   "bond_interbank_trades",
		Exchange:    "bond_exchange_trades",
	}
}

// Store reads records with parameterized queries.
type Store struct {
	db     *sql.DB
	tables Tables
}

var _ bondyield.Source = (*Store)(nil)

// Open connects to the warehouse at dsn.
func Open(dsn string, tables Tables) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse: %w", err)
	}
	return New(db, tables), nil
}

// New returns a store over an existing connection pool.
func New(db *sql.DB, tables Tables) *Store { return &Store{db: db, tables: tables} }

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// statement is a query text and its arguments.
type statement struct {
	query string
	args  []any
}

func day(d date.Date) time.Time { return d.Time() }

func instrumentsStatement(t Tables, codes []string) statement {
	return statement{
		query: fmt.Sprintf(`SELECT bond_code, bond_name, COALESCE(bond_full_name, ''), COALESCE(market_code, ''),
	sectype, COALESCE(sectype_name, ''), COALESCE(issuer, ''), coupon_rate_current, coupon_rate_issue,
	issue_date, maturity_date, COALESCE(term, '')
FROM %s WHERE bond_code = ANY($1)`, pq.QuoteIdentifier(t.Instruments)),
		args: []any{pq.Array(codes)},
	}
}

func positionsStatement(t Tables, q bondyield.Query) statement {
	return statement{
		query: fmt.Sprintf(`SELECT carry_date, bond_code, COALESCE(bond_name, ''), COALESCE(market_code, ''),
	COALESCE(portfolio_no, ''), carry_type, hold_amt, cost_net_price, cost_full_price
FROM %s
WHERE carry_date BETWEEN $1 AND $2
	AND ($3 = 0 OR carry_type = $3)
	AND (cardinality($4::text[]) = 0 OR bond_code = ANY($4))
	AND NOT (COALESCE(portfolio_no, '') = ANY($5))
ORDER BY carry_date, bond_code`, pq.QuoteIdentifier(t.Positions)),
		args: []any{day(q.Range.From), day(q.Range.To), int(q.CarryType), pq.Array(nonNil(q.Codes)), pq.Array(nonNil(q.ExcludedPortfolios))},
	}
}

func cashFlowsStatement(t Tables, q bondyield.Query) statement {
	return statement{
		query: fmt.Sprintf(`SELECT bond_code, start_date, end_date, accrual_days, interest
FROM %s
WHERE end_date >= $1 AND start_date <= $2
	AND (cardinality($3::text[]) = 0 OR bond_code = ANY($3))
ORDER BY bond_code, start_date`, pq.QuoteIdentifier(t.CashFlows)),
		args: []any{day(q.Range.From), day(q.Range.To), pq.Array(nonNil(q.Codes))},
	}
}

func valuationsStatement(t Tables, q bondyield.Query) statement {
	return statement{
		query: fmt.Sprintf(`SELECT valuation_date, bond_code, net_price
FROM %s
WHERE valuation_date BETWEEN $1 AND $2
	AND (cardinality($3::text[]) = 0 OR bond_code = ANY($3))
ORDER BY valuation_date`, pq.QuoteIdentifier(t.Valuations)),
		args: []any{day(q.Range.From), day(q.Range.To), pq.Array(nonNil(q.Codes))},
	}
}

// tradesStatement selects raw rows, dated by the column the venue mapping reads.
func tradesStatement(table string, m bondyield.VenueMapping, q bondyield.Query) statement {
	dateColumn := column(m.Date)
	return statement{
		query: fmt.Sprintf(`SELECT * FROM %s
WHERE %s BETWEEN $1 AND $2
	AND (cardinality($3::text[]) = 0 OR bond_code = ANY($3))
	AND NOT (COALESCE(portfolio_no, '') = ANY($4))`, pq.QuoteIdentifier(table), pq.QuoteIdentifier(dateColumn)),
		args: []any{day(q.Range.From), day(q.Range.To), pq.Array(nonNil(q.Codes)), pq.Array(nonNil(q.ExcludedPortfolios))},
	}
}

// column returns the column name of a "$.column" JSONPath.
func column(path string) string {
	if len(path) > 2 && path[:2] == "$." {
		return path[2:]
	}
	return path
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *Store) Instruments(ctx context.Context, codes []string) ([]bondyield.Instrument, error) {
	st := instrumentsStatement(s.tables, codes)
	rows, err := s.db.QueryContext(ctx, st.query, st.args...)
	if err != nil {
		return nil, fmt.Errorf("querying instruments: %w", err)
	}
	defer rows.Close()
	var out []bondyield.Instrument
	for rows.Next() {
		var (
			inst            bondyield.Instrument
			issue, maturity sql.NullTime
		)
		if err := rows.Scan(&inst.Code, &inst.Name, &inst.FullName, &inst.Market, &inst.Class, &inst.ClassName,
			&inst.Issuer, &inst.CouponRate, &inst.IssueCouponRate, &issue, &maturity, &inst.Term); err != nil {
			return nil, fmt.Errorf("scanning instrument: %w", err)
		}
		if issue.Valid {
			inst.IssueDate = date.FromTime(issue.Time)
		}
		if maturity.Valid {
			inst.Maturity = date.FromTime(maturity.Time)
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}

func (s *Store) Positions(ctx context.Context, q bondyield.Query) ([]bondyield.PositionRecord, error) {
	st := positionsStatement(s.tables, q)
	rows, err := s.db.QueryContext(ctx, st.query, st.args...)
	if err != nil {
		return nil, fmt.Errorf("querying positions: %w", err)
	}
	defer rows.Close()
	var out []bondyield.PositionRecord
	for rows.Next() {
		var (
			p     bondyield.PositionRecord
			on    time.Time
			carry int
		)
		if err := rows.Scan(&on, &p.Code, &p.Name, &p.Market, &p.Portfolio, &carry, &p.Held, &p.CostNetPrice, &p.CostFullPrice); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		p.Date, p.CarryType = date.FromTime(on), bondyield.CarryType(carry)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CashFlows(ctx context.Context, q bondyield.Query) ([]bondyield.CashFlowPeriod, error) {
	st := cashFlowsStatement(s.tables, q)
	rows, err := s.db.QueryContext(ctx, st.query, st.args...)
	if err != nil {
		return nil, fmt.Errorf("querying cash flows: %w", err)
	}
	defer rows.Close()
	var out []bondyield.CashFlowPeriod
	for rows.Next() {
		var (
			p          bondyield.CashFlowPeriod
			start, end time.Time
		)
		if err := rows.Scan(&p.Code, &start, &end, &p.AccrualDays, &p.Interest); err != nil {
			return nil, fmt.Errorf("scanning cash flow: %w", err)
		}
		p.Start, p.End = date.FromTime(start), date.FromTime(end)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Valuations(ctx context.Context, q bondyield.Query) ([]bondyield.ValuationRecord, error) {
	st := valuationsStatement(s.tables, q)
	rows, err := s.db.QueryContext(ctx, st.query, st.args...)
	if err != nil {
		return nil, fmt.Errorf("querying valuations: %w", err)
	}
	defer rows.Close()
	var out []bondyield.ValuationRecord
	for rows.Next() {
		var (
			v  bondyield.ValuationRecord
			on time.Time
		)
		if err := rows.Scan(&on, &v.Code, &v.NetPrice); err != nil {
			return nil, fmt.Errorf("scanning valuation: %w", err)
		}
		v.Date = date.FromTime(on)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) Trades(ctx context.Context, q bondyield.Query) ([]bondyield.TradeRecord, error) {
	var out []bondyield.TradeRecord
	for venue, table := range map[bondyield.Venue]string{
		bondyield.Primary:   s.tables.Primary,
		bondyield.Interbank: s.tables.Interbank,
		bondyield.Exchange:  s.tables.Exchange,
	} {
		m := bondyield.MappingFor(venue)
		st := tradesStatement(table, m, q)
		raw, err := s.rawRows(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("querying %s trades: %w", venue, err)
		}
		trades, err := m.NormalizeRows(raw)
		if err != nil {
			return nil, fmt.Errorf("%s trades: %w", venue, err)
		}
		out = append(out, trades...)
	}
	bondyield.SortTrades(out)
	return out, nil
}

// rawRows returns the rows as column name to value maps.
func (s *Store) rawRows(ctx context.Context, st statement) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, st.query, st.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		out = append(out, rowMap(columns, values))
	}
	return out, rows.Err()
}

// rowMap converts driver values into the JSON-like values VenueMapping reads:
// numerics arrive as bytes and dates as time.Time.
func rowMap(columns []string, values []any) map[string]any {
	row := make(map[string]any, len(columns))
	for i, c := range columns {
		switch v := values[i].(type) {
		case []byte:
			row[c] = string(v)
		case time.Time:
			row[c] = date.FromTime(v).String()
		case float64:
			row[c] = decimal.NewFromFloat(v).String()
		default:
			row[c] = v
		}
	}
	return row
}

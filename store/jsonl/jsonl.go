// Package jsonl reads a dataset directory of JSONL files, one file per feed.
//
// The directory layout is:
//
//	instruments.jsonl       bondyield.Instrument
//	positions.jsonl         bondyield.PositionRecord
//	cashflows.jsonl         bondyield.CashFlowPeriod
//	valuations.jsonl        bondyield.ValuationRecord
//	trades_primary.jsonl    raw primary allocation rows
//	trades_interbank.jsonl  raw interbank execution rows
//	trades_exchange.jsonl   raw exchange execution rows
//
// Raw trade rows keep the column names of their feed and are normalized with
// bondyield.VenueMapping. Missing files are empty feeds.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/store/memory"
)

const (
	InstrumentsFile = "instruments.jsonl"
	PositionsFile   = "positions.jsonl"
	CashFlowsFile   = "cashflows.jsonl"
	ValuationsFile  = "valuations.jsonl"
)

// TradesFile returns the file name of the raw trades of a venue.
func TradesFile(v bondyield.Venue) string { return "trades_" + v.String() + ".jsonl" }

// Store is a dataset loaded in memory.
type Store struct {
	*memory.Store
	Dir string
}

// Open loads the dataset of dir.
func Open(dir string) (*Store, error) {
	s := &Store{Store: memory.NewStore(), Dir: dir}
	fsys := os.DirFS(dir)

	instruments, err := decodeFile[bondyield.Instrument](fsys, InstrumentsFile)
	if err != nil {
		return nil, err
	}
	if err := bondyield.Validate(instruments); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, InstrumentsFile), err)
	}
	s.AddInstruments(instruments...)

	positions, err := decodeFile[bondyield.PositionRecord](fsys, PositionsFile)
	if err != nil {
		return nil, err
	}
	if err := bondyield.Validate(positions); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, PositionsFile), err)
	}
	s.AddPositions(positions...)

	flows, err := decodeFile[bondyield.CashFlowPeriod](fsys, CashFlowsFile)
	if err != nil {
		return nil, err
	}
	if err := bondyield.Validate(flows); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, CashFlowsFile), err)
	}
	s.AddCashFlows(flows...)

	valuations, err := decodeFile[bondyield.ValuationRecord](fsys, ValuationsFile)
	if err != nil {
		return nil, err
	}
	if err := bondyield.Validate(valuations); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, ValuationsFile), err)
	}
	s.AddValuations(valuations...)

	for _, venue := range []bondyield.Venue{bondyield.Primary, bondyield.Interbank, bondyield.Exchange} {
		name := TradesFile(venue)
		rows, err := decodeFile[map[string]any](fsys, name)
		if err != nil {
			return nil, err
		}
		trades, err := bondyield.MappingFor(venue).NormalizeRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Join(dir, name), err)
		}
		if err := bondyield.Validate(trades); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Join(dir, name), err)
		}
		s.AddTrades(trades...)
	}
	return s, nil
}

func decodeFile[T any](fsys fs.FS, name string) ([]T, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := Decode[T](f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return items, nil
}

// Decode reads one JSON value per line. Numbers are kept exact.
func Decode[T any](r io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue // Skip empty lines
		}
		var item T
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	return items, scanner.Err()
}

// Encode writes one JSON value per line.
func Encode[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

package carbon

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"flight-carbon-service/internal/domain"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ICAO Appendix A load factors, consolidated per continent pair.
// Rows are origin continents, columns destination continents.
var (
	//go:embed data/plf.csv
	plfCSV []byte

	//go:embed data/ptff.csv
	ptffCSV []byte
)

const numContinents = 6

// LoadFactors are the continent-pair coefficients of the emission formula.
type LoadFactors struct {
	// Passenger is the fraction of seats occupied (plf).
	Passenger float64

	// PaxToFreight is the fraction of payload attributed to passengers (ptff).
	PaxToFreight float64
}

// LoadFactorTable holds the plf and ptff tables for every continent pair.
// A table is read-only once built and safe for concurrent use.
type LoadFactorTable struct {
	plf  [numContinents][numContinents]float64
	ptff [numContinents][numContinents]float64
}

var (
	defaultTable     *LoadFactorTable
	defaultTableErr  error
	defaultTableOnce sync.Once
)

// DefaultLoadFactorTable returns the table built from the embedded reference data.
// The data is parsed once on first use.
func DefaultLoadFactorTable() (*LoadFactorTable, error) {
	defaultTableOnce.Do(func() {
		defaultTable, defaultTableErr = ParseLoadFactorTable(bytes.NewReader(plfCSV), bytes.NewReader(ptffCSV))
	})
	return defaultTable, defaultTableErr
}

// LoadLoadFactorTable reads the plf and ptff tables from CSV files. An empty path
// selects the embedded table for that factor.
func LoadLoadFactorTable(plfPath, ptffPath string) (*LoadFactorTable, error) {
	plf, err := openTable(plfPath, plfCSV)
	if err != nil {
		return nil, fmt.Errorf("load factor table: %w", err)
	}
	ptff, err := openTable(ptffPath, ptffCSV)
	if err != nil {
		return nil, fmt.Errorf("load factor table: %w", err)
	}
	return ParseLoadFactorTable(bytes.NewReader(plf), bytes.NewReader(ptff))
}

func openTable(path string, embedded []byte) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return embedded, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return b, nil
}

// ParseLoadFactorTable builds a table from two CSV streams laid out as
//
//	continent,Europe,North America,South America,Africa,Asia,Oceania
//	Europe,0.807,0.822,...
//
// Every continent must appear exactly once on both axes and every value must lie in (0, 1].
func ParseLoadFactorTable(plf, ptff io.Reader) (*LoadFactorTable, error) {
	t := &LoadFactorTable{}
	if err := parseMatrix(plf, &t.plf); err != nil {
		return nil, fmt.Errorf("parse plf table: %w", err)
	}
	if err := parseMatrix(ptff, &t.ptff); err != nil {
		return nil, fmt.Errorf("parse ptff table: %w", err)
	}
	return t, nil
}

func parseMatrix(r io.Reader, m *[numContinents][numContinents]float64) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(header) != numContinents+1 {
		return fmt.Errorf("header has %d columns, want %d", len(header), numContinents+1)
	}

	cols := make([]domain.Continent, numContinents)
	seenCols := make(map[domain.Continent]bool, numContinents)
	for i, name := range header[1:] {
		c, err := domain.ParseContinent(name)
		if err != nil {
			return fmt.Errorf("header column %d: %w", i+2, err)
		}
		if seenCols[c] {
			return fmt.Errorf("header column %d: duplicate continent %q", i+2, c)
		}
		seenCols[c] = true
		cols[i] = c
	}

	seenRows := make(map[domain.Continent]bool, numContinents)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		row, err := domain.ParseContinent(record[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if seenRows[row] {
			return fmt.Errorf("line %d: duplicate continent %q", line, row)
		}
		seenRows[row] = true

		for i, raw := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return fmt.Errorf("line %d, %s -> %s: %w", line, row, cols[i], err)
			}
			if math.IsNaN(v) || v <= 0 || v > 1 {
				return fmt.Errorf("line %d, %s -> %s: value %v outside (0, 1]: %w",
					line, row, cols[i], v, domain.ErrDegenerateLoadFactor)
			}
			m[index(row)][index(cols[i])] = v
		}
	}

	if len(seenRows) != numContinents {
		missing := make([]string, 0, numContinents)
		for _, c := range domain.Continents() {
			if !seenRows[c] {
				missing = append(missing, c.String())
			}
		}
		return fmt.Errorf("missing rows %s: %w", strings.Join(missing, ", "), domain.ErrUnknownContinentPair)
	}

	return nil
}

func index(c domain.Continent) int { return int(c) - 1 }

// Lookup returns the load factors for flights from origin to destination.
func (t *LoadFactorTable) Lookup(origin, destination domain.Continent) (LoadFactors, error) {
	if t == nil {
		return LoadFactors{}, errors.New("load factor lookup: table is nil")
	}
	if !origin.Valid() || !destination.Valid() {
		return LoadFactors{}, fmt.Errorf("load factor lookup %q -> %q: %w",
			origin, destination, domain.ErrUnknownContinentPair)
	}

	i, j := index(origin), index(destination)
	return LoadFactors{Passenger: t.plf[i][j], PaxToFreight: t.ptff[i][j]}, nil
}

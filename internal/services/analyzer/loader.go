package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/finsight/internal/models"
)

// LoadPortfolio reads a portfolio file, dispatching on extension.
// CSV files carry a symbol,shares,cost_basis header; YAML files carry a
// name plus a holdings list. The portfolio name defaults to the file stem.
func LoadPortfolio(path string) (*models.Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(f, name)
	case ".yaml", ".yml":
		return loadYAML(f, name)
	default:
		return nil, fmt.Errorf("unsupported portfolio format %q (want .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

// loadCSV parses the symbol,shares,cost_basis format. The header row is
// required; cost_basis may be empty. Blank lines are skipped, anything
// else malformed fails the load.
func loadCSV(r io.Reader, name string) (*models.Portfolio, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[strings.ToLower(strings.TrimSpace(col))] = i
	}
	symbolIdx, ok := cols["symbol"]
	if !ok {
		return nil, fmt.Errorf("CSV header missing symbol column")
	}
	sharesIdx, ok := cols["shares"]
	if !ok {
		return nil, fmt.Errorf("CSV header missing shares column")
	}
	costIdx, hasCost := cols["cost_basis"]

	portfolio := &models.Portfolio{Name: name}
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		symbol := strings.TrimSpace(record[symbolIdx])
		if symbol == "" {
			continue
		}

		shares, err := strconv.ParseFloat(strings.TrimSpace(record[sharesIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shares for %s on line %d: %w", symbol, line, err)
		}

		holding := models.Holding{Symbol: symbol, Shares: shares}
		if hasCost && costIdx < len(record) {
			if raw := strings.TrimSpace(record[costIdx]); raw != "" {
				cost, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid cost basis for %s on line %d: %w", symbol, line, err)
				}
				holding.CostBasis = &cost
			}
		}

		portfolio.Holdings = append(portfolio.Holdings, holding)
	}

	return portfolio, nil
}

// yamlPortfolio mirrors the YAML portfolio file shape
type yamlPortfolio struct {
	Name     string `yaml:"name"`
	Holdings []struct {
		Symbol    string   `yaml:"symbol"`
		Shares    float64  `yaml:"shares"`
		CostBasis *float64 `yaml:"cost_basis"`
	} `yaml:"holdings"`
}

func loadYAML(r io.Reader, name string) (*models.Portfolio, error) {
	var doc yamlPortfolio
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio YAML: %w", err)
	}

	if doc.Name != "" {
		name = doc.Name
	}

	portfolio := &models.Portfolio{Name: name}
	for _, h := range doc.Holdings {
		portfolio.Holdings = append(portfolio.Holdings, models.Holding{
			Symbol:    h.Symbol,
			Shares:    h.Shares,
			CostBasis: h.CostBasis,
		})
	}

	return portfolio, nil
}

package scenario

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"gopkg.in/ini.v1"
)

const (
	DefaultName     = "default"
	DefaultFileName = ".roiatlas"
)

const (
	keySearchVolume   = "monthly_search_volume"
	keyClickThrough   = "avg_click_through_rate"
	keyConversionRate = "conversion_rate"
	keyOrderValue     = "average_order_value"
	keyGrowthRate     = "monthly_growth_rate"
	keySEOCost        = "monthly_seo_cost"
	keyTimeframe      = "timeframe"
)

// Registry resolves named input presets.
type Registry interface {
	GetScenarios(ctx context.Context) ([]string, error)
	GetInputs(ctx context.Context, name string) (domain.CalculatorInputs, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// DefaultPath is $HOME/.roiatlas.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFileName), nil
}

// NewRegistry loads scenarios from path. A missing file yields a registry
// holding only the built-in default scenario.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &iniRegistry{cfg: ini.Empty()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func NewRegistryFromBytes(data []byte) (Registry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

// GetScenarios lists the default scenario first, then every named section
// with at least one key. Keys above the first section header belong to
// the default scenario.
func (r *iniRegistry) GetScenarios(_ context.Context) ([]string, error) {
	scenarios := []string{DefaultName}
	for _, section := range r.cfg.Sections() {
		name := section.Name()
		if len(section.Keys()) > 0 && name != DefaultName && name != ini.DefaultSection {
			scenarios = append(scenarios, name)
		}
	}
	return scenarios, nil
}

func (r *iniRegistry) GetInputs(_ context.Context, name string) (domain.CalculatorInputs, error) {
	section := r.section(name)
	if section == nil {
		if name == DefaultName {
			return domain.DefaultInputs(), nil
		}
		return domain.CalculatorInputs{}, domain.NewStandardError(
			domain.ErrCodeScenarioNotFound,
			"Scenario not found",
			name,
		)
	}

	number := func(key string) float64 {
		return format.ParseNumber(section.Key(key).String())
	}

	return domain.CalculatorInputs{
		MonthlySearchVolume: number(keySearchVolume),
		AvgClickThroughRate: number(keyClickThrough),
		ConversionRate:      number(keyConversionRate),
		AverageOrderValue:   number(keyOrderValue),
		MonthlyGrowthRate:   number(keyGrowthRate),
		MonthlySEOCost:      number(keySEOCost),
		Timeframe:           format.Truncate(number(keyTimeframe)),
	}, nil
}

// section prefers an explicit [default] over top-level keys.
func (r *iniRegistry) section(name string) *ini.Section {
	if name == ini.DefaultSection {
		return nil
	}
	if s, err := r.cfg.GetSection(name); err == nil && len(s.Keys()) > 0 {
		return s
	}
	if name != DefaultName {
		return nil
	}
	if s, err := r.cfg.GetSection(ini.DefaultSection); err == nil && len(s.Keys()) > 0 {
		return s
	}
	return nil
}

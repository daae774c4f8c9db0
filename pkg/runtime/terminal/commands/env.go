package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/config"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
	"github.com/spf13/cobra"
)

// Env is shared by every command. Config is filled in by the root command
// before any subcommand runs.
type Env struct {
	Config      *config.Config
	Dispatchers email.Registry
	Output      io.Writer
	Now         func() time.Time
}

func (e *Env) assembler() *report.Assembler {
	return report.NewAssembler(e.Config.Formatter(), e.Config.Layout())
}

func (e *Env) scenarios(profilePath string) (scenario.Registry, error) {
	path := profilePath
	if path == "" {
		path = e.Config.Scenarios.Path
	}
	if path == "" {
		var err error
		path, err = scenario.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve scenarios path: %w", err)
		}
	}

	registry, err := scenario.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios from %s: %w", path, err)
	}
	return registry, nil
}

// inputFlags binds one flag per calculator input. Flags the user sets
// override the selected scenario.
type inputFlags struct {
	values      domain.CalculatorInputs
	scenario    string
	profilePath string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	defaults := domain.DefaultInputs()

	cmd.Flags().Float64Var(&f.values.MonthlySearchVolume, "search-volume", defaults.MonthlySearchVolume, "Monthly search volume")
	cmd.Flags().Float64Var(&f.values.AvgClickThroughRate, "ctr", defaults.AvgClickThroughRate, "Average click-through rate (%)")
	cmd.Flags().Float64Var(&f.values.ConversionRate, "conversion-rate", defaults.ConversionRate, "Conversion rate (%)")
	cmd.Flags().Float64Var(&f.values.AverageOrderValue, "order-value", defaults.AverageOrderValue, "Average order value")
	cmd.Flags().Float64Var(&f.values.MonthlyGrowthRate, "growth-rate", defaults.MonthlyGrowthRate, "Monthly traffic growth rate (%)")
	cmd.Flags().Float64Var(&f.values.MonthlySEOCost, "seo-cost", defaults.MonthlySEOCost, "Monthly SEO investment")
	cmd.Flags().IntVar(&f.values.Timeframe, "timeframe", defaults.Timeframe, "Campaign timeframe in months")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Named scenario to start from")
	cmd.Flags().StringVar(&f.profilePath, "profile-path", "", "Path to the scenarios file (default is $HOME/.roiatlas)")
}

func (f *inputFlags) resolve(ctx context.Context, cmd *cobra.Command, env *Env) (domain.CalculatorInputs, error) {
	if f.scenario == "" {
		return f.values, nil
	}

	registry, err := env.scenarios(f.profilePath)
	if err != nil {
		return domain.CalculatorInputs{}, err
	}

	inputs, err := registry.GetInputs(ctx, f.scenario)
	if err != nil {
		return domain.CalculatorInputs{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("search-volume") {
		inputs.MonthlySearchVolume = f.values.MonthlySearchVolume
	}
	if flags.Changed("ctr") {
		inputs.AvgClickThroughRate = f.values.AvgClickThroughRate
	}
	if flags.Changed("conversion-rate") {
		inputs.ConversionRate = f.values.ConversionRate
	}
	if flags.Changed("order-value") {
		inputs.AverageOrderValue = f.values.AverageOrderValue
	}
	if flags.Changed("growth-rate") {
		inputs.MonthlyGrowthRate = f.values.MonthlyGrowthRate
	}
	if flags.Changed("seo-cost") {
		inputs.MonthlySEOCost = f.values.MonthlySEOCost
	}
	if flags.Changed("timeframe") {
		inputs.Timeframe = f.values.Timeframe
	}
	return inputs, nil
}

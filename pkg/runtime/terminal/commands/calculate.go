package commands

import (
	"github.com/de-tools/roi-atlas/pkg/metrics"
	"github.com/de-tools/roi-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/roi-atlas/pkg/services/projection"
	"github.com/spf13/cobra"
)

type CalculateCmd struct {
	inputs inputFlags
	env    *Env
}

func NewCalculateCmd(env *Env) *cobra.Command {
	cc := &CalculateCmd{env: env}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Project SEO traffic, revenue and ROI",
		RunE:  cc.run,
	}

	cc.inputs.bind(cmd)
	return cmd
}

func (cc *CalculateCmd) run(cmd *cobra.Command, _ []string) error {
	inputs, err := cc.inputs.resolve(cmd.Context(), cmd, cc.env)
	if err != nil {
		return err
	}

	metrics.CalculationsTotal.WithLabelValues("cli").Inc()
	doc := cc.env.assembler().Build(inputs, projection.Calculate(inputs), cc.env.Now())

	return export.NewReporter(cc.env.Output).Handle(&doc)
}

package commands

import (
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/runtime/render"
	"github.com/de-tools/roi-atlas/pkg/services/projection"
	"github.com/de-tools/roi-atlas/pkg/store/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	inputs inputFlags
	format string
	out    string
	env    *Env
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the ROI report as PDF or text",
		RunE:  rc.run,
	}

	rc.inputs.bind(cmd)
	cmd.Flags().StringVar(&rc.format, "format", string(render.FormatPDF), "Output format (pdf or text)")
	cmd.Flags().StringVar(&rc.out, "out", "", "Destination path or s3://bucket/key (default is SEO_ROI_Analysis.<ext>)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	f, err := render.ParseFormat(rc.format)
	if err != nil {
		return err
	}

	inputs, err := rc.inputs.resolve(ctx, cmd, rc.env)
	if err != nil {
		return err
	}

	doc := rc.env.assembler().Build(inputs, projection.Calculate(inputs), rc.env.Now())
	data, err := render.NewRenderer(rc.env.Config.Layout()).Render(&doc, f)
	if err != nil {
		return err
	}

	destination := rc.out
	if destination == "" {
		destination = f.FileName()
	}

	sink, err := export.NewSink(ctx, destination, rc.env.Config.Export.Region)
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}

	location, err := sink.Write(ctx, data, f.ContentType())
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("location", location).Int("bytes", len(data)).Msg("report exported")
	fmt.Fprintf(rc.env.Output, "Report written to %s\n", location)
	return nil
}

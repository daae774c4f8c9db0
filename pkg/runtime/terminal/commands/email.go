package commands

import (
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/projection"
	"github.com/spf13/cobra"
)

type EmailCmd struct {
	inputs inputFlags
	to     string
	env    *Env
}

func NewEmailCmd(env *Env) *cobra.Command {
	ec := &EmailCmd{env: env}
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Email the ROI report",
		RunE:  ec.run,
	}

	ec.inputs.bind(cmd)
	cmd.Flags().StringVar(&ec.to, "to", "", "Recipient email address")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (ec *EmailCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := email.ValidateAddress(ec.to); err != nil {
		return err
	}

	inputs, err := ec.inputs.resolve(ctx, cmd, ec.env)
	if err != nil {
		return err
	}

	cfg := ec.env.Config.Dispatcher()
	dispatcher, err := ec.env.Dispatchers.Create(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s dispatcher: %w", cfg.Provider, err)
	}

	doc := ec.env.assembler().Build(inputs, projection.Calculate(inputs), ec.env.Now())
	id, receipts, err := email.NewSender(dispatcher, cfg.From).Send(ctx, ec.to, &doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(ec.env.Output, "Sending report to %s via %s...\n", ec.to, dispatcher.Provider())

	receipt := <-receipts
	if receipt.Status != email.StatusDelivered {
		if receipt.Err != nil {
			return fmt.Errorf("delivery %s %s: %w", id, receipt.Status, receipt.Err)
		}
		return fmt.Errorf("delivery %s %s", id, receipt.Status)
	}

	fmt.Fprintf(ec.env.Output, "Report sent to %s (message %s)\n", ec.to, receipt.MessageID)
	return nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ScenariosCmd struct {
	profilePath string
	env         *Env
}

func NewScenariosCmd(env *Env) *cobra.Command {
	sc := &ScenariosCmd{env: env}
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List named input scenarios",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile-path", "", "Path to the scenarios file (default is $HOME/.roiatlas)")

	return cmd
}

func (sc *ScenariosCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := sc.env.scenarios(sc.profilePath)
	if err != nil {
		return err
	}

	names, err := registry.GetScenarios(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list scenarios: %w", err)
	}

	fmt.Fprintf(sc.env.Output, "Available scenarios:\n%s\n", strings.Join(names, "\n"))
	return nil
}

package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/roi-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/roi-atlas/pkg/services/config"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env        *commands.Env
	logOutput  io.Writer
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Dispatchers email.Registry
	Output      io.Writer
	// LogOutput receives diagnostics; it defaults to stderr so that report
	// text on Output stays clean.
	LogOutput io.Writer
	Now       func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Dispatchers == nil {
		opts.Dispatchers = email.NewDefaultRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		env: &commands.Env{
			Dispatchers: opts.Dispatchers,
			Output:      opts.Output,
			Now:         opts.Now,
		},
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background(), nil)
}

// ExecuteContext runs the command line in args, or os.Args when args is nil.
func (cli *CLI) ExecuteContext(ctx context.Context, args []string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "roi",
		Short:             "SEO return on investment calculator",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")

	cmd.AddCommand(commands.NewCalculateCmd(cli.env))
	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewEmailCmd(cli.env))
	cmd.AddCommand(commands.NewScenariosCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	cli.env.Config = cfg

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOutput, NoColor: true}).
		Level(cfg.LogLevel()).
		With().
		Timestamp().
		Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

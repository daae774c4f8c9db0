package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/roi-atlas/pkg/server"
	"github.com/de-tools/roi-atlas/pkg/services/config"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath       string
	scenariosPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the SEO ROI calculator",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&scenariosPath, "scenarios", "",
		"Path to the scenarios file (default is $HOME/.roiatlas)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	path := scenariosPath
	if path == "" {
		path = cfg.Scenarios.Path
	}
	if path == "" {
		if path, err = scenario.DefaultPath(); err != nil {
			return fmt.Errorf("failed to resolve scenarios path: %w", err)
		}
	}

	scenarios, err := scenario.NewRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to create scenario registry: %w", err)
	}

	names, _ := scenarios.GetScenarios(ctx)
	logger.Info().Msgf("Scenarios at `%s` loaded: %v", path, names)

	dispatcherCfg := cfg.Dispatcher()
	dispatcher, err := email.NewDefaultRegistry().Create(ctx, dispatcherCfg)
	if err != nil {
		return fmt.Errorf("failed to create email dispatcher: %w", err)
	}
	logger.Info().Str("provider", dispatcher.Provider()).Msg("email dispatcher ready")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Scenarios:  scenarios,
			Deliveries: email.NewController(email.NewSender(dispatcher, dispatcherCfg.From), cfg.Email.Retention),
			Formatter:  cfg.Formatter(),
			Layout:     cfg.Layout(),
		},
	})

	return webAPI.Start()
}

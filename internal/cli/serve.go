package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/fourinarow/internal/api"
	"github.com/mcoot/fourinarow/internal/config"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
		showEnv    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the fourinarow API server",
		Long: `Run the fourinarow API server.

Settings come from a YAML file (--config or CONFIG_PATH) with environment
variables taking precedence. Use --env to list them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showEnv {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.Usage())
				return err
			}

			if configPath == "" {
				path, err := config.PathFromEnv()
				if err != nil {
					return err
				}
				configPath = path
			}
			serverCfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				serverCfg.HTTP.Port = port
			}

			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: serverCfg.Level(),
			}))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.Run(ctx, serverCfg, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (env: CONFIG_PATH)")
	cmd.Flags().IntVar(&port, "port", 0, "Override the HTTP port")
	cmd.Flags().BoolVar(&showEnv, "env", false, "List supported environment variables and exit")

	return cmd
}


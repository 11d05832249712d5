package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minsu-kang/steamrec/bootstrap"
	"github.com/minsu-kang/steamrec/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		holder, err := config.NewHolder(cfgFile, bootstrap.NewLogger(config.Default().Logging))
		if err != nil {
			return err
		}
		defer holder.Close()

		cfg := holder.Get()
		logger := bootstrap.NewLogger(cfg.Logging)

		app, err := bootstrap.Build(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		// Rate limit rules follow the config file without a restart.
		holder.OnChange(func(c *config.Config) {
			app.Limiter.Replace(bootstrap.Rules(c.RateLimit), bootstrap.RuleConfig(c.RateLimit.Default))
		})
		if err := holder.Watch(); err != nil {
			logger.Warn().Err(err).Msg("config hot reload disabled")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return bootstrap.Run(ctx, cfg, app)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

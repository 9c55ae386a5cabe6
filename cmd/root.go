package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpost/blog-api/internal/pkg/config"
	"github.com/inkpost/blog-api/pkg/logger"
)

const serviceName = "blog-api"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blog-api",
	Short: "REST backend for the blog",
	Long: `REST backend for the blog: accounts, articles and comments.

	blog-api server          start the HTTP server
	blog-api migrate up      apply pending schema migrations`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBase reads the configuration and initialises the logger.
func loadBase(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, nil
}

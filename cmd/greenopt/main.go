package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenweb/optimizer/internal/config"
	"github.com/greenweb/optimizer/internal/log"
	"github.com/greenweb/optimizer/internal/source"
)

var (
	configPath string
	logEnv     string
)

var rootCmd = &cobra.Command{
	Use:   "greenopt",
	Short: "Web project asset analyzer and optimizer",
	Long: `greenopt finds unreferenced static assets in a web project and produces
a cleaned, size-reduced copy packaged as an archive.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Initialize(logEnv)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "greenopt.toml", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", "dev", "logging environment (dev|prod)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// buildProvider treats the target as a GitHub URL when it carries a
// scheme, and a local directory otherwise.
func buildProvider(cfg config.Config, target, branch string) (source.Provider, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return source.NewGitHubProvider(target, branch, cfg.Source.GitHubToken)
	}
	return source.NewLocalProvider(target), nil
}

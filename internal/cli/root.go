package cli

import (
	"github.com/spf13/cobra"

	"github.com/lazypower/memoria/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "memoria",
	Short: "Shareable memory pages that live entirely in their link",
	Long: "Memoria packs a memory page (title, message, media, theme, optional password) " +
		"into a single URL. No database: the link is the storage.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(suggestCmd)
}

// loadConfig reads the config named by --config, or MEMORIA_CONFIG.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = envOr("MEMORIA_CONFIG", "")
	}
	return config.Load(path)
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docrag/config"
	"docrag/internal/logging"
)

const Version = "1.0.0"

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "Weighted semantic retrieval over markdown documentation",
	Long: `docrag indexes a markdown documentation set into embedded chunks and
answers natural-language queries with the most relevant chunks, ranked by
cosine similarity combined with source-authority and query-intent weights.

Example usage:
  docrag index ./docs                 # Build the index
  docrag search -q "retry policy"     # Query from the command line
  docrag serve                        # HTTP front-end
  docrag mcp                          # MCP tool server over stdio`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		_ = godotenv.Load()

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = logging.New(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

// resolve turns a config-relative path into an absolute one.
func resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/config"
	"github.com/abhisek/studiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studiz",
	Short: "AI study companion in your terminal",
	Long: "Studiz — flashcards with spaced repetition, AI-generated exams,\n" +
		"and weak-topic coaching, all built from your own study material.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides STUDIZ_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides config)")

	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig layers defaults, the config file, STUDIZ_* env vars, and
// command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

// openStore opens the database at the configured path, falling back to
// the default XDG location.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath := cfg.DB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

// dbPathFor resolves the database path without opening it.
func dbPathFor(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, nil
	}
	return store.DefaultDBPath()
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/app"
	"github.com/abhisek/studiz/internal/llm"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Store:  st,
		Config: cfg,
	}

	llmCfg := cfg.LLM
	if err := llmCfg.Validate(); err != nil {
		// No key for the configured provider; probe standard env vars.
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		} else {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Exams, card generation, and the tutor will be unavailable.")
			llmCfg = llm.Config{}
		}
	}

	if llmCfg.Provider != "" {
		provider, err := llm.NewProvider(ctx, llmCfg, st.Events())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Exams, card generation, and the tutor will be unavailable.")
		} else {
			opts.Provider = provider
		}
	}

	return app.Run(opts)
}

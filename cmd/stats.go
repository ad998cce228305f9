package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		decks, err := st.Decks().List(ctx)
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}
		due, err := st.Cards().CountDue(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("count due cards: %w", err)
		}

		fmt.Println("Decks")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Decks:      %d\n", len(decks))
		fmt.Printf("Cards due:  %d\n", due)

		exams, err := st.Exams().Recent(ctx, 10)
		if err != nil {
			return fmt.Errorf("recent exams: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Exams")
		fmt.Println(strings.Repeat("─", 48))
		if len(exams) == 0 {
			fmt.Println("No exams yet.")
		} else {
			for _, e := range exams {
				when := e.StartedAt.Local().Format("2006-01-02 15:04")
				if e.Status == "completed" {
					fmt.Printf("%s  %2d questions  %3d%%  grade %s\n",
						when, e.QuestionCount, e.Percentage, e.Grade)
				} else {
					fmt.Printf("%s  %2d questions  abandoned\n", when, e.QuestionCount)
				}
			}
		}

		llmStats, err := st.Events().LLMStats(ctx)
		if err != nil {
			return fmt.Errorf("llm stats: %w", err)
		}

		fmt.Println()
		fmt.Println("LLM Usage")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Requests:   %d (%d failed)\n", llmStats.Requests, llmStats.Failures)
		fmt.Printf("Tokens:     %d in / %d out\n", llmStats.InputTokens, llmStats.OutputTokens)
		fmt.Printf("Latency:    %.0fms avg\n", llmStats.AvgLatencyMs)

		return nil
	},
}

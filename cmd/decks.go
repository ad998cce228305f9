package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/cardgen"
	"github.com/abhisek/studiz/internal/deck"
	"github.com/abhisek/studiz/internal/llm"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Manage flashcard decks",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with card and due counts",
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
		if len(decks) == 0 {
			fmt.Println("No decks yet. Create one with: studiz decks add")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-38s  %-24s  %-16s  %5s  %5s\n", "ID", "Name", "Topic", "Cards", "Due")
		fmt.Println(strings.Repeat("─", 96))
		for _, d := range decks {
			cards, err := st.Cards().ByDeck(ctx, d.ID)
			if err != nil {
				return fmt.Errorf("cards for deck %s: %w", d.ID, err)
			}
			due, err := st.Cards().CountDueByDeck(ctx, d.ID, now)
			if err != nil {
				return fmt.Errorf("due count for deck %s: %w", d.ID, err)
			}
			fmt.Printf("%-38s  %-24s  %-16s  %5d  %5d\n",
				d.ID, truncate(d.Name, 24), truncate(d.Topic, 16), len(cards), due)
		}
		return nil
	},
}

var decksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a deck with AI-generated flashcards from a material file",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		topic, _ := cmd.Flags().GetString("topic")
		materialPath, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")

		if materialPath == "" {
			return fmt.Errorf("--file is required")
		}
		material, err := os.ReadFile(materialPath)
		if err != nil {
			return fmt.Errorf("read material file: %w", err)
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(materialPath), filepath.Ext(materialPath))
		}

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

		llmCfg := cfg.LLM
		if err := llmCfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return fmt.Errorf("card generation needs an LLM provider: %w", err)
			}
			llmCfg = discovered
		}
		provider, err := llm.NewProvider(ctx, llmCfg, st.Events())
		if err != nil {
			return fmt.Errorf("initialize LLM provider: %w", err)
		}

		gen := cardgen.New(provider, cardgen.DefaultConfig())
		svc := deck.NewService(st.Decks(), st.Cards(), gen)

		fmt.Printf("Generating %d cards from %s...\n", count, materialPath)
		d, cards, err := svc.Create(ctx, deck.CreateInput{
			Name:     name,
			Topic:    topic,
			Material: string(material),
			Count:    count,
		})
		if err != nil {
			return fmt.Errorf("create deck: %w", err)
		}

		fmt.Printf("Created deck %q (%s) with %d cards.\n", d.Name, d.ID, len(cards))
		return nil
	},
}

var decksCloneCmd = &cobra.Command{
	Use:   "clone <deck-id>",
	Short: "Clone a deck with all scheduling state reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := deck.NewService(st.Decks(), st.Cards(), nil)
		clone, err := svc.Clone(cmd.Context(), args[0], name)
		if err != nil {
			return fmt.Errorf("clone deck: %w", err)
		}

		fmt.Printf("Cloned into %q (%s). All cards start fresh.\n", clone.Name, clone.ID)
		return nil
	},
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

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
		d, err := st.Decks().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get deck: %w", err)
		}
		if d == nil {
			return fmt.Errorf("deck %s not found", args[0])
		}

		if !yes {
			fmt.Printf("Delete deck %q and all its cards? [y/N] ", d.Name)
			var answer string
			fmt.Scanln(&answer)
			if !strings.EqualFold(answer, "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := st.Decks().Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		fmt.Printf("Deleted deck %q.\n", d.Name)
		return nil
	},
}

func init() {
	decksAddCmd.Flags().String("name", "", "Deck name (defaults to the material file name)")
	decksAddCmd.Flags().String("topic", "", "Deck topic label")
	decksAddCmd.Flags().StringP("file", "f", "", "Path to the study material text file")
	decksAddCmd.Flags().IntP("count", "c", 10, "Number of cards to generate")

	decksCloneCmd.Flags().String("name", "", "Name for the clone (defaults to \"<source> (copy)\")")

	decksDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksAddCmd)
	decksCmd.AddCommand(decksCloneCmd)
	decksCmd.AddCommand(decksDeleteCmd)
}

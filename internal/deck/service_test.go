package deck

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/abhisek/studiz/internal/cardgen"
	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/srs"
	"github.com/abhisek/studiz/internal/store"
)

func testService(t *testing.T, responses ...llm.MockResponse) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	gen := cardgen.New(llm.NewMockProvider(responses...), cardgen.DefaultConfig())
	return NewService(s.Decks(), s.Cards(), gen), s
}

func cannedCards(t *testing.T, cards []cardgen.Card) llm.MockResponse {
	t.Helper()
	payload := map[string][]cardgen.Card{"cards": cards}
	content, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal cards: %v", err)
	}
	return llm.MockResponse{Content: content}
}

func TestCreate(t *testing.T) {
	svc, s := testService(t, cannedCards(t, []cardgen.Card{
		{Front: "f1", Back: "b1", Topic: "t1"},
		{Front: "f2", Back: "b2", Topic: "t2"},
	}))
	ctx := context.Background()

	d, cards, err := svc.Create(ctx, CreateInput{
		Name:     "Go Basics",
		Topic:    "go",
		Material: "study notes",
		Count:    2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}

	stored, err := s.Decks().Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if stored == nil || stored.Material != "study notes" {
		t.Error("deck material not persisted")
	}

	persisted, err := s.Cards().ByDeck(ctx, d.ID)
	if err != nil {
		t.Fatalf("by deck: %v", err)
	}
	if len(persisted) != 2 {
		t.Fatalf("persisted %d cards, want 2", len(persisted))
	}
	now := time.Now().UTC().Add(time.Second)
	for _, c := range persisted {
		if !c.State.Due(now) {
			t.Errorf("card %s should start due", c.ID)
		}
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := testService(t)
	if _, _, err := svc.Create(context.Background(), CreateInput{Material: "m", Count: 1}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCloneResetsScheduling(t *testing.T) {
	svc, s := testService(t, cannedCards(t, []cardgen.Card{
		{Front: "f", Back: "b", Topic: "t"},
	}))
	ctx := context.Background()
	now := time.Now().UTC()

	d, cards, err := svc.Create(ctx, CreateInput{Name: "Source", Material: "m", Count: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Review the source card so its schedule moves forward.
	if _, err := svc.Review(ctx, cards[0], 5, now); err != nil {
		t.Fatalf("review: %v", err)
	}

	clone, err := svc.Clone(ctx, d.ID, "")
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if clone.Name != "Source (copy)" {
		t.Errorf("clone name = %q", clone.Name)
	}
	if clone.Material != "m" {
		t.Error("clone should carry the source material")
	}

	cloned, err := s.Cards().ByDeck(ctx, clone.ID)
	if err != nil {
		t.Fatalf("cloned cards: %v", err)
	}
	if len(cloned) != 1 {
		t.Fatalf("clone has %d cards, want 1", len(cloned))
	}
	if cloned[0].State.Repetitions != 0 || !cloned[0].State.Due(now.Add(time.Second)) {
		t.Errorf("clone schedule not reset: %+v", cloned[0].State)
	}
}

func TestCloneMissingDeck(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.Clone(context.Background(), "missing", ""); err == nil {
		t.Error("expected error for missing source deck")
	}
}

func TestReviewPersistsSchedule(t *testing.T) {
	svc, _ := testService(t, cannedCards(t, []cardgen.Card{
		{Front: "f", Back: "b", Topic: "t"},
	}))
	ctx := context.Background()
	now := time.Now().UTC()

	d, cards, err := svc.Create(ctx, CreateInput{Name: "Deck", Material: "m", Count: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Review(ctx, cards[0], 4, now)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if updated.State.Repetitions != 1 {
		t.Errorf("repetitions = %d, want 1", updated.State.Repetitions)
	}

	due, err := svc.Due(ctx, d.ID, now)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 0 {
		t.Error("reviewed card must not be due until tomorrow")
	}

	due, err = svc.Due(ctx, d.ID, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 {
		t.Error("card should be due after its interval")
	}
}

func TestReviewRejectsInvalidRating(t *testing.T) {
	svc, _ := testService(t)
	card := srs.Card{ID: "x", State: srs.NewState(time.Now())}

	if _, err := svc.Review(context.Background(), card, 6, time.Now()); err == nil {
		t.Error("expected error for out-of-range quality")
	}
}

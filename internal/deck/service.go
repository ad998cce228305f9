package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studiz/internal/cardgen"
	"github.com/abhisek/studiz/internal/srs"
	"github.com/abhisek/studiz/internal/store"
)

// Service builds decks from study material and drives card reviews.
type Service struct {
	decks store.DeckRepo
	cards store.CardRepo
	gen   cardgen.Generator
}

// NewService creates a deck service over the given repos and generator.
func NewService(decks store.DeckRepo, cards store.CardRepo, gen cardgen.Generator) *Service {
	return &Service{decks: decks, cards: cards, gen: gen}
}

// CreateInput describes a deck to build.
type CreateInput struct {
	Name     string
	Topic    string
	Material string
	Count    int
}

// Create generates flashcards from the material and stores them as a
// new deck. Every card starts due immediately.
func (s *Service) Create(ctx context.Context, input CreateInput) (*store.Deck, []srs.Card, error) {
	if input.Name == "" {
		return nil, nil, fmt.Errorf("deck name is required")
	}

	generated, err := s.gen.Generate(ctx, cardgen.Input{
		Content: input.Material,
		Count:   input.Count,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("populate deck: %w", err)
	}

	now := time.Now().UTC()
	d := &store.Deck{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Topic:     input.Topic,
		Material:  input.Material,
		CreatedAt: now,
	}
	if err := s.decks.Create(ctx, d); err != nil {
		return nil, nil, err
	}

	cards := make([]srs.Card, 0, len(generated))
	for _, g := range generated {
		cards = append(cards, srs.Card{
			ID:     uuid.New().String(),
			DeckID: d.ID,
			Front:  g.Front,
			Back:   g.Back,
			Topic:  g.Topic,
			State:  srs.NewState(now),
		})
	}
	if err := s.cards.BulkInsert(ctx, cards); err != nil {
		return nil, nil, fmt.Errorf("store cards: %w", err)
	}
	return d, cards, nil
}

// Clone copies a deck's cards into a new deck with scheduling reset, so
// the same material can be studied from scratch.
func (s *Service) Clone(ctx context.Context, sourceID, name string) (*store.Deck, error) {
	src, err := s.decks.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("deck %s not found", sourceID)
	}

	if name == "" {
		name = src.Name + " (copy)"
	}
	clone := &store.Deck{
		ID:        uuid.New().String(),
		Name:      name,
		Topic:     src.Topic,
		Material:  src.Material,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.decks.Clone(ctx, sourceID, clone, clone.CreatedAt); err != nil {
		return nil, err
	}
	return clone, nil
}

// Due returns the deck's cards that are due at the given time, most
// overdue first.
func (s *Service) Due(ctx context.Context, deckID string, now time.Time) ([]srs.Card, error) {
	cards, err := s.cards.ByDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return srs.DueCards(cards, now), nil
}

// Review rates a card and persists the rescheduled state atomically.
// The returned card carries the new state.
func (s *Service) Review(ctx context.Context, card srs.Card, quality int, now time.Time) (srs.Card, error) {
	next, err := srs.Review(card.State, quality, now)
	if err != nil {
		return srs.Card{}, err
	}
	if err := s.cards.UpdateSchedule(ctx, card.ID, next); err != nil {
		return srs.Card{}, err
	}
	card.State = next
	return card, nil
}

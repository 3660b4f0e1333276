package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is returned when more cards are requested than remain in
// the deck. Under normal play a hand never needs more than the 52 cards, so
// callers treat this as an internal invariant failure rather than a
// recoverable condition.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is a shuffled 52-card source with deal-without-replacement semantics.
// It is shuffled once at creation and discarded at the end of the hand.
type Deck struct {
	cards Stack
}

// NewDeck52 creates a standard ordered deck of 52 cards
func NewDeck52() Stack {
	var deck Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	values := []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, value := range values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}

	return deck
}

// NewShuffledDeck creates a deck holding a uniform random permutation of the
// 52 cards.
func NewShuffledDeck() *Deck {
	return NewSeededDeck(time.Now().UnixNano())
}

// NewSeededDeck creates a shuffled deck from a fixed seed, for deterministic
// tests.
func NewSeededDeck(seed int64) *Deck {
	r := rand.New(rand.NewSource(seed))

	shuffled := NewDeck52()
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &Deck{cards: shuffled}
}

// NewStackedDeck creates a deck that deals the given cards front to back.
// Intended for tests that need a known board.
func NewStackedDeck(stack Stack) *Deck {
	return &Deck{cards: append(Stack{}, stack...)}
}

// Deal removes and returns the top n cards from the deck. It fails with
// ErrDeckExhausted if fewer than n cards remain, leaving the deck untouched.
func (d *Deck) Deal(n int) (Stack, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}

	dealt := make(Stack, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]

	return dealt, nil
}

// DealOne removes and returns the top card from the deck
func (d *Deck) DealOne() (Card, error) {
	dealt, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return dealt[0], nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

package wardrobe

import (
	"errors"
	"sort"
)

var (
	ErrUnknownItem       = errors.New("unknown wardrobe item")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrNotOwned          = errors.New("item not owned")
)

// Wallet is the coin balance the store draws on. The store never
// drives the balance negative: Debit must refuse and leave the balance
// untouched when the amount exceeds it.
type Wallet interface {
	Balance() int
	Debit(amount int) bool
}

// Inventory is a read-only snapshot of owned and equipped items.
type Inventory struct {
	Owned    []string        `json:"owned"`
	Equipped map[Slot]string `json:"equipped"`
}

// Store tracks owned and equipped cosmetic items for one user. Every
// operation either succeeds or fails cleanly with no partial mutation.
// The store is not safe for concurrent use on its own; the owning
// engine serializes access.
type Store struct {
	catalog  map[string]Item
	order    []string
	owned    map[string]bool
	equipped map[Slot]string
	wallet   Wallet
}

func NewStore(catalog []Item, wallet Wallet) *Store {
	s := &Store{
		catalog:  make(map[string]Item, len(catalog)),
		order:    make([]string, 0, len(catalog)),
		owned:    make(map[string]bool),
		equipped: make(map[Slot]string),
		wallet:   wallet,
	}
	for _, it := range catalog {
		s.catalog[it.ID] = it
		s.order = append(s.order, it.ID)
	}
	return s
}

// Catalog returns the static item catalog in definition order.
func (s *Store) Catalog() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.catalog[id])
	}
	return out
}

func (s *Store) Item(id string) (Item, bool) {
	it, ok := s.catalog[id]
	return it, ok
}

// Purchase buys an item, deducting its cost from the wallet and adding
// it to the owned set atomically.
func (s *Store) Purchase(id string) (Item, error) {
	it, ok := s.catalog[id]
	if !ok {
		return Item{}, ErrUnknownItem
	}
	if s.owned[id] {
		return Item{}, ErrAlreadyOwned
	}
	if !s.wallet.Debit(it.Cost) {
		return Item{}, ErrInsufficientFunds
	}
	s.owned[id] = true
	return it, nil
}

// Equip places an owned item into its slot, displacing whatever was
// there (the displaced item stays owned). Equipping the item already in
// its slot unequips it instead.
func (s *Store) Equip(id string) (equipped bool, err error) {
	it, ok := s.catalog[id]
	if !ok {
		return false, ErrUnknownItem
	}
	if !s.owned[id] {
		return false, ErrNotOwned
	}
	if s.equipped[it.Slot] == id {
		delete(s.equipped, it.Slot)
		return false, nil
	}
	s.equipped[it.Slot] = id
	return true, nil
}

func (s *Store) Inventory() Inventory {
	owned := make([]string, 0, len(s.owned))
	for id := range s.owned {
		owned = append(owned, id)
	}
	sort.Strings(owned)

	equipped := make(map[Slot]string, len(s.equipped))
	for slot, id := range s.equipped {
		equipped[slot] = id
	}
	return Inventory{Owned: owned, Equipped: equipped}
}

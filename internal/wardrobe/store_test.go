package wardrobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	coins int
}

func (w *fakeWallet) Balance() int { return w.coins }

func (w *fakeWallet) Debit(amount int) bool {
	if amount <= 0 {
		return true
	}
	if w.coins < amount {
		return false
	}
	w.coins -= amount
	return true
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	w := &fakeWallet{coins: 90}
	s := NewStore(DefaultCatalog(), w)

	_, err := s.Purchase("crown") // costs 100
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 90, w.coins, "failed purchase must not touch the balance")
	assert.Empty(t, s.Inventory().Owned)
}

func TestPurchase_ExactBalanceAndEquipToggle(t *testing.T) {
	w := &fakeWallet{coins: 100}
	s := NewStore(DefaultCatalog(), w)

	it, err := s.Purchase("crown")
	require.NoError(t, err)
	assert.Equal(t, SlotHat, it.Slot)
	assert.Equal(t, 0, w.coins)
	assert.Equal(t, []string{"crown"}, s.Inventory().Owned)

	equipped, err := s.Equip("crown")
	require.NoError(t, err)
	assert.True(t, equipped)
	assert.Equal(t, "crown", s.Inventory().Equipped[SlotHat])

	equipped, err = s.Equip("crown")
	require.NoError(t, err)
	assert.False(t, equipped, "second equip toggles the item off")
	assert.Empty(t, s.Inventory().Equipped)
	assert.Equal(t, []string{"crown"}, s.Inventory().Owned, "toggled-off item stays owned")
}

func TestPurchase_AlreadyOwned(t *testing.T) {
	w := &fakeWallet{coins: 500}
	s := NewStore(DefaultCatalog(), w)

	_, err := s.Purchase("glasses")
	require.NoError(t, err)

	_, err = s.Purchase("glasses")
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.Equal(t, 450, w.coins, "rejected re-purchase must not charge")
}

func TestEquip_NotOwnedAndUnknown(t *testing.T) {
	s := NewStore(DefaultCatalog(), &fakeWallet{})

	_, err := s.Equip("bowtie")
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = s.Equip("jetpack")
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = s.Purchase("jetpack")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestEquip_SlotDisplacement(t *testing.T) {
	w := &fakeWallet{coins: 300}
	s := NewStore(DefaultCatalog(), w)

	for _, id := range []string{"hat", "flower"} { // both hat slot
		_, err := s.Purchase(id)
		require.NoError(t, err)
	}

	_, err := s.Equip("hat")
	require.NoError(t, err)
	_, err = s.Equip("flower")
	require.NoError(t, err)

	inv := s.Inventory()
	assert.Equal(t, "flower", inv.Equipped[SlotHat], "new item displaces the old one")
	assert.Contains(t, inv.Owned, "hat", "displaced item stays owned")
}

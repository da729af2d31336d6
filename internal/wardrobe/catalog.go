package wardrobe

type Slot string

const (
	SlotHat        Slot = "hat"
	SlotAccessory  Slot = "accessory"
	SlotBackground Slot = "background"
)

// Item is a static wardrobe catalog entry. Items are cosmetic: owning
// or equipping one changes nothing but the pet's appearance.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slot  Slot   `json:"slot"`
	Cost  int    `json:"cost"`
	Emoji string `json:"emoji"`
}

func DefaultCatalog() []Item {
	return []Item{
		{ID: "crown", Name: "Golden Crown", Slot: SlotHat, Cost: 100, Emoji: "👑"},
		{ID: "glasses", Name: "Smart Glasses", Slot: SlotAccessory, Cost: 50, Emoji: "🤓"},
		{ID: "bowtie", Name: "Fancy Bow Tie", Slot: SlotAccessory, Cost: 75, Emoji: "🎀"},
		{ID: "hat", Name: "Top Hat", Slot: SlotHat, Cost: 80, Emoji: "🎩"},
		{ID: "flower", Name: "Flower Crown", Slot: SlotHat, Cost: 60, Emoji: "🌸"},
		{ID: "sparkles", Name: "Sparkle Effect", Slot: SlotBackground, Cost: 120, Emoji: "✨"},
		{ID: "rainbow", Name: "Rainbow Aura", Slot: SlotBackground, Cost: 150, Emoji: "🌈"},
	}
}

package pet

// Type identifies one of the built-in companion pets.
type Type string

const (
	TypeLuna  Type = "luna"
	TypeHoot  Type = "hoot"
	TypeCocoa Type = "cocoa"
	TypeSage  Type = "sage"
	TypeEmber Type = "ember"
	TypeAzure Type = "azure"
)

type TypeInfo struct {
	ID      Type   `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Emoji   string `json:"emoji"`
}

func Types() []TypeInfo {
	return []TypeInfo{
		{ID: TypeLuna, Name: "Luna", Species: "cat", Emoji: "🐱"},
		{ID: TypeHoot, Name: "Hoot", Species: "owl", Emoji: "🦉"},
		{ID: TypeCocoa, Name: "Cocoa", Species: "bunny", Emoji: "🐰"},
		{ID: TypeSage, Name: "Sage", Species: "dragon", Emoji: "🐲"},
		{ID: TypeEmber, Name: "Ember", Species: "fox", Emoji: "🦊"},
		{ID: TypeAzure, Name: "Azure", Species: "bird", Emoji: "🐦"},
	}
}

func (t Type) Valid() bool {
	for _, info := range Types() {
		if info.ID == t {
			return true
		}
	}
	return false
}

// Pet is a user's companion. Happiness sits in [0,100], decays a little
// for every day the user stays away and gets a boost from finished
// focus sessions.
type Pet struct {
	Type      Type   `json:"type"`
	Name      string `json:"name"`
	Happiness int    `json:"happiness"`
	// LastSeenDay is the "2006-01-02" day decay was last applied for.
	LastSeenDay string `json:"last_seen_day"`
}

func clampHappiness(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// internal/deck/card.go
package deck

// Kind classifies a card and therefore where it may legally be played.
type Kind string

const (
	KindProperty     Kind = "property"
	KindPropertyWild Kind = "property-wild"
	KindAction       Kind = "action"
	KindRent         Kind = "rent"
	KindMoney        Kind = "money"
)

// Color names a property set.
type Color string

const (
	Brown     Color = "brown"
	DarkBlue  Color = "darkblue"
	Green     Color = "green"
	LightBlue Color = "lightblue"
	Orange    Color = "orange"
	Purple    Color = "purple"
	Railroad  Color = "railroad"
	Red       Color = "red"
	Utility   Color = "utility"
	Yellow    Color = "yellow"
)

// ActionKind identifies which action an action card performs when played for
// its effect rather than banked for value.
type ActionKind string

const (
	ActionPassGo        ActionKind = "pass-go"
	ActionDealBreaker   ActionKind = "deal-breaker"
	ActionJustSayNo     ActionKind = "just-say-no"
	ActionSlyDeal       ActionKind = "sly-deal"
	ActionForcedDeal    ActionKind = "forced-deal"
	ActionDebtCollector ActionKind = "debt-collector"
	ActionBirthday      ActionKind = "birthday"
	ActionDoubleRent    ActionKind = "double-rent"
	ActionHouse         ActionKind = "house"
	ActionHotel         ActionKind = "hotel"
)

// Card is one immutable card instance. A game never mutates a Card; accepted
// moves only change which pile, hand, bank or property set it sits in.
//
// Color is set for plain property cards. Colors is set for wildcards and rent
// cards; an empty Colors on those kinds means "any color".
type Card struct {
	ID     string     `json:"id"`
	Kind   Kind       `json:"kind"`
	Value  int        `json:"value"`
	Color  Color      `json:"color,omitempty"`
	Colors []Color    `json:"colors,omitempty"`
	Action ActionKind `json:"action,omitempty"`
}

// IsProperty reports whether the card may be played into a property set.
func (c Card) IsProperty() bool {
	return c.Kind == KindProperty || c.Kind == KindPropertyWild
}

// UsableAs reports whether color is a legal declaration when this card is
// played as a property. Plain properties only match their printed color;
// wildcards match any of their listed colors, or every color when the list is
// empty (the multicolor wildcard).
func (c Card) UsableAs(color Color) bool {
	switch c.Kind {
	case KindProperty:
		return c.Color == color
	case KindPropertyWild:
		if len(c.Colors) == 0 {
			return true
		}
		for _, col := range c.Colors {
			if col == color {
				return true
			}
		}
	}
	return false
}

// SetSizes maps each color to the number of cards that completes its set.
// Published rule sheets differ slightly between printings; this table is the
// one fixed for this service and is what the win evaluator scores against.
var SetSizes = map[Color]int{
	Brown:     2,
	DarkBlue:  2,
	Green:     3,
	LightBlue: 3,
	Orange:    3,
	Purple:    3,
	Railroad:  4,
	Red:       3,
	Utility:   2,
	Yellow:    3,
}

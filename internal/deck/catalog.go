// internal/deck/catalog.go
package deck

// entry is one catalog row: a card definition plus how many copies the deck
// carries. Build expands each row into count Card instances.
type entry struct {
	kind   Kind
	value  int
	color  Color
	colors []Color
	action ActionKind
	count  int
}

// catalog is the full 106-card deck composition. Declaration order is the
// deterministic pre-shuffle order produced by Build.
var catalog = []entry{
	// Properties (28)
	{kind: KindProperty, value: 1, color: Brown, count: 2},
	{kind: KindProperty, value: 4, color: DarkBlue, count: 2},
	{kind: KindProperty, value: 4, color: Green, count: 3},
	{kind: KindProperty, value: 1, color: LightBlue, count: 3},
	{kind: KindProperty, value: 2, color: Orange, count: 3},
	{kind: KindProperty, value: 2, color: Purple, count: 3},
	{kind: KindProperty, value: 2, color: Railroad, count: 4},
	{kind: KindProperty, value: 3, color: Red, count: 3},
	{kind: KindProperty, value: 2, color: Utility, count: 2},
	{kind: KindProperty, value: 3, color: Yellow, count: 3},

	// Property wildcards (11); empty colors = multicolor, any set
	{kind: KindPropertyWild, value: 2, colors: []Color{Purple, Orange}, count: 2},
	{kind: KindPropertyWild, value: 1, colors: []Color{LightBlue, Brown}, count: 1},
	{kind: KindPropertyWild, value: 4, colors: []Color{LightBlue, Railroad}, count: 1},
	{kind: KindPropertyWild, value: 4, colors: []Color{DarkBlue, Green}, count: 1},
	{kind: KindPropertyWild, value: 4, colors: []Color{Railroad, Green}, count: 1},
	{kind: KindPropertyWild, value: 3, colors: []Color{Red, Yellow}, count: 2},
	{kind: KindPropertyWild, value: 2, colors: []Color{Utility, Railroad}, count: 1},
	{kind: KindPropertyWild, value: 0, count: 2},

	// Money (20)
	{kind: KindMoney, value: 1, count: 6},
	{kind: KindMoney, value: 2, count: 5},
	{kind: KindMoney, value: 3, count: 3},
	{kind: KindMoney, value: 4, count: 3},
	{kind: KindMoney, value: 5, count: 2},
	{kind: KindMoney, value: 10, count: 1},

	// Actions (34)
	{kind: KindAction, value: 5, action: ActionDealBreaker, count: 2},
	{kind: KindAction, value: 4, action: ActionJustSayNo, count: 3},
	{kind: KindAction, value: 3, action: ActionSlyDeal, count: 3},
	{kind: KindAction, value: 3, action: ActionForcedDeal, count: 3},
	{kind: KindAction, value: 3, action: ActionDebtCollector, count: 3},
	{kind: KindAction, value: 2, action: ActionBirthday, count: 3},
	{kind: KindAction, value: 1, action: ActionDoubleRent, count: 2},
	{kind: KindAction, value: 3, action: ActionHouse, count: 3},
	{kind: KindAction, value: 4, action: ActionHotel, count: 2},
	{kind: KindAction, value: 1, action: ActionPassGo, count: 10},

	// Rent (13); empty colors = wild rent, any set
	{kind: KindRent, value: 1, colors: []Color{Purple, Orange}, count: 2},
	{kind: KindRent, value: 1, colors: []Color{Railroad, Utility}, count: 2},
	{kind: KindRent, value: 1, colors: []Color{Green, DarkBlue}, count: 2},
	{kind: KindRent, value: 1, colors: []Color{Brown, LightBlue}, count: 2},
	{kind: KindRent, value: 1, colors: []Color{Red, Yellow}, count: 2},
	{kind: KindRent, value: 3, count: 3},
}

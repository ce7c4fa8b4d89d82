package rangebuilder

import (
	"fmt"
	"strings"
)

// Value is one accepted setting for a filter.
type Value struct {
	// Name is the value as it appears in requests, e.g. "Spin & Go".
	Name string

	// SiteID is the site's data-tst identifier for the control.
	SiteID string

	// Label is the visible button text when it differs from Name.
	// Empty means the button shows Name verbatim.
	Label string
}

// DisplayText returns the text shown on the site's button for this value.
func (v *Value) DisplayText() string {
	if v.Label != "" {
		return v.Label
	}
	return v.Name
}

// Filter describes one enum-valued control on the range-builder panel.
// The value set is closed: anything outside Values is a request error.
type Filter struct {
	// Name is the request field name, e.g. "cash_players".
	Name string

	// Values lists the accepted settings in a stable order. The order
	// is only used for error messages and never affects clicking.
	Values []Value
}

// Lookup resolves a request value against the filter's closed set.
func (f *Filter) Lookup(name string) (*Value, bool) {
	for i := range f.Values {
		if f.Values[i].Name == name {
			return &f.Values[i], true
		}
	}
	return nil, false
}

// AllowedValues returns the accepted value names in declaration order.
func (f *Filter) AllowedValues() []string {
	names := make([]string, len(f.Values))
	for i := range f.Values {
		names[i] = f.Values[i].Name
	}
	return names
}

// Catalog lists every filter in the fixed order they are applied in
// during a get-range call. The order matters: the panel renders rows
// top to bottom and later rows only settle after earlier ones.
var Catalog = []*Filter{
	{
		Name: "solutions",
		Values: []Value{
			{Name: "Cash", SiteID: "chrow_cash"},
			{Name: "MTT", SiteID: "chrow_mtt"},
			{Name: "Spin & Go", SiteID: "chrow_spins"},
			{Name: "Hu SnG", SiteID: "chrow_husng"},
		},
	},
	{
		Name: "cash_type",
		Values: []Value{
			{Name: "Classic", SiteID: "chrow_classic"},
			{Name: "Short", SiteID: "chrow_shortstack"},
			{Name: "Ante", SiteID: "chrow_ante"},
			{Name: "Straddle", SiteID: "chrow_straddle"},
			{Name: "Straddle+Ante", SiteID: "chrow_ante_straddle"},
			{Name: "DoubleStraddle", SiteID: "chrow_double_straddle"},
			{Name: "MississippiStraddle", SiteID: "chrow_mississippi_straddle"},
		},
	},
	{
		Name: "cash_players",
		Values: []Value{
			{Name: "Heads-up", SiteID: "chrow_hu"},
			{Name: "6max", SiteID: "chrow_6max"},
			{Name: "8max", SiteID: "chrow_8max"},
			{Name: "9max", SiteID: "chrow_9max"},
		},
	},
	{
		Name: "available_spots",
		Values: []Value{
			{Name: "postflop_included", SiteID: "chrow_all_spots", Label: "Postflop included"},
			{Name: "preflop_only", SiteID: "chrow_preflop_only", Label: "Preflop only"},
		},
	},
	{
		Name: "cash_stacks",
		Values: []Value{
			{Name: "Any", SiteID: "chrow_any"},
			{Name: "200", SiteID: "chrow_200"},
			{Name: "150", SiteID: "chrow_150"},
			{Name: "100", SiteID: "chrow_100"},
			{Name: "75", SiteID: "chrow_75"},
			{Name: "50", SiteID: "chrow_50"},
			{Name: "40", SiteID: "chrow_40"},
			{Name: "20", SiteID: "chrow_20"},
		},
	},
	{
		Name: "bet_sizes",
		Values: []Value{
			{Name: "General", SiteID: "chrow_general"},
			{Name: "Simple", SiteID: "chrow_simple"},
		},
	},
	{
		Name: "rake",
		Values: []Value{
			{Name: "NL50", SiteID: "chrow_nl50"},
			{Name: "NL500", SiteID: "chrow_nl500"},
		},
	},
	{
		Name: "cash_open_size",
		Values: []Value{
			{Name: "GTO", SiteID: "chrow_gto_open"},
			{Name: "2.5x", SiteID: "chrow_open_25x"},
			{Name: "3x", SiteID: "chrow_open_3x"},
		},
	},
	{
		Name: "cash_3bet_size",
		Values: []Value{
			{Name: "GTO", SiteID: "chrow_gto_3bet"},
			{Name: "Smaller", SiteID: "chrow_3bet_smaller"},
			{Name: "Bigger", SiteID: "chrow_3bet_bigger"},
		},
	},
	{
		Name: "hero",
		Values: []Value{
			{Name: "UTG", SiteID: "chrow_utg"},
			{Name: "HJ", SiteID: "chrow_hj"},
			{Name: "CO", SiteID: "chrow_co"},
			{Name: "BTN", SiteID: "chrow_btn"},
			{Name: "SB", SiteID: "chrow_sb"},
			{Name: "BB", SiteID: "chrow_bb"},
		},
	},
}

// FilterByName returns the catalog entry with the given request name.
func FilterByName(name string) (*Filter, bool) {
	for _, f := range Catalog {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

var tokenReplacer = strings.NewReplacer(
	" ", "_",
	"&", "and",
	"+", "plus",
	"-", "_",
)

// ActionToken returns the normalized token recorded for one applied
// value, e.g. "Spin & Go" -> "clicked_spin_and_go". Tokens for values
// of the same filter never collide.
func ActionToken(value string) string {
	return "clicked_" + tokenReplacer.Replace(strings.ToLower(value))
}

// invalidValueError builds the request error for an out-of-enum value,
// naming the allowed set.
func invalidValueError(f *Filter, value string) error {
	return fmt.Errorf("invalid %s value: %s. Must be one of: %s",
		f.Name, value, strings.Join(f.AllowedValues(), ", "))
}

package rangebuilder

import "strings"

// Request carries the optional filter values of one get-range call.
// Every field is restricted to its filter's closed value set; blank and
// absent fields are skipped.
type Request struct {
	Solutions      string `json:"solutions,omitempty"`
	CashType       string `json:"cash_type,omitempty"`
	CashPlayers    string `json:"cash_players,omitempty"`
	AvailableSpots string `json:"available_spots,omitempty"`
	CashStacks     string `json:"cash_stacks,omitempty"`
	BetSizes       string `json:"bet_sizes,omitempty"`
	Rake           string `json:"rake,omitempty"`
	CashOpenSize   string `json:"cash_open_size,omitempty"`
	Cash3BetSize   string `json:"cash_3bet_size,omitempty"`
	Hero           string `json:"hero,omitempty"`
}

// Selection pairs a catalog filter with the value a request supplied
// for it.
type Selection struct {
	Filter *Filter
	Value  string
}

// Supplied returns the non-blank (filter, value) pairs of the request
// in the catalog's fixed application order.
func (r *Request) Supplied() []Selection {
	fields := []struct {
		name  string
		value string
	}{
		{"solutions", r.Solutions},
		{"cash_type", r.CashType},
		{"cash_players", r.CashPlayers},
		{"available_spots", r.AvailableSpots},
		{"cash_stacks", r.CashStacks},
		{"bet_sizes", r.BetSizes},
		{"rake", r.Rake},
		{"cash_open_size", r.CashOpenSize},
		{"cash_3bet_size", r.Cash3BetSize},
		{"hero", r.Hero},
	}

	var out []Selection
	for _, field := range fields {
		value := strings.TrimSpace(field.value)
		if value == "" {
			continue
		}
		filter, ok := FilterByName(field.name)
		if !ok {
			continue
		}
		out = append(out, Selection{Filter: filter, Value: value})
	}
	return out
}

// Validate checks every supplied value against its filter's closed set.
// The first unknown value yields an error naming the allowed values.
func (r *Request) Validate() error {
	for _, sel := range r.Supplied() {
		if _, ok := sel.Filter.Lookup(sel.Value); !ok {
			return invalidValueError(sel.Filter, sel.Value)
		}
	}
	return nil
}

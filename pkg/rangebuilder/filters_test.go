package rangebuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	var names []string
	for _, f := range Catalog {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"solutions",
		"cash_type",
		"cash_players",
		"available_spots",
		"cash_stacks",
		"bet_sizes",
		"rake",
		"cash_open_size",
		"cash_3bet_size",
		"hero",
	}, names)
}

func TestCatalogLookupTotal(t *testing.T) {
	for _, f := range Catalog {
		t.Run(f.Name, func(t *testing.T) {
			require.NotEmpty(t, f.Values)
			for _, v := range f.Values {
				got, ok := f.Lookup(v.Name)
				require.True(t, ok, "value %q must resolve", v.Name)
				assert.NotEmpty(t, got.SiteID)
				assert.NotEmpty(t, got.DisplayText())
			}

			byName, ok := FilterByName(f.Name)
			require.True(t, ok)
			assert.Same(t, f, byName)
		})
	}
}

func TestFilterByName_Unknown(t *testing.T) {
	_, ok := FilterByName("stake_level")
	assert.False(t, ok)
}

func TestActionToken(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Cash", "clicked_cash"},
		{"MTT", "clicked_mtt"},
		{"Spin & Go", "clicked_spin_and_go"},
		{"Hu SnG", "clicked_hu_sng"},
		{"Straddle+Ante", "clicked_straddleplusante"},
		{"Heads-up", "clicked_heads_up"},
		{"postflop_included", "clicked_postflop_included"},
		{"6max", "clicked_6max"},
		{"200", "clicked_200"},
		{"2.5x", "clicked_2.5x"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionToken(tt.value))
		})
	}
}

func TestActionToken_CollisionFreePerFilter(t *testing.T) {
	for _, f := range Catalog {
		seen := make(map[string]string)
		for _, v := range f.Values {
			token := ActionToken(v.Name)
			if prev, ok := seen[token]; ok {
				t.Errorf("filter %s: values %q and %q normalize to the same token %q",
					f.Name, prev, v.Name, token)
			}
			seen[token] = v.Name
		}
	}
}

func TestRequestSupplied_Order(t *testing.T) {
	req := &Request{
		Hero:        "BTN",
		Solutions:   "Cash",
		CashPlayers: "6max",
	}

	supplied := req.Supplied()
	require.Len(t, supplied, 3)
	assert.Equal(t, "solutions", supplied[0].Filter.Name)
	assert.Equal(t, "cash_players", supplied[1].Filter.Name)
	assert.Equal(t, "hero", supplied[2].Filter.Name)
}

func TestRequestSupplied_SkipsBlank(t *testing.T) {
	req := &Request{
		Solutions: "   ",
		CashType:  "",
		Rake:      "NL50",
	}

	supplied := req.Supplied()
	require.Len(t, supplied, 1)
	assert.Equal(t, "rake", supplied[0].Filter.Name)
	assert.Equal(t, "NL50", supplied[0].Value)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantErr   bool
		errSubstr []string
	}{
		{
			name: "all valid",
			req:  Request{Solutions: "Cash", CashType: "Classic", CashPlayers: "6max"},
		},
		{
			name: "empty request valid",
			req:  Request{},
		},
		{
			name:      "unknown cash_type",
			req:       Request{CashType: "Nonexistent"},
			wantErr:   true,
			errSubstr: []string{"cash_type", "Nonexistent", "Classic", "MississippiStraddle"},
		},
		{
			name:      "unknown solutions",
			req:       Request{Solutions: "PLO"},
			wantErr:   true,
			errSubstr: []string{"solutions", "Cash", "Spin & Go"},
		},
		{
			name:      "unknown hero",
			req:       Request{Hero: "MP"},
			wantErr:   true,
			errSubstr: []string{"hero", "UTG", "BB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, substr := range tt.errSubstr {
				assert.Contains(t, err.Error(), substr)
			}
		})
	}
}

func TestValidateErrorIsDeterministic(t *testing.T) {
	req := Request{CashStacks: "300"}
	first := req.Validate()
	require.Error(t, first)
	for i := 0; i < 5; i++ {
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
	assert.True(t, strings.Contains(first.Error(), "Any, 200, 150, 100, 75, 50, 40, 20"))
}

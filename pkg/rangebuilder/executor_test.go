package rangebuilder

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage scripts which selectors succeed and records every call.
type fakePage struct {
	clicks   []string
	waits    []string
	pauses   []float64
	clickOK  func(selector string) bool
	waitFail bool
}

func (p *fakePage) ClickVisible(selector string, timeoutMs float64) error {
	p.clicks = append(p.clicks, selector)
	if p.clickOK != nil && p.clickOK(selector) {
		return nil
	}
	return errors.New("element not visible")
}

func (p *fakePage) WaitVisible(selector string, timeoutMs float64) error {
	p.waits = append(p.waits, selector)
	if p.waitFail {
		return errors.New("element not visible")
	}
	return nil
}

func (p *fakePage) Pause(ms float64) {
	p.pauses = append(p.pauses, ms)
}

func matchAll(string) bool { return true }

func matchContains(substrs ...string) func(string) bool {
	return func(selector string) bool {
		for _, s := range substrs {
			if strings.Contains(selector, s) {
				return true
			}
		}
		return false
	}
}

func newTestExecutor() *Executor {
	return NewExecutor(nil, ExecutorOptions{})
}

func TestApply_EmptyRequestClicksPanelOnly(t *testing.T) {
	page := &fakePage{clickOK: matchAll}

	result, err := newTestExecutor().Apply(page, &Request{})
	require.NoError(t, err)

	require.Len(t, page.clicks, 1)
	assert.Equal(t, "div.gmfover.text-noselect.gw_loading_text", page.clicks[0])
	assert.Equal(t, "clicked_range_selector", result.ActionPerformed)
	assert.Equal(t, "Successfully clicked on range selector div", result.Message)
	assert.Empty(t, result.Failures)
}

func TestApply_PanelFallbackOrder(t *testing.T) {
	// Only the second panel strategy matches; the first must still be
	// tried first, and the remaining two never tried.
	page := &fakePage{clickOK: func(sel string) bool {
		return sel == "div.gmfover"
	}}

	_, err := newTestExecutor().Apply(page, &Request{})
	require.NoError(t, err)

	require.Len(t, page.clicks, 2)
	assert.Equal(t, "div.gmfover.text-noselect.gw_loading_text", page.clicks[0])
	assert.Equal(t, "div.gmfover", page.clicks[1])
}

func TestApply_PanelOpenFailureIsNonFatal(t *testing.T) {
	page := &fakePage{clickOK: matchContains("data-tst")}

	result, err := newTestExecutor().Apply(page, &Request{Solutions: "Cash"})
	require.NoError(t, err)

	// All four panel strategies tried and failed, then the filter
	// still ran and succeeded.
	assert.Len(t, page.clicks, 5)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "clicked_cash", result.ActionPerformed)
	assert.Contains(t, result.Message, "Range selector div could not be clicked")
	assert.Contains(t, result.Message, "Cash solutions button")
}

func TestApply_FirstSuccessWins(t *testing.T) {
	page := &fakePage{clickOK: matchAll}

	_, err := newTestExecutor().Apply(page, &Request{Solutions: "Cash"})
	require.NoError(t, err)

	// One panel click plus exactly one strategy click for the filter:
	// the attribute strategy wins and the fallbacks are skipped.
	require.Len(t, page.clicks, 2)
	assert.Equal(t, "div[data-tst='chrow_cash']", page.clicks[1])
}

func TestApply_StrategyFallbackOrderForFilter(t *testing.T) {
	// Attribute strategies fail, the plain text strategy succeeds.
	page := &fakePage{clickOK: func(sel string) bool {
		return sel == "div:has-text('6max')" || strings.HasPrefix(sel, "div.gmfover")
	}}

	result, err := newTestExecutor().Apply(page, &Request{CashPlayers: "6max"})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)

	filterClicks := page.clicks[1:]
	require.Len(t, filterClicks, 3)
	assert.Equal(t, "div[data-tst='chrow_6max']", filterClicks[0])
	assert.Equal(t, "div[data-tst='chrow_6max'] span", filterClicks[1])
	assert.Equal(t, "div:has-text('6max')", filterClicks[2])
}

func TestApply_DisplayTextUsedForTextStrategies(t *testing.T) {
	page := &fakePage{clickOK: matchContains("gmfover")}

	result, err := newTestExecutor().Apply(page, &Request{AvailableSpots: "postflop_included"})
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)

	joined := strings.Join(page.clicks, "\n")
	assert.Contains(t, joined, "div:has-text('Postflop included')")
	assert.Contains(t, joined, "text=Postflop included")
	assert.NotContains(t, joined, "has-text('postflop_included')")
}

func TestApply_ConfirmationFailureDoesNotFail(t *testing.T) {
	page := &fakePage{clickOK: matchAll, waitFail: true}

	result, err := newTestExecutor().Apply(page, &Request{Solutions: "MTT"})
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Equal(t, "clicked_mtt", result.ActionPerformed)

	// The active-state check ran after a settle pause even though it
	// failed.
	require.Len(t, page.waits, 1)
	assert.Equal(t, "div[data-tst='chrow_mtt'].gw_btn_active", page.waits[0])
	require.Len(t, page.pauses, 1)
	assert.Equal(t, DefaultSettleDelay, page.pauses[0])
}

func TestApply_FilterFailuresAreIndependent(t *testing.T) {
	// solutions never matches, cash_players does; the sequence must
	// record the failure and still apply cash_players.
	page := &fakePage{clickOK: matchContains("gmfover", "chrow_6max")}

	result, err := newTestExecutor().Apply(page, &Request{
		Solutions:   "Cash",
		CashPlayers: "6max",
	})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "solutions", result.Failures[0].Filter)
	assert.Equal(t, "Cash", result.Failures[0].Value)
	assert.Contains(t, result.Failures[0].Error(), "could not click solutions button for Cash")

	assert.Equal(t, "clicked_6max", result.ActionPerformed)
	assert.Contains(t, result.Message, "6max cash_players button")
	assert.NotContains(t, result.Message, "Cash solutions button")
}

func TestApply_InvalidValueAbortsBeforeClicks(t *testing.T) {
	page := &fakePage{clickOK: matchAll}

	result, err := newTestExecutor().Apply(page, &Request{
		Solutions: "Cash",
		CashType:  "Nonexistent",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "cash_type")
	assert.Contains(t, err.Error(), "Classic")

	// Nothing was clicked, not even the panel.
	assert.Empty(t, page.clicks)
}

func TestApply_ComposesTokensAndMessage(t *testing.T) {
	page := &fakePage{clickOK: matchAll}

	result, err := newTestExecutor().Apply(page, &Request{
		Solutions:   "Cash",
		CashPlayers: "6max",
	})
	require.NoError(t, err)

	assert.Equal(t, "clicked_cash_and_clicked_6max", result.ActionPerformed)
	assert.Contains(t, result.Message, "Successfully clicked on range selector div")
	assert.Contains(t, result.Message, "Cash solutions button")
	assert.Contains(t, result.Message, "6max cash_players button")
}

func TestApply_AppliesFiltersInCatalogOrder(t *testing.T) {
	page := &fakePage{clickOK: matchAll}

	_, err := newTestExecutor().Apply(page, &Request{
		Hero:      "BTN",
		Solutions: "Cash",
		Rake:      "NL50",
	})
	require.NoError(t, err)

	require.Len(t, page.clicks, 4)
	assert.Equal(t, "div[data-tst='chrow_cash']", page.clicks[1])
	assert.Equal(t, "div[data-tst='chrow_nl50']", page.clicks[2])
	assert.Equal(t, "div[data-tst='chrow_btn']", page.clicks[3])
}

func TestNewExecutor_DefaultTimings(t *testing.T) {
	e := NewExecutor(nil, ExecutorOptions{})
	assert.Equal(t, DefaultStrategyTimeout, e.opts.StrategyTimeout)
	assert.Equal(t, DefaultSettleDelay, e.opts.SettleDelay)
	assert.Equal(t, DefaultConfirmTimeout, e.opts.ConfirmTimeout)

	e = NewExecutor(nil, ExecutorOptions{StrategyTimeout: 100})
	assert.Equal(t, 100.0, e.opts.StrategyTimeout)
	assert.Equal(t, DefaultSettleDelay, e.opts.SettleDelay)
}

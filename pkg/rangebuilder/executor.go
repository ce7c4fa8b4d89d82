package rangebuilder

import (
	"fmt"
	"strings"

	"github.com/entrhq/rangewizard/pkg/logging"
)

// PageActor is the minimal page surface the executor needs. It is
// implemented by browser.Session; tests supply scripted fakes.
type PageActor interface {
	// ClickVisible waits for the selector to become visible within the
	// timeout and clicks the matching element.
	ClickVisible(selector string, timeoutMs float64) error

	// WaitVisible waits for the selector to become visible within the
	// timeout without interacting with it.
	WaitVisible(selector string, timeoutMs float64) error

	// Pause blocks the page for the given number of milliseconds.
	Pause(ms float64)
}

// ExecutorOptions tunes the executor's wait behavior. Zero values fall
// back to the defaults.
type ExecutorOptions struct {
	// StrategyTimeout is the per-strategy visibility timeout (ms).
	StrategyTimeout float64

	// SettleDelay is the pause between a click and its confirmation
	// check (ms).
	SettleDelay float64

	// ConfirmTimeout bounds the wait for the active-state styling
	// after a click (ms).
	ConfirmTimeout float64
}

// Default executor timings, in milliseconds.
const (
	DefaultStrategyTimeout = 5000.0
	DefaultSettleDelay     = 1000.0
	DefaultConfirmTimeout  = 3000.0
)

// FilterFailure records one filter that could not be applied. The rest
// of the sequence still ran.
type FilterFailure struct {
	Filter string
	Value  string
	Err    error
}

// Error formats the failure naming the filter and value.
func (f *FilterFailure) Error() string {
	return fmt.Sprintf("could not click %s button for %s: %v", f.Filter, f.Value, f.Err)
}

// Unwrap exposes the underlying locate/click error.
func (f *FilterFailure) Unwrap() error {
	return f.Err
}

// Result aggregates the outcome of one filter sequence.
type Result struct {
	// Message is the human-readable summary of what was clicked.
	Message string

	// ActionPerformed is the composite action tag, one normalized
	// token per applied filter joined with "_and_".
	ActionPerformed string

	// Failures lists the filters that could not be applied. Filters
	// clicked before a failure stay clicked on the live page.
	Failures []FilterFailure
}

// Executor applies filter selections to a live range-builder page using
// ordered-fallback selector strategies.
type Executor struct {
	log  *logging.Logger
	opts ExecutorOptions
}

// NewExecutor creates an executor. A nil logger falls back to a discard
// logger.
func NewExecutor(log *logging.Logger, opts ExecutorOptions) *Executor {
	if log == nil {
		log = logging.NewDiscardLogger("rangebuilder")
	}
	if opts.StrategyTimeout <= 0 {
		opts.StrategyTimeout = DefaultStrategyTimeout
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = DefaultConfirmTimeout
	}
	return &Executor{log: log, opts: opts}
}

// panelStrategies locate the range-selector overlay that opens the
// filter panel, most specific first.
var panelStrategies = []string{
	"div.gmfover.text-noselect.gw_loading_text",
	"div.gmfover",
	"div[class*='gmfover']",
	"div[class*='gw_loading_text']",
}

// buttonStrategies returns the ordered candidate selectors for one
// filter value, most specific first.
func buttonStrategies(v *Value) []string {
	text := v.DisplayText()
	return []string{
		fmt.Sprintf("div[data-tst='%s']", v.SiteID),
		fmt.Sprintf("div[data-tst='%s'] span", v.SiteID),
		fmt.Sprintf("div:has-text('%s')", text),
		fmt.Sprintf("text=%s", text),
		fmt.Sprintf("div.gw_btn.gw_btn_text.gw_loading_text.cherow_row_checkbox.cherow_row_checkbox_item:has-text('%s')", text),
	}
}

// activeSelector matches a filter button once the site marks it
// selected.
func activeSelector(v *Value) string {
	return fmt.Sprintf("div[data-tst='%s'].gw_btn_active", v.SiteID)
}

// Apply validates the request, opens the range-selector panel and
// applies every supplied filter in the catalog order.
//
// Validation failures abort before anything is clicked. A panel-open
// failure is logged and the sequence continues. Filter failures are
// collected in the result; each remaining filter is still attempted.
func (e *Executor) Apply(page PageActor, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	messages := make([]string, 0, 8)
	tokens := make([]string, 0, 8)
	var failures []FilterFailure

	if err := e.openPanel(page); err != nil {
		e.log.Warnf("range selector div could not be clicked, continuing: %v", err)
		messages = append(messages, "Range selector div could not be clicked")
	} else {
		messages = append(messages, "Successfully clicked on range selector div")
	}

	for _, sel := range req.Supplied() {
		if err := e.applyFilter(page, sel); err != nil {
			e.log.Errorf("filter %s=%s failed: %v", sel.Filter.Name, sel.Value, err)
			failures = append(failures, FilterFailure{Filter: sel.Filter.Name, Value: sel.Value, Err: err})
			continue
		}
		tokens = append(tokens, ActionToken(sel.Value))
		messages = append(messages, fmt.Sprintf("%s %s button", sel.Value, sel.Filter.Name))
	}

	action := "clicked_range_selector"
	if len(tokens) > 0 {
		action = strings.Join(tokens, "_and_")
	}

	return &Result{
		Message:         strings.Join(messages, " and "),
		ActionPerformed: action,
		Failures:        failures,
	}, nil
}

// openPanel clicks the range-selector overlay using its own fallback
// list.
func (e *Executor) openPanel(page PageActor) error {
	for _, selector := range panelStrategies {
		e.log.Debugf("trying range selector: %s", selector)
		if err := page.ClickVisible(selector, e.opts.StrategyTimeout); err != nil {
			e.log.Debugf("range selector %s failed: %v", selector, err)
			continue
		}
		e.log.Infof("clicked range selector via %s", selector)
		return nil
	}
	return fmt.Errorf("no strategy located a visible range selector div")
}

// applyFilter clicks one filter button, trying each strategy in order.
// The first strategy that locates a visible element wins.
func (e *Executor) applyFilter(page PageActor, sel Selection) error {
	value, ok := sel.Filter.Lookup(sel.Value)
	if !ok {
		return invalidValueError(sel.Filter, sel.Value)
	}

	for _, selector := range buttonStrategies(value) {
		e.log.Debugf("trying %s selector: %s", sel.Filter.Name, selector)
		if err := page.ClickVisible(selector, e.opts.StrategyTimeout); err != nil {
			e.log.Debugf("%s selector %s failed: %v", sel.Filter.Name, selector, err)
			continue
		}
		e.log.Infof("clicked %s button for %s via %s", sel.Filter.Name, sel.Value, selector)
		e.confirmActive(page, sel, value)
		return nil
	}
	return fmt.Errorf("no selector strategy matched a visible element")
}

// confirmActive checks for the button's selected styling after a click.
// A missed confirmation is logged only; the click is trusted.
func (e *Executor) confirmActive(page PageActor, sel Selection, value *Value) {
	page.Pause(e.opts.SettleDelay)
	if err := page.WaitVisible(activeSelector(value), e.opts.ConfirmTimeout); err != nil {
		e.log.Warnf("could not verify %s button for %s is active, but click was successful: %v",
			sel.Filter.Name, sel.Value, err)
		return
	}
	e.log.Debugf("verified %s button for %s is active", sel.Filter.Name, sel.Value)
}

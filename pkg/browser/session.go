package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Session implements rangebuilder.PageActor over the session's page.

// ClickVisible waits for the selector to become visible within the
// timeout and clicks the matching element.
func (s *Session) ClickVisible(selector string, timeoutMs float64) error {
	element, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return fmt.Errorf("selector %s not visible: %w", selector, err)
	}
	if element == nil {
		return fmt.Errorf("selector %s matched no element", selector)
	}
	if err := element.Click(); err != nil {
		return fmt.Errorf("click on %s failed: %w", selector, err)
	}
	return nil
}

// WaitVisible waits for the selector to become visible within the
// timeout without interacting with it.
func (s *Session) WaitVisible(selector string, timeoutMs float64) error {
	_, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return fmt.Errorf("selector %s not visible: %w", selector, err)
	}
	return nil
}

// Pause blocks the page for the given number of milliseconds.
func (s *Session) Pause(ms float64) {
	s.Page.WaitForTimeout(ms)
}

package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// RangeBuilderURL is the deep link every session opens on creation. It
// encodes a specific practice scenario and is deliberately not
// parameterized.
const RangeBuilderURL = "https://app.gtowizard.com/practice/range-builder?custree_id=929b2d3e-9830-448c-a6a4-e9218cba6504&cussol_id=cf42a022-e53a-438f-9997-02e36495104d&solution_type=gwiz&gmfs_solution_tab=ai_sols&gametype=MTTGeneral&depth=12.125&gmff_depth=100&gmfft_sort_key=0&gmfft_sort_order=desc&board=Js8d2d&history_spot=0"

// SessionStatus tracks the lifecycle of a browser session.
type SessionStatus string

const (
	// StatusLaunching means the background browser acquisition is
	// still in flight.
	StatusLaunching SessionStatus = "launching"

	// StatusActive means the session owns live browser handles and the
	// page has opened the target URL.
	StatusActive SessionStatus = "active"

	// StatusError means the background launch failed; the error is
	// retained on the session.
	StatusError SessionStatus = "error"
)

// Session represents one exclusively-owned browser with a single page.
// Handles are non-nil iff Status is StatusActive. Status and handle
// fields are written only under the owning manager's lock.
type Session struct {
	// ID is the generated session identifier.
	ID string

	// Status is the current lifecycle state.
	Status SessionStatus

	// URL is the target URL the session opens.
	URL string

	// CreatedAt is when the session was registered.
	CreatedAt time.Time

	// Err retains the launch error message when Status is StatusError.
	Err string

	// Browser is the Playwright browser instance.
	Browser playwright.Browser

	// Context is the isolated browsing context.
	Context playwright.BrowserContext

	// Page is the single page of the session.
	Page playwright.Page
}

// SessionInfo is a caller-visible snapshot of a session.
type SessionInfo struct {
	ID        string        `json:"session_id"`
	Status    SessionStatus `json:"status"`
	URL       string        `json:"url"`
	CreatedAt time.Time     `json:"created_at"`
	Error     string        `json:"error,omitempty"`
}

func (s *Session) snapshot() SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		Status:    s.Status,
		URL:       s.URL,
		CreatedAt: s.CreatedAt,
		Error:     s.Err,
	}
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Options configures the sessions a manager launches. Zero values fall
// back to the defaults.
type Options struct {
	// Engine selects the browser binary: "firefox" (default) or
	// "chromium".
	Engine string

	// Headless controls whether browsers run without a visible window.
	Headless bool

	// Viewport sets the context viewport size.
	Viewport Viewport

	// UserAgent overrides the context user agent string.
	UserAgent string

	// TargetURL overrides the page opened on launch. Defaults to
	// RangeBuilderURL; only integration tests should change it.
	TargetURL string
}

// Defaults for session options.
const (
	DefaultEngine         = "firefox"
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func (o Options) withDefaults() Options {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Viewport.Width <= 0 {
		o.Viewport.Width = DefaultViewportWidth
	}
	if o.Viewport.Height <= 0 {
		o.Viewport.Height = DefaultViewportHeight
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.TargetURL == "" {
		o.TargetURL = RangeBuilderURL
	}
	return o
}

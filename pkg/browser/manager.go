package browser

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/rangewizard/pkg/logging"
)

// ErrNotFound is returned for operations against unknown session ids.
var ErrNotFound = errors.New("session not found")

// SessionManager is the process-wide registry of browser sessions.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	playwright  *playwright.Playwright
	opts        Options
	log         *logging.Logger
	initialized bool
}

// NewSessionManager creates a registry that launches sessions with the
// given options. A nil logger falls back to a discard logger.
func NewSessionManager(opts Options, log *logging.Logger) *SessionManager {
	if log == nil {
		log = logging.NewDiscardLogger("browser")
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
		log:      log,
	}
}

// Initialize installs and starts the Playwright driver. It must be
// called before sessions can reach the active state; driver output is
// discarded so it cannot interleave with the server's own logs.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// CreateSession registers a new launching session and starts browser
// acquisition in the background. It returns immediately; callers poll
// GetSessionInfo until the session leaves the launching state.
func (m *SessionManager) CreateSession() SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		ID:        uuid.New().String(),
		Status:    StatusLaunching,
		URL:       m.opts.TargetURL,
		CreatedAt: time.Now(),
	}
	m.sessions[session.ID] = session

	go m.launch(session.ID)

	m.log.Infof("created browser session %s", session.ID)
	return session.snapshot()
}

// launch acquires a browser, context and page, opens the target URL and
// flips the session to active. Any failure flips it to error with the
// message retained. Runs detached from the create request.
func (m *SessionManager) launch(id string) {
	browser, browserCtx, page, err := m.acquire()
	if err != nil {
		m.markError(id, err)
		return
	}

	m.log.Infof("navigating session %s to range builder", id)
	if _, err := page.Goto(m.opts.TargetURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		releaseHandles(page, browserCtx, browser, m.log)
		m.markError(id, fmt.Errorf("navigation failed: %w", err))
		return
	}

	if !m.markActive(id, browser, browserCtx, page) {
		// Session was closed while launching; nothing owns the
		// handles anymore.
		releaseHandles(page, browserCtx, browser, m.log)
	}
}

// acquire launches one browser with an isolated context and page.
func (m *SessionManager) acquire() (playwright.Browser, playwright.BrowserContext, playwright.Page, error) {
	m.mu.RLock()
	pw, initialized := m.playwright, m.initialized
	m.mu.RUnlock()

	if !initialized {
		return nil, nil, nil, fmt.Errorf("session manager not initialized")
	}

	var browserType playwright.BrowserType
	switch m.opts.Engine {
	case "chromium":
		browserType = pw.Chromium
	default:
		browserType = pw.Firefox
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.opts.Headless),
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.opts.Viewport.Width,
			Height: m.opts.Viewport.Height,
		},
		UserAgent: playwright.String(m.opts.UserAgent),
	})
	if err != nil {
		_ = browser.Close()
		return nil, nil, nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		return nil, nil, nil, fmt.Errorf("failed to create page: %w", err)
	}

	return browser, browserCtx, page, nil
}

func (m *SessionManager) markActive(id string, browser playwright.Browser, browserCtx playwright.BrowserContext, page playwright.Page) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return false
	}

	session.Status = StatusActive
	session.Browser = browser
	session.Context = browserCtx
	session.Page = page
	m.log.Infof("browser session %s is now active", id)
	return true
}

func (m *SessionManager) markError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return
	}

	session.Status = StatusError
	session.Err = err.Error()
	m.log.Errorf("browser session %s failed to launch: %v", id, err)
}

// GetSession retrieves a live session by id. The returned session's
// handles must not be driven by two requests at once.
func (m *SessionManager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

// GetSessionInfo returns a status snapshot for one session.
func (m *SessionManager) GetSessionInfo(id string) (SessionInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return SessionInfo{}, false
	}
	return session.snapshot(), true
}

// ListSessions returns snapshots of all current sessions, oldest first.
func (m *SessionManager) ListSessions() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, session := range m.sessions {
		infos = append(infos, session.snapshot())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// CloseSession releases the session's handles in page, context, browser
// order — tolerating each release independently failing — and removes
// the registry entry. Unknown ids yield ErrNotFound; closing a
// launching session removes the entry and lets the in-flight launch
// discard its handles.
func (m *SessionManager) CloseSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	releaseHandles(session.Page, session.Context, session.Browser, m.log)
	delete(m.sessions, id)

	m.log.Infof("closed browser session %s", id)
	return nil
}

// Shutdown closes all sessions and stops the Playwright driver.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		releaseHandles(session.Page, session.Context, session.Browser, m.log)
		delete(m.sessions, id)
	}

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}
	return nil
}

// releaseHandles closes whatever handles exist in reverse-acquisition
// order. Each release failure is logged and the rest still run.
func releaseHandles(page playwright.Page, browserCtx playwright.BrowserContext, browser playwright.Browser, log *logging.Logger) {
	if page != nil {
		if err := page.Close(); err != nil {
			log.Warnf("failed to close page: %v", err)
		}
	}
	if browserCtx != nil {
		if err := browserCtx.Close(); err != nil {
			log.Warnf("failed to close context: %v", err)
		}
	}
	if browser != nil {
		if err := browser.Close(); err != nil {
			log.Warnf("failed to close browser: %v", err)
		}
	}
}

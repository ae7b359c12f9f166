package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cori-saude/cori-web/internal/api"
)

// Fetcher loads raw agenda events for a date window. The api package's
// client satisfies it; tests inject fakes.
type Fetcher interface {
	AgendaEvents(ctx context.Context, w Window) ([]api.AgendaEvent, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, w Window) ([]api.AgendaEvent, error)

func (f FetcherFunc) AgendaEvents(ctx context.Context, w Window) ([]api.AgendaEvent, error) {
	return f(ctx, w)
}

// Controller owns the selected mode and anchor date for one agenda screen,
// re-fetches on change, and resolves user taps into intents. State is
// ephemeral: a controller lives for one screen session and is discarded on
// navigation away.
//
// Every reload tags its fetch with a token and discards the response if a
// newer reload started meanwhile, so a slow early fetch can never overwrite
// fresher data.
type Controller struct {
	fetch  Fetcher
	now    func() time.Time
	grid   GridConfig
	week   WeekPolicy
	onDrop func(Drop)

	mu          sync.Mutex
	mode        Mode
	anchor      time.Time
	window      Window
	events      []Event
	monthEvents []Event
	loading     bool
	refreshing  bool
	fetchToken  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock injects the time source used for the initial anchor date.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithGrid overrides the hour-grid geometry.
func WithGrid(grid GridConfig) Option {
	return func(c *Controller) { c.grid = grid }
}

// WithWeekPolicy overrides what the week grid shows.
func WithWeekPolicy(p WeekPolicy) Option {
	return func(c *Controller) { c.week = p }
}

// WithDropObserver registers a callback invoked once per record rejected
// during normalization. Dropped records are otherwise silent.
func WithDropObserver(fn func(Drop)) Option {
	return func(c *Controller) { c.onDrop = fn }
}

// NewController builds a controller in day mode anchored on today.
func NewController(fetch Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetch: fetch,
		now:   time.Now,
		grid:  DefaultGrid(),
		mode:  ModeDay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.anchor = DateOf(c.now())
	c.window = Resolve(c.mode, c.anchor)
	return c
}

// Load performs the initial fetch for the current mode and anchor.
func (c *Controller) Load(ctx context.Context) error {
	return c.reload(ctx, false)
}

// Refresh re-fetches the current window. It keeps the loading flag clear so
// a manual refresh never shows the full-screen spinner.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.reload(ctx, true)
}

// SetMode switches the view mode and re-fetches. Mode changes only ever come
// from explicit user action.
func (c *Controller) SetMode(ctx context.Context, mode Mode) error {
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
	return c.reload(ctx, false)
}

// SetAnchor moves the anchor date and re-fetches.
func (c *Controller) SetAnchor(ctx context.Context, anchor time.Time) error {
	c.mu.Lock()
	c.anchor = DateOf(anchor)
	c.mu.Unlock()
	return c.reload(ctx, false)
}

// SelectDay drills from month view into day view for the tapped day. This is
// the only implicit mode transition: exactly one level deeper.
func (c *Controller) SelectDay(ctx context.Context, day time.Time) error {
	c.mu.Lock()
	c.anchor = DateOf(day)
	c.mode = ModeDay
	c.mu.Unlock()
	return c.reload(ctx, false)
}

// reload issues one fetch for the primary window and, outside month mode, a
// second fetch for the enclosing month so the month view's dot indicators
// are warm when the user switches to it. The double fetch trades latency now
// for latency later; it is a policy, not an accident.
//
// On fetch failure the previously displayed events stay in place. There is
// no automatic retry; the user refreshes or changes the date.
func (c *Controller) reload(ctx context.Context, refresh bool) error {
	c.mu.Lock()
	mode, anchor := c.mode, c.anchor
	window := Resolve(mode, anchor)
	c.window = window
	token := uuid.NewString()
	c.fetchToken = token
	if refresh {
		c.refreshing = true
	} else {
		c.loading = true
	}
	c.mu.Unlock()

	raw, err := c.fetch.AgendaEvents(ctx, window)

	var monthRaw []api.AgendaEvent
	if err == nil {
		if mode == ModeMonth {
			monthRaw = raw
		} else {
			monthRaw, err = c.fetch.AgendaEvents(ctx, MonthWindow(anchor))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if refresh {
		c.refreshing = false
	} else {
		c.loading = false
	}
	if c.fetchToken != token {
		// A newer reload superseded this one; discard the response.
		return nil
	}
	if err != nil {
		return err
	}

	events, drops := Normalize(raw)
	monthEvents, monthDrops := Normalize(monthRaw)
	if c.onDrop != nil {
		for _, d := range drops {
			c.onDrop(d)
		}
		if mode != ModeMonth {
			for _, d := range monthDrops {
				c.onDrop(d)
			}
		}
	}
	c.events = events
	c.monthEvents = monthEvents
	return nil
}

// View is an immutable snapshot of the controller's screen state.
type View struct {
	Mode        Mode
	Anchor      time.Time
	Window      Window
	Loading     bool
	Refreshing  bool
	Events      []Event
	MonthEvents []Event
}

// View snapshots the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Mode:        c.mode,
		Anchor:      c.anchor,
		Window:      c.window,
		Loading:     c.loading,
		Refreshing:  c.refreshing,
		Events:      c.events,
		MonthEvents: c.monthEvents,
	}
}

// DayBlocks lays out the anchor day's events.
func (c *Controller) DayBlocks() []Block {
	v := c.View()
	return LayoutDay(v.Events, v.Anchor, c.grid)
}

// WeekColumns lays out the seven columns of the anchor's week.
func (c *Controller) WeekColumns() []DayColumn {
	v := c.View()
	return LayoutWeek(v.Events, WeekStart(v.Anchor), c.grid, c.week)
}

// MonthRows builds the month grid with dot indicators.
func (c *Controller) MonthRows() [][]MonthCell {
	v := c.View()
	return MonthGrid(v.Anchor, Indicators(v.MonthEvents))
}

// Grid exposes the configured grid geometry for rendering.
func (c *Controller) Grid() GridConfig {
	return c.grid
}

// IntentKind classifies what a tap asks the app to do.
type IntentKind string

const (
	// IntentCreateSession: an empty hour slot was tapped.
	IntentCreateSession IntentKind = "create_session"
	// IntentSessionDetail: a session block was tapped.
	IntentSessionDetail IntentKind = "session_detail"
	// IntentPatientDetail: a task or check-in pill was tapped.
	IntentPatientDetail IntentKind = "patient_detail"
)

// Intent is a navigation request the controller hands to its host; the
// controller never navigates itself.
type Intent struct {
	Kind      IntentKind
	Date      time.Time
	Hour      int
	SessionID int64
	PatientID int64
	Event     *Event
}

// SlotIntent resolves a tap on an empty hour cell.
func SlotIntent(day time.Time, hour int) Intent {
	return Intent{Kind: IntentCreateSession, Date: DateOf(day), Hour: hour}
}

// EventIntent resolves a tap on an event, dispatched by kind: sessions open
// the detail/state editor, tasks and check-ins navigate to the patient.
func EventIntent(ev Event) Intent {
	switch ev.Kind {
	case KindSession:
		return Intent{Kind: IntentSessionDetail, SessionID: ev.Session.ID, Event: &ev}
	case KindTask, KindCheckin:
		return Intent{Kind: IntentPatientDetail, PatientID: ev.PatientID(), Event: &ev}
	}
	return Intent{Event: &ev}
}

package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cori-saude/cori-web/internal/agenda"
	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/auth"
	"github.com/cori-saude/cori-web/internal/export"
	"github.com/cori-saude/cori-web/internal/metrics"
)

const anchorLayout = "2006-01-02"

// blockView is one positioned item in the hour grid, ready for the template.
type blockView struct {
	Top       float64
	Height    float64
	Pill      bool
	Kind      string
	Label     string
	TimeLabel string
	State     string
	URL       string
}

type columnView struct {
	Date     string
	DayLabel string
	IsAnchor bool
	Blocks   []blockView
}

type monthCellView struct {
	Date    string
	DayNum  int
	InMonth bool
	Kinds   []string
	URL     string
}

type hourRow struct {
	Label string
	Top   float64
}

// Agenda renders the calendar screen in day, week, or month mode.
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	mode := agenda.ParseMode(r.URL.Query().Get("view"))
	anchor := h.parseAnchor(r)

	ctrl, err := h.loadController(r.Context(), client, mode, anchor)
	if err != nil {
		h.upstreamError(w, r, err, "/agenda")
		return
	}
	v := ctrl.View()

	data := h.withFlash(r, map[string]any{
		"Title":        "Agenda",
		"Practitioner": sess.PractitionerName,
		"Mode":         string(v.Mode),
		"Anchor":       agenda.DateKey(v.Anchor),
		"AnchorLabel":  v.Anchor.Format("02/01/2006"),
		"Prev":         agenda.DateKey(stepAnchor(v.Mode, v.Anchor, -1)),
		"Next":         agenda.DateKey(stepAnchor(v.Mode, v.Anchor, +1)),
		"Today":        agenda.DateKey(agenda.DateOf(time.Now())),
		"GridHeight":   ctrl.Grid().Height(),
	})

	switch v.Mode {
	case agenda.ModeWeek:
		data["Hours"] = h.hourRows(ctrl.Grid())
		data["Columns"] = h.weekColumns(ctrl, v)
	case agenda.ModeMonth:
		data["Rows"] = h.monthRows(ctrl, v)
		data["DayEvents"] = h.dayList(agenda.EventsOn(v.MonthEvents, v.Anchor), v)
	default:
		data["Hours"] = h.hourRows(ctrl.Grid())
		data["Blocks"] = h.dayBlocks(ctrl, v)
	}

	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		h.attachSessionPanel(r.Context(), client, sessionID, data)
	}

	h.render(w, r, "agenda.html", data)
}

// AgendaExport streams the current window's sessions as an iCalendar file.
func (h *Handler) AgendaExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	client := h.authService.APIClient(sess)

	mode := agenda.ParseMode(r.URL.Query().Get("view"))
	window := agenda.Resolve(mode, h.parseAnchor(r))

	raw, err := client.AgendaEvents(r.Context(), window.Start, window.End)
	if err != nil {
		h.upstreamError(w, r, err, "/agenda")
		return
	}
	events, drops := agenda.Normalize(raw)
	for _, d := range drops {
		metrics.CountDroppedAgendaEvent(string(d.Reason))
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	_, _ = w.Write([]byte(export.Calendar(events)))
}

// loadController builds and loads a per-request controller. One request is
// one screen session.
func (h *Handler) loadController(ctx context.Context, client *api.Client, mode agenda.Mode, anchor time.Time) (*agenda.Controller, error) {
	fetch := agenda.FetcherFunc(func(ctx context.Context, w agenda.Window) ([]api.AgendaEvent, error) {
		return client.AgendaEvents(ctx, w.Start, w.End)
	})

	ctrl := agenda.NewController(fetch,
		agenda.WithClock(func() time.Time { return anchor }),
		agenda.WithGrid(h.grid),
		agenda.WithWeekPolicy(h.weekPolicy),
		agenda.WithDropObserver(func(d agenda.Drop) {
			metrics.CountDroppedAgendaEvent(string(d.Reason))
		}),
	)

	if mode != agenda.ModeDay {
		return ctrl, ctrl.SetMode(ctx, mode)
	}
	return ctrl, ctrl.Load(ctx)
}

func (h *Handler) parseAnchor(r *http.Request) time.Time {
	if raw := r.URL.Query().Get("date"); raw != "" {
		if t, err := time.Parse(anchorLayout, raw); err == nil {
			return t
		}
	}
	return agenda.DateOf(time.Now())
}

// stepAnchor moves the anchor one unit in the mode's granularity.
func stepAnchor(mode agenda.Mode, anchor time.Time, dir int) time.Time {
	switch mode {
	case agenda.ModeWeek:
		return anchor.AddDate(0, 0, 7*dir)
	case agenda.ModeMonth:
		return anchor.AddDate(0, dir, 0)
	default:
		return anchor.AddDate(0, 0, dir)
	}
}

func (h *Handler) hourRows(grid agenda.GridConfig) []hourRow {
	hours := grid.Hours()
	rows := make([]hourRow, 0, len(hours))
	for i, hr := range hours {
		rows = append(rows, hourRow{
			Label: fmt.Sprintf("%02d:00", hr),
			Top:   float64(i) * grid.HourHeight,
		})
	}
	return rows
}

func (h *Handler) dayBlocks(ctrl *agenda.Controller, v agenda.View) []blockView {
	return h.blockViews(ctrl.DayBlocks(), v)
}

func (h *Handler) weekColumns(ctrl *agenda.Controller, v agenda.View) []columnView {
	cols := ctrl.WeekColumns()
	out := make([]columnView, 0, len(cols))
	for _, col := range cols {
		out = append(out, columnView{
			Date:     agenda.DateKey(col.Day),
			DayLabel: col.Day.Format("Mon 02"),
			IsAnchor: agenda.SameDay(col.Day, v.Anchor),
			Blocks:   h.blockViews(col.Blocks, v),
		})
	}
	return out
}

func (h *Handler) monthRows(ctrl *agenda.Controller, v agenda.View) [][]monthCellView {
	rows := ctrl.MonthRows()
	out := make([][]monthCellView, 0, len(rows))
	for _, row := range rows {
		cells := make([]monthCellView, 0, len(row))
		for _, cell := range row {
			kinds := make([]string, 0, len(cell.Kinds))
			for _, k := range cell.Kinds {
				kinds = append(kinds, string(k))
			}
			cells = append(cells, monthCellView{
				Date:    agenda.DateKey(cell.Day),
				DayNum:  cell.Day.Day(),
				InMonth: cell.InMonth,
				Kinds:   kinds,
				URL:     "/agenda?view=day&date=" + agenda.DateKey(cell.Day),
			})
		}
		out = append(out, cells)
	}
	return out
}

// dayList renders the tapped day's events as a plain chronological list under
// the month grid.
func (h *Handler) dayList(events []agenda.Event, v agenda.View) []blockView {
	out := make([]blockView, 0, len(events))
	for _, ev := range events {
		out = append(out, h.blockView(agenda.Block{Event: ev}, v))
	}
	return out
}

func (h *Handler) blockViews(blocks []agenda.Block, v agenda.View) []blockView {
	out := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, h.blockView(b, v))
	}
	return out
}

func (h *Handler) blockView(b agenda.Block, v agenda.View) blockView {
	ev := b.Event
	bv := blockView{
		Top:       b.Top,
		Height:    b.Height,
		Pill:      b.Pill,
		Kind:      string(ev.Kind),
		TimeLabel: ev.Timestamp.Format("15:04"),
		URL:       intentURL(ev, v),
	}

	switch ev.Kind {
	case agenda.KindSession:
		bv.Label = fallback(ev.PatientName(), "Sessão")
		bv.State = string(ev.Session.State)
		bv.TimeLabel = ev.Timestamp.Format("15:04") + " - " + ev.End.Format("15:04")
	case agenda.KindTask:
		bv.Label = fallback(ev.Task.Title, "Tarefa")
		bv.State = ev.Task.Status
	case agenda.KindCheckin:
		bv.Label = fmt.Sprintf("Check-in: humor %d/5", ev.Checkin.MoodLevel)
	}
	return bv
}

// intentURL maps a tap on the event to its navigation target.
func intentURL(ev agenda.Event, v agenda.View) string {
	intent := agenda.EventIntent(ev)
	switch intent.Kind {
	case agenda.IntentSessionDetail:
		return fmt.Sprintf("/agenda?view=%s&date=%s&session=%d", v.Mode, agenda.DateKey(v.Anchor), intent.SessionID)
	case agenda.IntentPatientDetail:
		return fmt.Sprintf("/patients/%d", intent.PatientID)
	}
	return "/agenda"
}

// attachSessionPanel loads the side panel for ?session=ID. A failed lookup
// just omits the panel; the grid still renders.
func (h *Handler) attachSessionPanel(ctx context.Context, client *api.Client, rawID string, data map[string]any) {
	var id int64
	if _, err := fmt.Sscanf(rawID, "%d", &id); err != nil || id <= 0 {
		return
	}
	session, err := client.GetSession(ctx, id)
	if err != nil {
		return
	}
	data["Session"] = session
	data["SessionStart"], data["SessionEnd"] = sessionTimes(session)
	data["NextStates"] = []api.SessionState{
		api.SessionConfirmed, api.SessionCompleted, api.SessionNoShowBilled,
		api.SessionCancelledByPatient, api.SessionRescheduled,
	}
}

func sessionTimes(s *api.Session) (string, string) {
	start, ok := agenda.ParseTimestamp(s.StartsAt)
	if !ok {
		return s.StartsAt, s.EndsAt
	}
	end, ok := agenda.ParseTimestamp(s.EndsAt)
	if !ok {
		return start.Format("02/01/2006 15:04"), s.EndsAt
	}
	return start.Format("02/01/2006 15:04"), end.Format("15:04")
}

func fallback(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

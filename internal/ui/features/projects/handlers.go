package projects

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/projectboard/internal/project"
	"github.com/leapstack-labs/projectboard/internal/ui/features/common"
	"github.com/leapstack-labs/projectboard/internal/ui/metrics"
	"github.com/leapstack-labs/projectboard/internal/ui/notifier"
)

const (
	sessionName = "projectboard"
	flashAlert  = "alert"
	flashDraft  = "draft"
)

// Handlers provides HTTP handlers for the project board.
type Handlers struct {
	board        *Board
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	metrics      *metrics.Metrics
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(board *Board, sessionStore sessions.Store, notify *notifier.Notifier, m *metrics.Metrics, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		board:        board,
		sessionStore: sessionStore,
		notifier:     notify,
		metrics:      m,
		logger:       logger,
		isDev:        isDev,
	}
}

// BoardPage renders the full board. A draft and alert left behind by a
// rejected plain form post are restored from the session.
func (h *Handlers) BoardPage(w http.ResponseWriter, r *http.Request) {
	draft, alert := h.takeFlashes(w, r)

	page := common.Page(common.PageData{
		Title:      "Projects",
		UpdatesURL: "/updates",
		IsDev:      h.isDev,
	}, h.board.Component(draft, alert))

	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// BoardUpdates is the long-lived SSE endpoint. It patches both lists each
// time the store changes. Initial content comes from BoardPage.
func (h *Handlers) BoardUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendLists(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) sendLists(sse *datastar.ServerSentEventGenerator) error {
	for _, v := range h.board.Views {
		if err := sse.PatchElementTempl(v.Component()); err != nil {
			return err
		}
	}
	return nil
}

// SubmitProject handles form submission. Datastar requests get an alert or
// cleared signals back over SSE; plain posts are redirected to the board.
func (h *Handlers) SubmitProject(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Datastar-Request") == "true" {
		h.submitSignals(w, r)
		return
	}
	h.submitForm(w, r)
}

func (h *Handlers) submitSignals(w http.ResponseWriter, r *http.Request) {
	// Read signals before creating the SSE generator; it consumes the body.
	var draft project.Draft
	if err := datastar.ReadSignals(r, &draft); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	res := h.submit(draft)
	sse := datastar.NewSSE(w, r)

	if !res.OK {
		// Fields keep their values: the signals are left untouched.
		if err := sse.ExecuteScript(AlertScript(res.Alert)); err != nil {
			h.logger.Debug("failed to send alert", "error", err)
		}
		return
	}

	if err := sse.MarshalAndPatchSignals(res.Draft); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.submit(project.Draft{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		People:      r.PostFormValue("people"),
	})

	if !res.OK {
		if err := h.putFlashes(w, r, res); err != nil {
			h.logger.Error("failed to save session", "error", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) submit(d project.Draft) Result {
	res := h.board.Form.Submit(d)
	if res.OK {
		h.logger.Info("project added", "id", res.Record.ID, "title", res.Record.Title, "people", res.Record.People)
	} else {
		h.logger.Debug("project rejected", "title", d.Title)
		if h.metrics != nil {
			h.metrics.ValidationFailures.Inc()
		}
	}
	return res
}

func (h *Handlers) putFlashes(w http.ResponseWriter, r *http.Request, res Result) error {
	session, err := h.sessionStore.Get(r, sessionName)
	if session == nil {
		return err
	}
	if err != nil {
		// A stale or tampered cookie still yields a fresh session.
		h.logger.Debug("discarding invalid session", "error", err)
	}

	encoded, err := json.Marshal(res.Draft)
	if err != nil {
		return err
	}
	session.AddFlash(res.Alert, flashAlert)
	session.AddFlash(string(encoded), flashDraft)
	return session.Save(r, w)
}

func (h *Handlers) takeFlashes(w http.ResponseWriter, r *http.Request) (project.Draft, string) {
	var draft project.Draft

	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return draft, ""
	}

	alerts := session.Flashes(flashAlert)
	drafts := session.Flashes(flashDraft)
	if len(alerts) == 0 && len(drafts) == 0 {
		return draft, ""
	}

	var alert string
	if len(alerts) > 0 {
		if s, ok := alerts[len(alerts)-1].(string); ok {
			alert = s
		}
	}
	if len(drafts) > 0 {
		if s, ok := drafts[len(drafts)-1].(string); ok {
			if err := json.Unmarshal([]byte(s), &draft); err != nil {
				h.logger.Debug("discarding invalid draft flash", "error", err)
			}
		}
	}

	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", "error", err)
	}
	return draft, alert
}

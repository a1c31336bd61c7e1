package httpapi

import (
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

type Handler struct {
	recapService       *usecase.RecapService
	highlightService   *usecase.HighlightService
	scheduleService    *usecase.ScheduleService
	previewService     *usecase.PreviewService
	leaderboardService *usecase.LeaderboardService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	recapService *usecase.RecapService,
	highlightService *usecase.HighlightService,
	scheduleService *usecase.ScheduleService,
	previewService *usecase.PreviewService,
	leaderboardService *usecase.LeaderboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		recapService:       recapService,
		highlightService:   highlightService,
		scheduleService:    scheduleService,
		previewService:     previewService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Index")
	defer span.End()

	writeText(ctx, w, http.StatusOK, "Taycan A. Schitt is alive!")
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// webhookMessage is the GroupMe callback payload, reduced to the fields the
// bot reads.
type webhookMessage struct {
	Text       string `json:"text"`
	SenderType string `json:"sender_type" validate:"omitempty,oneof=user bot system"`
	Name       string `json:"name"`
}

// Webhook handles GroupMe message callbacks. Whatever happens inside the
// command pipeline, the delivery worker gets a 200 "ok": GroupMe retries on
// errors and a retried recap would double-post.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Webhook")
	defer span.End()

	var msg webhookMessage
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeText(ctx, w, http.StatusBadRequest, "No data received")
		return
	}
	if err := h.validator.Struct(msg); err != nil {
		h.logger.WarnContext(ctx, "webhook payload failed validation", "error", err)
		writeText(ctx, w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if msg.SenderType == "bot" {
		writeText(ctx, w, http.StatusOK, "Ignoring bot message")
		return
	}

	command := ParseCommand(msg.Text)
	var err error
	switch command.Kind {
	case CommandLeagueRecap:
		err = h.recapService.LeagueRecap(ctx, command.LeagueKey)
	case CommandTeamRecap:
		err = h.highlightService.TeamRecap(ctx, msg.Text)
	case CommandTVSchedule:
		err = h.scheduleService.TVSchedule(ctx, true)
	case CommandPreview:
		err = h.previewService.MatchPreview(ctx, msg.Text)
	case CommandLeaders:
		err = h.leaderboardService.Leaders(ctx, command.LeagueKey, command.Category)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "webhook command failed", "kind", int(command.Kind), "error", err)
	}

	writeText(ctx, w, http.StatusOK, "ok")
}

// ManualTV is the out-of-band trigger for the TV schedule, wired to a cron
// ping rather than a chat message.
func (h *Handler) ManualTV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ManualTV")
	defer span.End()

	if err := h.scheduleService.TVSchedule(ctx, false); err != nil {
		h.logger.ErrorContext(ctx, "manual tv schedule failed", "error", err)
	}

	writeText(ctx, w, http.StatusOK, "ok")
}

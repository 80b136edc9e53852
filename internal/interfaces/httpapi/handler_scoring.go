package httpapi

import (
	"net/http"

	"github.com/fortyozsucka/college-football-picks/internal/usecase"
)

type settleRequest struct {
	DryRun bool `json:"dry_run"`
	Season int  `json:"season" validate:"gte=0"`
	Week   int  `json:"week" validate:"gte=0"`
}

type resetRequest struct {
	PickIDs  []string `json:"pick_ids" validate:"omitempty,max=1000,dive,required"`
	Season   int      `json:"season" validate:"gte=0"`
	Week     int      `json:"week" validate:"gte=0"`
	GameType string   `json:"game_type" validate:"omitempty,max=32"`
	All      bool     `json:"all"`
	DryRun   bool     `json:"dry_run"`
}

type resyncRequest struct {
	DryRun     bool `json:"dry_run"`
	MaxWorkers int  `json:"max_workers" validate:"gte=0,lte=16"`
}

func (h *Handler) SettlePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettlePicks")
	defer span.End()

	var req settleRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.SettleUnscoredPicks(ctx, usecase.SettleInput{
		DryRun: req.DryRun,
		Season: req.Season,
		Week:   req.Week,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "settle picks failed", "dry_run", req.DryRun, "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ResetPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetPicks")
	defer span.End()

	var req resetRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.ResetAndResettle(ctx, usecase.ResetInput{
		PickIDs:  req.PickIDs,
		Season:   req.Season,
		Week:     req.Week,
		GameType: req.GameType,
		All:      req.All,
		DryRun:   req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "reset picks failed", "dry_run", req.DryRun, "pick_count", len(req.PickIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) AuditScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuditScores")
	defer span.End()

	report, err := h.reconciliationService.Audit(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ResyncScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResyncScores")
	defer span.End()

	var req resyncRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconciliationService.Resync(ctx, usecase.ResyncInput{
		DryRun:     req.DryRun,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resync scores failed", "dry_run", req.DryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
)

type historicalStatsDTO struct {
	ID             string `json:"id"`
	Season         int    `json:"season"`
	UserID         string `json:"user_id"`
	Rank           int    `json:"rank"`
	FinalScore     int    `json:"final_score"`
	TotalPicks     int    `json:"total_picks"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Pushes         int    `json:"pushes"`
	Unknown        int    `json:"unknown"`
	DoubleDowns    int    `json:"double_downs"`
	DoubleDownWins int    `json:"double_down_wins"`
	ArchivedAt     string `json:"archived_at"`
}

type seasonArchiveDTO struct {
	Season int                  `json:"season"`
	Rows   []historicalStatsDTO `json:"rows"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.leaderboardService.Leaderboard(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) ArchiveSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveSeason")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.archiveService.ArchiveSeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "archive season failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonArchiveToDTO(ctx, result.Season, result.Rows))
}

func (h *Handler) GetSeasonArchive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonArchive")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.archiveService.ListSeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get season archive failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonArchiveToDTO(ctx, season, rows))
}

func (h *Handler) ListSeasonGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonGames")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListSeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list season games failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"season": season,
		"games":  games,
	})
}

func seasonArchiveToDTO(ctx context.Context, season int, rows []historicalstats.Stats) seasonArchiveDTO {
	_, span := startSpan(ctx, "httpapi.seasonArchiveToDTO")
	defer span.End()

	items := make([]historicalStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, historicalStatsDTO{
			ID:             row.ID,
			Season:         row.Season,
			UserID:         row.UserID,
			Rank:           row.Rank,
			FinalScore:     row.FinalScore,
			TotalPicks:     row.TotalPicks,
			Wins:           row.Wins,
			Losses:         row.Losses,
			Pushes:         row.Pushes,
			Unknown:        row.Unknown,
			DoubleDowns:    row.DoubleDowns,
			DoubleDownWins: row.DoubleDownWins,
			ArchivedAt:     row.ArchivedAt.UTC().Format(time.RFC3339),
		})
	}

	return seasonArchiveDTO{Season: season, Rows: items}
}

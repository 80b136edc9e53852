package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/fortyozsucka/college-football-picks/internal/usecase"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodyBytes = 1 << 20

// ReadinessChecker reports whether the backing store can serve requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type Handler struct {
	settlementService     *usecase.SettlementService
	reconciliationService *usecase.ReconciliationService
	leaderboardService    *usecase.LeaderboardService
	archiveService        *usecase.ArchiveService
	gameService           *usecase.GameService
	readiness             ReadinessChecker
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	settlementService *usecase.SettlementService,
	reconciliationService *usecase.ReconciliationService,
	leaderboardService *usecase.LeaderboardService,
	archiveService *usecase.ArchiveService,
	gameService *usecase.GameService,
	readiness ReadinessChecker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		settlementService:     settlementService,
		reconciliationService: reconciliationService,
		leaderboardService:    leaderboardService,
		archiveService:        archiveService,
		gameService:           gameService,
		readiness:             readiness,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness != nil {
		if err := h.readiness.Ready(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSONBody decodes an optional JSON body into dst. An empty body leaves
// dst untouched so every field keeps its zero value.
func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil
	}
	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func seasonFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("season"))
	season, err := strconv.Atoi(raw)
	if err != nil || season <= 0 {
		return 0, fmt.Errorf("%w: season must be a positive integer", usecase.ErrInvalidInput)
	}
	return season, nil
}

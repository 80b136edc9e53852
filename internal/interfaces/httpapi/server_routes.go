package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerPublicSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{season}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/seasons/{season}/archive", handler.GetSeasonArchive)
	mux.HandleFunc("GET /v1/seasons/{season}/games", handler.ListSeasonGames)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/scoring/settle", RequireAdminToken(adminToken, http.HandlerFunc(handler.SettlePicks)))
	mux.Handle("POST /v1/admin/scoring/reset", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResetPicks)))
	mux.Handle("GET /v1/admin/scoring/audit", RequireAdminToken(adminToken, http.HandlerFunc(handler.AuditScores)))
	mux.Handle("POST /v1/admin/scoring/resync", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResyncScores)))
	// Season archive is write-once; a second call answers 409.
	mux.Handle("POST /v1/admin/seasons/{season}/archive", RequireAdminToken(adminToken, http.HandlerFunc(handler.ArchiveSeason)))
}

package http

import (
	"net/http"
	"time"

	"github.com/sacensibas/backend/httpjson"
	"github.com/sacensibas/backend/logger"
)

func (httpserver *HttpServer) getScoreboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	export := r.URL.Query().Get("export") == "true"
	tr := translatorFor(r.URL.Query().Get("lang"))

	var lockAt *time.Time
	if raw := r.URL.Query().Get("lock_at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpjson.WriteErrorJson(w, "invalid lock_at", http.StatusBadRequest, "invalid_lock_at")
			return
		}
		lockAt = &t
	}

	cap := capabilityFromContext(r.Context())
	rows, err := httpserver.contestSrvc.Scoreboard(r.Context(), cap, c, export, tr, lockAt)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, rows)
}

func (httpserver *HttpServer) exportScoreboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if httpserver.exportBucket == nil {
		httpjson.WriteErrorJson(w, "eksports nav konfigurēts", http.StatusNotImplemented, "export_not_configured")
		return
	}

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	tr := translatorFor(r.URL.Query().Get("lang"))
	cap := capabilityFromContext(r.Context())

	url, err := httpserver.contestSrvc.UploadScoreboard(r.Context(), cap, c, tr, nil, httpserver.exportBucket)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"url": url})
}

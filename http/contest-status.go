package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sacensibas/backend/contest"
	"github.com/sacensibas/backend/httpjson"
	"github.com/sacensibas/backend/logger"
)

func (httpserver *HttpServer) attendContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims := claimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteErrorJson(w, "autorizācija ir obligāta", http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(claims.UserUuid)
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid token subject", http.StatusUnauthorized, "unauthorized")
		return
	}

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	ctx := logger.WithContest(r.Context(), c.ID)
	if err := httpserver.contestSrvc.Attend(ctx, c, userID); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]any{"attended": true})
}

// updateStatusForm is the judge callback payload; normally the same
// events arrive through the SQS feed.
type updateStatusForm struct {
	UserUuid string  `json:"user_uuid"`
	SubmUuid string  `json:"subm_uuid"`
	Pid      string  `json:"pid"`
	Accept   bool    `json:"accept"`
	Score    float64 `json:"score"`
}

func (httpserver *HttpServer) updateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var form updateStatusForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpjson.WriteErrorJson(w, "invalid json", http.StatusBadRequest, "invalid_json")
		return
	}
	userID, err := uuid.Parse(form.UserUuid)
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid user_uuid", http.StatusBadRequest, "invalid_user_uuid")
		return
	}
	submID, err := uuid.Parse(form.SubmUuid)
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid subm_uuid", http.StatusBadRequest, "invalid_subm_uuid")
		return
	}

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	entry := contest.JournalEntry{
		RecordID: submID,
		Pid:      form.Pid,
		Accept:   form.Accept,
		Score:    form.Score,
	}
	st, err := httpserver.contestSrvc.UpdateStatus(logger.WithContest(r.Context(), c.ID), c, userID, entry)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, toStatusResponse(st))
}

func (httpserver *HttpServer) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid user id", http.StatusBadRequest, "invalid_user_uuid")
		return
	}

	st, err := httpserver.contestSrvc.GetStatus(r.Context(), contestIdParam(r), userID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, toStatusResponse(st))
}

func (httpserver *HttpServer) listStandings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	sts, err := httpserver.contestSrvc.SortedStatuses(r.Context(), c)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	out := make([]StatusResponse, 0, len(sts))
	for _, st := range sts {
		out = append(out, toStatusResponse(st))
	}
	httpjson.WriteSuccessJson(w, out)
}

func (httpserver *HttpServer) recalcStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	cap := capabilityFromContext(r.Context())
	if !cap.OwnsContest(c) {
		httpjson.WriteErrorJson(w, "nav tiesību pārrēķināt statusus", http.StatusForbidden, "forbidden")
		return
	}

	if err := httpserver.contestSrvc.RecalcStatus(logger.WithContest(r.Context(), c.ID), c); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]any{"recalculated": true})
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sacensibas/backend/contest"
	"github.com/sacensibas/backend/httpjson"
	"github.com/sacensibas/backend/logger"
)

type contestForm struct {
	Domain  string    `json:"domain"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Rule    string    `json:"rule"`
	Begin   time.Time `json:"begin"`
	End     time.Time `json:"end"`
	Pids    []string  `json:"pids"`
	Rated   bool      `json:"rated"`

	PenaltySince *time.Time `json:"penalty_since,omitempty"`
	PenaltyTiers []struct {
		Hours float64 `json:"hours"`
		Coef  float64 `json:"coef"`
	} `json:"penalty_tiers,omitempty"`

	LockAt      *time.Time `json:"lock_at,omitempty"`
	DurationSec int64      `json:"duration_sec,omitempty"`
	InviteCode  string     `json:"invite_code,omitempty"`
}

func (form contestForm) toContest(owner uuid.UUID) *contest.Contest {
	tiers := make([]contest.PenaltyTier, 0, len(form.PenaltyTiers))
	for _, t := range form.PenaltyTiers {
		tiers = append(tiers, contest.PenaltyTier{Hours: t.Hours, Coef: t.Coef})
	}
	domain := form.Domain
	if domain == "" {
		domain = "main"
	}
	return &contest.Contest{
		Domain:       domain,
		Title:        form.Title,
		Content:      form.Content,
		Owner:        owner,
		Rule:         form.Rule,
		Begin:        form.Begin,
		End:          form.End,
		Pids:         form.Pids,
		Rated:        form.Rated,
		PenaltySince: form.PenaltySince,
		PenaltyTiers: tiers,
		LockAt:       form.LockAt,
		Duration:     time.Duration(form.DurationSec) * time.Second,
		InviteCode:   form.InviteCode,
	}
}

func (httpserver *HttpServer) createContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims := claimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteErrorJson(w, "autorizācija ir obligāta", http.StatusUnauthorized, "unauthorized")
		return
	}
	owner, err := uuid.Parse(claims.UserUuid)
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid token subject", http.StatusUnauthorized, "unauthorized")
		return
	}

	var form contestForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpjson.WriteErrorJson(w, "invalid json", http.StatusBadRequest, "invalid_json")
		return
	}

	created, err := httpserver.contestSrvc.CreateContest(r.Context(), form.toContest(owner))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, toContestResponse(created))
}

func (httpserver *HttpServer) editContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims := claimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteErrorJson(w, "autorizācija ir obligāta", http.StatusUnauthorized, "unauthorized")
		return
	}

	cur, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	cap := capabilityFromContext(r.Context())
	if !cap.OwnsContest(cur) {
		httpjson.WriteErrorJson(w, "nav tiesību rediģēt sacensības", http.StatusForbidden, "forbidden")
		return
	}

	var form contestForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpjson.WriteErrorJson(w, "invalid json", http.StatusBadRequest, "invalid_json")
		return
	}

	edited := form.toContest(cur.Owner)
	edited.Domain = cur.Domain
	edited.ID = cur.ID
	edited.Attend = cur.Attend
	edited.Version = cur.Version

	saved, err := httpserver.contestSrvc.EditContest(r.Context(), edited)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, toContestResponse(saved))
}

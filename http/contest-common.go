package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sacensibas/backend/contest"
)

// ContestResponse is the externally visible contest schema.
type ContestResponse struct {
	Domain  string    `json:"domain"`
	Id      string    `json:"id"`
	Owner   string    `json:"owner"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Rule    string    `json:"rule"`
	Begin   time.Time `json:"begin"`
	End     time.Time `json:"end"`
	Pids    []string  `json:"pids"`
	Attend  int       `json:"attend"`
	Rated   bool      `json:"rated"`
}

func toContestResponse(c *contest.Contest) ContestResponse {
	return ContestResponse{
		Domain:  c.Domain,
		Id:      c.ID,
		Owner:   c.Owner.String(),
		Title:   c.Title,
		Content: c.Content,
		Rule:    c.Rule,
		Begin:   c.Begin,
		End:     c.End,
		Pids:    c.Pids,
		Attend:  c.Attend,
		Rated:   c.Rated,
	}
}

// StatusResponse mirrors the stored status record minus the raw
// journal, which stays server side.
type StatusResponse struct {
	ContestId    string  `json:"contest_id"`
	UserUuid     string  `json:"user_uuid"`
	Attend       int     `json:"attend"`
	Rev          int64   `json:"rev"`
	Unranked     bool    `json:"unranked"`
	Accept       int     `json:"accept"`
	TimeSec      int64   `json:"time_sec"`
	Score        float64 `json:"score"`
	PenaltyScore float64 `json:"penalty_score"`
}

func toStatusResponse(st *contest.Status) StatusResponse {
	return StatusResponse{
		ContestId:    st.ContestID,
		UserUuid:     st.UserID.String(),
		Attend:       st.Attend,
		Rev:          st.Rev,
		Unranked:     st.Unranked,
		Accept:       st.Accept,
		TimeSec:      st.Time,
		Score:        st.Score,
		PenaltyScore: st.PenaltyScore,
	}
}

func domainParam(r *http.Request) string {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		domain = "main"
	}
	return domain
}

func contestIdParam(r *http.Request) string {
	return chi.URLParam(r, "contestId")
}

package http

import (
	"net/http"

	"github.com/sacensibas/backend/contest"
	"github.com/sacensibas/backend/httpjson"
	"github.com/sacensibas/backend/logger"
)

func (httpserver *HttpServer) getContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	c, err := httpserver.contestSrvc.GetContest(r.Context(), domainParam(r), contestIdParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, toContestResponse(c))
}

func (httpserver *HttpServer) listContests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	contests, err := httpserver.contestSrvc.ListContests(r.Context(), domainParam(r))
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	out := make([]ContestResponse, 0, len(contests))
	for _, c := range contests {
		out = append(out, toContestResponse(c))
	}
	httpjson.WriteSuccessJson(w, out)
}

type ruleResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Hidden      bool   `json:"hidden"`
}

func (httpserver *HttpServer) listRules(w http.ResponseWriter, r *http.Request) {
	out := make([]ruleResponse, 0)
	for _, name := range contest.RuleNames() {
		rule, _ := contest.GetRule(name)
		out = append(out, ruleResponse{
			Name:        rule.Name(),
			DisplayName: rule.DisplayName(),
			Hidden:      rule.Hidden(),
		})
	}
	httpjson.WriteSuccessJson(w, out)
}

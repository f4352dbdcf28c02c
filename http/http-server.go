package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/sacensibas/backend/contest"
	"github.com/sacensibas/backend/s3bucket"
)

type HttpServer struct {
	contestSrvc  *contest.ContestSrvc
	exportBucket *s3bucket.S3Bucket // optional
	router       *chi.Mux
}

func NewHttpServer(
	contestSrvc *contest.ContestSrvc,
	exportBucket *s3bucket.S3Bucket,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("sacensibas", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://sacensibas.lv"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(getJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		contestSrvc:  contestSrvc,
		exportBucket: exportBucket,
		router:       router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/contests", httpserver.createContest)
	r.Get("/contests", httpserver.listContests)
	r.Get("/contests/{contestId}", httpserver.getContest)
	r.Put("/contests/{contestId}", httpserver.editContest)
	r.Post("/contests/{contestId}/attend", httpserver.attendContest)
	r.Post("/contests/{contestId}/status", httpserver.updateStatus)
	r.Get("/contests/{contestId}/status/{userId}", httpserver.getStatus)
	r.Get("/contests/{contestId}/standings", httpserver.listStandings)
	r.Get("/contests/{contestId}/scoreboard", httpserver.getScoreboard)
	r.Post("/contests/{contestId}/scoreboard/export", httpserver.exportScoreboard)
	r.Post("/contests/{contestId}/recalc", httpserver.recalcStatus)
	r.Get("/contest-rules", httpserver.listRules)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"internship-matcher/internal/app"
	"internship-matcher/internal/httputil"
	"internship-matcher/internal/queue"
	"internship-matcher/internal/recommend"
	"internship-matcher/internal/store"
)

const (
	serviceName = "Gov Internship Matcher API"
	version     = "1.0.0"
)

type matchRequest struct {
	Skills []string `json:"skills" validate:"max=50,dive,notblank,max=100"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("gateway listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if local, ok := deps.Queue.(*queue.Local); ok {
		// Without an external broker the gateway warms caches itself.
		g.Go(func() error {
			return local.Worker(ctx, queue.TaskTypeRescore, deps.Recommend.HandleRescore)
		})
	}

	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) http.Handler {
	r := httputil.NewRouter(deps.Log, httputil.RouterOptions{
		Timeout:        time.Duration(deps.Config.RequestTimeout) * time.Second,
		AllowedOrigins: deps.Config.AllowedOrigins,
	})

	r.Get("/", rootHandler())
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	for _, prefix := range []string{"/api", ""} {
		r.Get(prefix+"/health", healthHandler())
		r.Get(prefix+"/test", testGetHandler())
		r.Post(prefix+"/test", testPostHandler(deps))
		r.Post(prefix+"/match-skills", matchSkillsHandler(deps))
	}
	r.Get("/api/recommendations/{student_id}", recommendationsHandler(deps))
	r.Get("/api/candidates/{internship_id}", candidatesHandler(deps))
	r.Get("/api/internships", internshipsHandler(deps))
	r.Get("/api/students", studentsHandler(deps))
	r.Post("/api/profile/upload", uploadHandler(deps))

	return r
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message": serviceName,
			"version": version,
			"endpoints": []string{
				"GET /api/health",
				"GET /api/test",
				"POST /api/test",
				"GET /api/recommendations/:student_id",
				"GET /api/candidates/:internship_id",
				"POST /api/match-skills",
				"GET /api/internships",
				"GET /api/students",
				"POST /api/profile/upload",
			},
		})
	}
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"message":   serviceName + " is running",
			"timestamp": time.Now().UTC().Format(time.DateOnly),
			"version":   version,
		})
	}
}

func testGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"method":      http.MethodGet,
			"message":     "GET test successful",
			"api_working": true,
		})
	}
}

func testPostHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{}
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
				httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"method":        http.MethodPost,
			"received_data": data,
			"message":       "POST test successful",
		})
	}
}

func matchSkillsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "No JSON data provided", err, http.StatusBadRequest)
			return
		}
		if len(req.Skills) == 0 {
			httputil.Fail(deps.Log, w, "No skills provided", nil, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		out, err := deps.Recommend.ForSkills(r.Context(), req.Skills)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to compute matches", err, http.StatusInternalServerError)
			return
		}
		writeRanked(w, out)
	}
}

func recommendationsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "student_id")
		_, out, err := deps.Recommend.ForStudent(r.Context(), studentID)
		if errors.Is(err, store.ErrStudentNotFound) {
			httputil.Fail(deps.Log.With("student_id", studentID), w, "Student not found", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log.With("student_id", studentID), w, "failed to compute recommendations", err, http.StatusInternalServerError)
			return
		}
		writeRanked(w, out)
	}
}

func candidatesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "internship_id")
		id, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid internship id", err, http.StatusBadRequest)
			return
		}
		_, out, err := deps.Recommend.CandidatesFor(r.Context(), id)
		if errors.Is(err, store.ErrInternshipNotFound) {
			httputil.Fail(deps.Log.With("internship_id", id), w, "Internship not found", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log.With("internship_id", id), w, "failed to rank candidates", err, http.StatusInternalServerError)
			return
		}
		writeRanked(w, out)
	}
}

func internshipsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Store.ListInternships(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list internships", err, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []store.Internship{}
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	}
}

func studentsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Store.ListStudents(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list students", err, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []store.Student{}
		}
		httputil.WriteJSON(w, http.StatusOK, list)
	}
}

func writeRanked[T any](w http.ResponseWriter, out recommend.Outcome[T]) {
	cacheState := "miss"
	if out.Cached {
		cacheState = "hit"
	}
	w.Header().Set("X-Match-Strategy", out.Strategy)
	w.Header().Set("X-Cache", cacheState)
	items := out.Items
	if items == nil {
		items = []T{}
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

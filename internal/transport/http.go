package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
	"github.com/Gsiblesz/Centro-Caracas/internal/repository"
)

// Server wires HTTP handlers for the record and analytics endpoints.
type Server struct {
	submissions *process.Service
	queries     *analytics.Service
	logger      *slog.Logger
	started     time.Time
}

// NewServer creates the HTTP router. All /registros routes sit behind the
// API-key middleware; /health stays open for probes.
func NewServer(submissions *process.Service, queries *analytics.Service, apiKey string, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		submissions: submissions,
		queries:     queries,
		logger:      logger,
		started:     time.Now(),
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Route("/registros", func(r chi.Router) {
		r.Use(APIKeyMiddleware(apiKey))
		r.Post("/", srv.handleSubmit)
		r.Get("/", srv.handleList)
		r.Delete("/", srv.handleDeleteAll)
		r.Get("/control-chart", srv.handleControlChart)
		r.Get("/metrics", srv.handleSummary)
		r.Delete("/{id}", srv.handleDelete)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"uptime": time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var rec process.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido")
		return
	}

	stored, err := s.submissions.Submit(r.Context(), rec)
	if err != nil {
		s.logger.Error("submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo guardar el registro")
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := process.ListFilter{
		Panel:    q.Get("panel"),
		LotID:    q.Get("lotId"),
		DateFrom: q.Get("desde"),
		DateTo:   q.Get("hasta"),
	}

	var err error
	if filter.Take, err = intParam(q.Get("take")); err != nil {
		writeError(w, http.StatusBadRequest, "Parámetro take inválido")
		return
	}
	if filter.Skip, err = intParam(q.Get("skip")); err != nil {
		writeError(w, http.StatusBadRequest, "Parámetro skip inválido")
		return
	}

	records, err := s.submissions.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, process.ErrInvalidFilter) {
			writeError(w, http.StatusBadRequest, "Filtro inválido")
			return
		}
		s.logger.Error("list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo listar registros")
		return
	}
	if records == nil {
		records = []process.StoredRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.submissions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Registro no encontrado")
			return
		}
		s.logger.Error("delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo borrar el registro")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.submissions.DeleteAll(r.Context())
	if err != nil {
		s.logger.Error("delete all failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudieron borrar los registros")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

func (s *Server) handleControlChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	chart, err := s.queries.ControlChart(r.Context(), analytics.Query{
		Panel:    q.Get("panel"),
		Metric:   q.Get("metric"),
		DateFrom: q.Get("desde"),
		DateTo:   q.Get("hasta"),
	})
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidMetric) {
			writeError(w, http.StatusBadRequest, "Métrica inválida")
			return
		}
		if errors.Is(err, analytics.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "Fecha inválida")
			return
		}
		s.logger.Error("control chart failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudieron calcular las gráficas de control")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := s.queries.Summary(r.Context(), analytics.Query{
		Panel:    q.Get("panel"),
		DateFrom: q.Get("desde"),
		DateTo:   q.Get("hasta"),
	})
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "Fecha inválida")
			return
		}
		s.logger.Error("summary failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudieron calcular métricas")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

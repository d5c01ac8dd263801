// Package mockapi implements a local, in-memory rendition of the meeting-
// preparation backend. It exists for offline development and for end-to-end
// tests: jobs advance through a simulated agent pipeline and produce sample
// results covering every payload shape the normalizer accepts.
package mockapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/briefdeck/briefdeck/internal/api"
)

// Version reported by the mock health endpoint.
const Version = "demo"

// Handlers holds the HTTP handler methods for the mock backend.
type Handlers struct {
	store *Store
}

// NewHandler builds the mock backend router. Jobs advance one agent every
// step.
func NewHandler(step time.Duration) http.Handler {
	h := &Handlers{store: NewStore(step)}

	r := chi.NewRouter()
	r.Get("/api/v1/health", h.handleHealth)
	r.Route("/api/v1/meetings", func(r chi.Router) {
		r.Post("/prepare", h.handlePrepare)
		r.Post("/prepare-custom", h.handlePrepareCustom)
		r.Post("/prepare-agenda", h.handlePrepareAgenda)
		r.Get("/jobs", h.handleListJobs)
		r.Get("/jobs/{jobID}", h.handleJobStatus)
		r.Delete("/jobs/{jobID}", h.handleDeleteJob)
	})
	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Health{
		Status:          "ok",
		PortiaAvailable: true,
		Environment:     "demo",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Version:         Version,
	})
}

func (h *Handlers) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req api.PrepareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	agents := append([]string(nil), DefaultAgents...)
	if !req.IncludeSlack {
		agents = removeAgent(agents, api.AgentSlack)
	}
	if req.IncludeAgenda {
		agents = append(agents, api.AgentAgenda)
	}
	job := h.store.Create("standard", agents)
	writeJSON(w, http.StatusOK, api.PrepareResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "Meeting preparation started",
	})
}

func (h *Handlers) handlePrepareCustom(w http.ResponseWriter, r *http.Request) {
	var req api.CustomPrepareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Agents) == 0 {
		writeError(w, http.StatusBadRequest, "at least one agent is required")
		return
	}
	job := h.store.Create("custom", req.Agents)
	writeJSON(w, http.StatusOK, api.PrepareResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "Custom preparation started",
	})
}

func (h *Handlers) handlePrepareAgenda(w http.ResponseWriter, r *http.Request) {
	var req api.AgendaPrepareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	job := h.store.Create("agenda", []string{api.AgentAgenda})
	writeJSON(w, http.StatusOK, api.PrepareResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "Agenda preparation started",
	})
}

func (h *Handlers) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := h.store.Get(chi.URLParam(r, "jobID"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handlers) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

func (h *Handlers) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "jobID")) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, api.DeleteResponse{Message: "job deleted"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func removeAgent(agents []string, name string) []string {
	out := agents[:0]
	for _, a := range agents {
		if a != name {
			out = append(out, a)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg, "code": code})
}

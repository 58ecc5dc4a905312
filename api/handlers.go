package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sealcost/decision/scenario"
	"sealcost/pkg/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleEstimate runs the pipeline once on the posted inputs, outside the
// scenario arena. With archive=true and a store attached, the finished
// snapshot is persisted and its id returned.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req api.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fillDefaults(&req.Business)

	comp, err := s.engine.Estimate(req.Project, req.Business)
	if err != nil {
		s.jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	estimates.Inc()

	resp := api.EstimateResponse{Computation: *comp}
	if req.Archive && s.archiver != nil {
		id, err := s.archiver.SaveEstimate(r.Context(), req.Project, comp)
		if err != nil {
			// The estimate itself succeeded; archiving is best-effort.
			slog.Warn("estimate archive failed", "error", err)
		} else {
			resp.SnapshotID = id.String()
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSetBaseline(w http.ResponseWriter, r *http.Request) {
	var req api.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fillDefaults(&req.Business)
	s.manager.SetBaseline(req.Project, req.Business)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetBaseline(w http.ResponseWriter, r *http.Request) {
	in, bs := s.manager.Baseline()
	s.jsonResponse(w, http.StatusOK, api.EstimateRequest{Project: in, Business: bs})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.manager.List())
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req api.CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created := s.manager.Add(req.Name, req.Description, req.Overrides)
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.scenarioError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sc)
}

func (s *Server) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc, err := s.manager.Update(chi.URLParam(r, "id"), req.Name, req.Description, req.Overrides)
	if err != nil {
		s.scenarioError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sc)
}

func (s *Server) handleRemoveScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Remove(chi.URLParam(r, "id")); err != nil {
		s.scenarioError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.manager.Run(chi.URLParam(r, "id"))
	if err != nil {
		scenarioRuns.WithLabelValues("rejected").Inc()
		s.scenarioError(w, err)
		return
	}
	if sc.Status == api.StatusError {
		scenarioRuns.WithLabelValues("error").Inc()
	} else {
		scenarioRuns.WithLabelValues("done").Inc()
	}
	s.jsonResponse(w, http.StatusOK, sc)
}

func (s *Server) handleSetPrimary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.SetPrimary(id); err != nil {
		s.scenarioError(w, err)
		return
	}
	sc, err := s.manager.Get(id)
	if err != nil {
		s.scenarioError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sc)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req api.SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fillDefaults(&req.Business)

	samples, err := s.analyzer.Sweep(req.Project, req.Business, req.Overrides, req.Parameter, req.Values)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, samples)
}

// fillDefaults backfills production rates and vehicles when the caller
// supplies only prices and markups.
func fillDefaults(bs *api.BusinessSettings) {
	if len(bs.Rates.CoverageGalPerSqFt) == 0 {
		bs.Rates = api.DefaultProductionRates()
	}
	if bs.Vehicles[0].MPG == 0 && bs.Vehicles[1].MPG == 0 {
		bs.Vehicles = api.DefaultBusinessSettings().Vehicles
	}
}

func (s *Server) scenarioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		s.jsonError(w, http.StatusNotFound, "scenario not found")
	case errors.Is(err, scenario.ErrRunInFlight):
		s.jsonError(w, http.StatusConflict, "scenario run already in flight")
	default:
		s.jsonError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, msg string) {
	s.jsonResponse(w, status, api.ErrorResponse{Error: msg})
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Simplici0/gpcalc/internal/calcinput"
	"github.com/Simplici0/gpcalc/internal/history"
	"github.com/Simplici0/gpcalc/internal/pricing"
	"github.com/Simplici0/gpcalc/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type familyItem struct {
	ID    pricing.Family `json:"id"`
	Label string         `json:"label"`
}

type calculateResponse struct {
	Family      pricing.Family        `json:"family"`
	Product     string                `json:"product"`
	Recommended []pricing.Price       `json:"recommended"`
	Reality     *pricing.RealityCheck `json:"reality,omitempty"`
	Details     pricing.Details       `json:"details"`
	Result      pricing.Result        `json:"result"`
	Entry       history.Entry         `json:"entry"`
}

type historyResponse struct {
	Query   string          `json:"query"`
	Entries []history.Entry `json:"entries"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	families := pricing.Families()
	items := make([]familyItem, 0, len(families))
	for _, f := range families {
		items = append(items, familyItem{ID: f, Label: f.Label()})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleTargets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("sector") == "" && q.Get("tier") == "" {
		writeJSON(w, http.StatusOK, pricing.Targets())
		return
	}

	profile, err := pricing.ParseProfile(q.Get("sector"), q.Get("tier"))
	if err != nil {
		writeInputError(w, err)
		return
	}
	targets := make(map[pricing.Family]float64)
	for _, f := range pricing.Families() {
		gp, err := pricing.DefaultTarget(profile, f)
		if err != nil {
			writeInputError(w, err)
			return
		}
		targets[f] = gp
	}
	writeJSON(w, http.StatusOK, targets)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	family, err := pricing.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		calculationErrorsTotal.WithLabelValues(unknownFamily).Inc()
		writeInputError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		calculationErrorsTotal.WithLabelValues(string(family)).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
		return
	}

	res, err := compute(family, r)
	if err != nil {
		calculationErrorsTotal.WithLabelValues(string(family)).Inc()
		if errors.Is(err, pricing.ErrInvalidInput) {
			writeInputError(w, err)
			return
		}
		logger.Error().Err(err).Str("family", string(family)).Msg("calculation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "calculation failed"})
		return
	}
	calculationsTotal.WithLabelValues(string(family)).Inc()

	entry, err := s.history.Add(r.Context(), sessionFromContext(r.Context()), res)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save calculation")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save calculation"})
		return
	}
	historyEntriesTotal.Inc()

	logger.Debug().
		Str("family", string(family)).
		Str("product", res.ProductName()).
		Str("entry", entry.ID).
		Msg("calculated")

	writeJSON(w, http.StatusOK, calculateResponse{
		Family:      res.Family(),
		Product:     res.ProductName(),
		Recommended: res.Recommended(),
		Reality:     res.Reality(),
		Details:     entry.Details,
		Result:      res,
		Entry:       entry,
	})
}

func compute(family pricing.Family, r *http.Request) (pricing.Result, error) {
	var profile pricing.Profile
	sector := strings.TrimSpace(r.Form.Get("sector"))
	tier := strings.TrimSpace(r.Form.Get("tier"))
	if sector != "" || tier != "" {
		p, err := pricing.ParseProfile(sector, tier)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	in, err := calcinput.Decode(family, r.Form, profile)
	if err != nil {
		return nil, err
	}
	return pricing.Compute(in)
}

func (s *server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	entries, err := s.history.List(r.Context(), sessionFromContext(r.Context()), query)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load history")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load history"})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Query: query, Entries: entries})
}

func (s *server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	removed, err := s.history.Clear(r.Context(), sessionFromContext(r.Context()))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to clear history")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to clear history"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	err := s.history.Delete(r.Context(), sessionFromContext(r.Context()), chi.URLParam(r, "id"))
	if errors.Is(err, history.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "history entry not found"})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to delete history entry")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete history entry"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHistoryReport(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)
	entries, err := s.history.List(r.Context(), sessionFromContext(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load history")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load history"})
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, entries, s.now()); err != nil {
		logger.Error().Err(err).Msg("failed to render report")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to render report"})
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="strategy-report.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func writeInputError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var ie *pricing.InputError
	if errors.As(err, &ie) {
		resp.Field = ie.Field
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

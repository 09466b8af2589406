package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trngaudit/adapters/sample"
	"trngaudit/app"
	"trngaudit/domain/core"
	"trngaudit/internal/errors"
	synth "trngaudit/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ledger": s.service.LedgerEnabled(),
	})
}

// handleCreateAudit audits the raw request body. Query: alpha, min_samples,
// source, record, format (json|yaml|text).
func (s *Server) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := app.AuditRequest{
		Source:     q.Get("source"),
		Alpha:      s.cfg.Alpha,
		MinSamples: s.cfg.MinSamples,
	}
	if req.Source == "" {
		req.Source = "request"
	}

	var err error
	if v := q.Get("alpha"); v != "" {
		if req.Alpha, err = strconv.ParseFloat(v, 64); err != nil {
			s.writeError(w, errors.InvalidInput("alpha must be a number"))
			return
		}
	}
	if v := q.Get("min_samples"); v != "" {
		if req.MinSamples, err = strconv.Atoi(v); err != nil {
			s.writeError(w, errors.InvalidInput("min_samples must be an integer"))
			return
		}
	}
	if v := q.Get("record"); v != "" {
		if req.Record, err = strconv.ParseBool(v); err != nil {
			s.writeError(w, errors.InvalidInput("record must be a boolean"))
			return
		}
	}

	format := synth.FormatJSON
	if v := q.Get("format"); v != "" {
		if format, err = synth.ParseFormat(v); err != nil {
			s.writeError(w, err)
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBody)
	bits, err := sample.LoadReader(r.Context(), body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.service.AuditBitstream(r.Context(), req, bits)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if result.Record != nil {
		w.Header().Set("X-Audit-ID", result.Record.ID.String())
	}

	switch format {
	case synth.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	case synth.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := synth.Render(w, result.Report, format); err != nil {
		s.logger.Error("failed to render report: %v", err)
	}
}

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := s.service.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAuditID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	record, err := s.service.GetAudit(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, app.ErrLedgerDisabled):
		return http.StatusServiceUnavailable
	}

	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeConfigInvalid:
		return http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeSourceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

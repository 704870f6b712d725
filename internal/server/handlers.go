package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridkz/pkg/buildinfo"
	"github.com/matzehuels/gridkz/pkg/convert"
	"github.com/matzehuels/gridkz/pkg/errors"
	"github.com/matzehuels/gridkz/pkg/kzones"
	"github.com/matzehuels/gridkz/pkg/store"
)

// convertRequest is the JSON request body for conversion endpoints.
// Raw text/plain bodies are also accepted; the template is then the
// whole body and the name comes from the ?name query parameter.
type convertRequest struct {
	Name     string             `json:"name"`
	Template string             `json:"template"`
	Vars     map[string]float64 `json:"vars,omitempty"`
	Padding  *int               `json:"padding,omitempty"`
}

type convertResponse struct {
	Name       string          `json:"name"`
	LayoutHash string          `json:"layout_hash"`
	Cached     bool            `json:"cached"`
	Stats      statsPayload    `json:"stats"`
	Document   json.RawMessage `json:"document"`
}

type statsPayload struct {
	Sections   int           `json:"sections"`
	Zones      int           `json:"zones"`
	Duplicates int           `json:"duplicates"`
	Skipped    []skipPayload `json:"skipped,omitempty"`
}

// layoutSummary is a stored layout without its document, for listings.
type layoutSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Zones      int       `json:"zones"`
	LayoutHash string    `json:"layout_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// convertOptions builds validated conversion options from the request.
func (s *Server) convertOptions(w http.ResponseWriter, r *http.Request) (convert.Options, error) {
	opts := convert.Options{
		Padding: s.padding,
		Logger:  loggerFrom(r.Context()),
	}
	if refresh := r.URL.Query().Get("refresh"); refresh != "" {
		opts.Refresh, _ = strconv.ParseBool(refresh)
	}

	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer body.Close()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req convertRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
		opts.Input = []byte(req.Template)
		opts.BaseName = req.Name
		opts.Vars = mergeVars(s.vars, req.Vars)
		if req.Padding != nil {
			opts.Padding = *req.Padding
		}
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
		}
		opts.Input = data
		opts.BaseName = r.URL.Query().Get("name")
		opts.Vars = mergeVars(s.vars, nil)
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// mergeVars overlays request vars on the server-wide ones.
func mergeVars(base, override map[string]float64) map[string]float64 {
	if len(base) == 0 {
		return override
	}
	merged := make(map[string]float64, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, err := s.convertOptions(w, r)
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}

	result, err := s.runner.Convert(r.Context(), opts)
	if err != nil {
		var skips []kzones.Skip
		if result != nil {
			skips = result.Stats.Skipped
		}
		s.respondError(w, r, err, skips)
		return
	}

	s.respondJSON(w, r, http.StatusOK, convertResponse{
		Name:       result.Layout.Name,
		LayoutHash: result.LayoutHash,
		Cached:     result.CacheInfo.ConvertHit,
		Stats: statsPayload{
			Sections:   result.Stats.Sections,
			Zones:      result.Stats.Zones,
			Duplicates: result.Stats.Duplicates,
			Skipped:    skipPayloads(result.Stats.Skipped),
		},
		Document: json.RawMessage(result.JSON),
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.convertOptions(w, r)
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}

	result, err := s.runner.Convert(r.Context(), opts)
	if err != nil {
		var skips []kzones.Skip
		if result != nil {
			skips = result.Stats.Skipped
		}
		s.respondError(w, r, err, skips)
		return
	}

	rec := store.NewRecord(result.Layout.Name, opts.BaseName, result.JSON, result.LayoutHash, result.Stats.Zones)
	if err := s.store.Set(r.Context(), rec); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store layout"), nil)
		return
	}

	loggerFrom(r.Context()).Info("stored layout", "id", rec.ID, "name", rec.Name, "zones", rec.Zones)
	s.respondJSON(w, r, http.StatusCreated, rec)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load layout"), nil)
		return
	}
	if rec == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id), nil)
		return
	}
	s.respondJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"), nil)
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list layouts"), nil)
		return
	}

	summaries := make([]layoutSummary, len(recs))
	for i, rec := range recs {
		summaries[i] = layoutSummary{
			ID:         rec.ID,
			Name:       rec.Name,
			Zones:      rec.Zones,
			LayoutHash: rec.LayoutHash,
			CreatedAt:  rec.CreatedAt,
		}
	}
	s.respondJSON(w, r, http.StatusOK, map[string]any{
		"layouts": summaries,
		"count":   len(summaries),
	})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete layout"), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

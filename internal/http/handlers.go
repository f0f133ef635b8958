package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"masarif/internal/core"
)

const handlerTimeout = 10 * time.Second

// handleRecords serves the filtered, normalized records for one role.
// GET /api/records?role=expenses&year=2024&month=3[&day=5]
// GET /api/records?role=expenses&from=2024-03-01&to=2024-03-31
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	role, ok := parseRole(w, r)
	if !ok {
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	ds, err := s.dashboard.Records(ctx, role, filter)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"role":    ds.Role,
		"columns": ds.Columns,
		"records": ds.Records,
		"dropped": ds.Dropped,
	})
}

// handleCategories serves ranked category totals for one role.
// GET /api/categories?role=expenses&by=البند&year=2024&month=3
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	role, ok := parseRole(w, r)
	if !ok {
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	rows, err := s.dashboard.CategoryTotals(ctx, role, r.URL.Query().Get("by"), filter)
	if err != nil {
		var unknown *core.UnknownColumnError
		if errors.As(err, &unknown) {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		respondPipelineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"role": role, "totals": rows})
}

// handleMonthlySummary serves the merged income/expense monthly rows.
// GET /api/summary/monthly
func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	rows, err := s.dashboard.MonthlySummary(ctx)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"summary": rows})
}

// handleRefresh discards cached raw tables; the next read refetches. With a
// role parameter only that role's table is discarded.
// POST /api/refresh[?role=expenses]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var invalidated bool
	if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
		role := core.Role(raw)
		if !role.IsValid() {
			respondError(w, http.StatusBadRequest,
				fmt.Errorf("invalid role %q: must be one of %v", role, core.Roles))
			return
		}
		invalidated = s.dashboard.RefreshRole(role)
		slog.InfoContext(r.Context(), "Manual refresh requested", "role", role, "cache_invalidated", invalidated)
	} else {
		invalidated = s.dashboard.Refresh()
		slog.InfoContext(r.Context(), "Manual refresh requested", "cache_invalidated", invalidated)
	}
	respondJSON(w, http.StatusOK, map[string]any{"refreshed": invalidated})
}

// respondPipelineError maps pipeline failures onto user-facing statuses:
// data-quality problems are 422 with the error text (it names the columns
// involved), source failures are 502.
func respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		colErr   *core.ColumnNotFoundError
		emptyErr *core.EmptyDatasetError
	)
	switch {
	case errors.As(err, &colErr), errors.As(err, &emptyErr):
		slog.WarnContext(r.Context(), "Dataset unusable", "error", err)
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, core.ErrNoData):
		slog.WarnContext(r.Context(), "No data from source", "error", err)
		respondError(w, http.StatusBadGateway, err)
	default:
		slog.ErrorContext(r.Context(), "Pipeline failure", "error", err)
		respondError(w, http.StatusBadGateway, err)
	}
}

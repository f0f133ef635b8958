package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"masarif/internal/core"
	"masarif/internal/services"
)

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func parseRole(w http.ResponseWriter, r *http.Request) (core.Role, bool) {
	role := core.Role(strings.TrimSpace(r.URL.Query().Get("role")))
	if !role.IsValid() {
		respondError(w, http.StatusBadRequest,
			fmt.Errorf("invalid role %q: must be one of %v", role, core.Roles))
		return "", false
	}
	return role, true
}

// parseFilter builds a dataset filter from query parameters. from/to take
// precedence over year/month/day; day=all is accepted as the whole-month
// sentinel the UI sends.
func parseFilter(r *http.Request) (services.Filter, error) {
	q := r.URL.Query()
	var f services.Filter

	if from := strings.TrimSpace(q.Get("from")); from != "" {
		d, err := parseDate(from)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", from)
		}
		f.From = d
	}
	if to := strings.TrimSpace(q.Get("to")); to != "" {
		d, err := parseDate(to)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", to)
		}
		f.To = d
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		return f, nil
	}

	var err error
	if f.Year, err = intParam(q.Get("year")); err != nil {
		return f, errors.New("invalid year")
	}
	if f.Month, err = intParam(q.Get("month")); err != nil {
		return f, errors.New("invalid month")
	}
	if f.Month != 0 && (f.Month < 1 || f.Month > 12 || f.Year == 0) {
		return f, fmt.Errorf("invalid month %d", f.Month)
	}
	day := strings.TrimSpace(q.Get("day"))
	if day != "" && !strings.EqualFold(day, "all") {
		if f.Day, err = intParam(day); err != nil || f.Day < 1 || f.Day > 31 {
			return f, fmt.Errorf("invalid day %q", day)
		}
		if f.Month == 0 {
			return f, fmt.Errorf("day %d requires year and month", f.Day)
		}
	}
	return f, nil
}

func intParam(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// parseDate parses a date string in YYYY-MM-DD form.
func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(core.DateLayout, s)
	if err != nil {
		return core.Date{}, err
	}
	return core.DateOf(t), nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

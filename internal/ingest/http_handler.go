package ingest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/httpx"
	"holidaykeeper/internal/platform/nager"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// CountryChecker reports whether a country code is stored.
type CountryChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

type HTTPHandler struct {
	svc       *Service
	countries CountryChecker
	secret    string
	now       func() time.Time
}

func NewHTTPHandler(svc *Service, countries CountryChecker, secret string) *HTTPHandler {
	return &HTTPHandler{svc: svc, countries: countries, secret: secret, now: time.Now}
}

type upsertQuery struct {
	CountryCode string `query:"countryCode" validate:"required,nager_country_code"`
	Year        string `query:"year" validate:"required,datetime=2006-01-02"`
}

type syncRequest struct {
	Years []int `json:"years" validate:"max=20,dive,gte=1900,lte=2100"`
}

// Upsert handles PUT /api/v1/holidays/upsert
func (h *HTTPHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := upsertQuery{
		CountryCode: query.Get("countryCode"),
		Year:        query.Get("year"),
	}
	if details := httpx.ValidateStruct(q); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	exists, err := h.countries.ExistsByCode(r.Context(), q.CountryCode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !exists {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
		return
	}

	year, _ := time.Parse(time.DateOnly, q.Year)
	if err := h.svc.UpsertHoliday(r.Context(), year, q.CountryCode); err != nil {
		h.writeError(w, r, err)
		return
	}

	slog.Info("holidays_upserted",
		"request_id", httpx.RequestIDFrom(r),
		"subject", httpx.SubjectFrom(r),
		"country", q.CountryCode,
		"year", year.Year(),
	)
	httpx.JSONSuccess(w, r, map[string]any{"countryCode": q.CountryCode, "year": year.Year()}, nil)
}

// Sync handles POST /internal/jobs/sync
func (h *HTTPHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sync request", details)
		return
	}
	if len(req.Years) == 0 {
		req.Years = AnnualYears(h.now())
	}

	report, err := h.svc.syncStored(r.Context(), TriggerManual, req.Years)
	if err != nil && !errors.Is(err, ErrTasksFailed) {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, report, map[string]any{"status": report.status()})
}

// Runs handles GET /internal/jobs/runs
func (h *HTTPHandler) Runs(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > maxRunsLimit {
		limit = defaultRunsLimit
	}

	runs, err := h.svc.RecentRuns(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, runs, map[string]any{"limit": limit})
}

func (h *HTTPHandler) authorized(r *http.Request) bool {
	got := r.Header.Get("X-Internal-Secret")
	return h.secret != "" && subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, nager.ErrExternalSource):
		slog.Warn("external_source_failed", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "EXTERNAL_API_ERROR", "Holiday source unavailable", nil)
	case errors.Is(err, country.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
	case errors.Is(err, ErrInvalidYears):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{
			{Field: "years", Message: err.Error()},
		})
	default:
		slog.Error("ingest_request_failed", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

package holiday

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/httpx"
)

const (
	defaultPage     = 1
	defaultPageSize = 3
	maxPageSize     = 100
)

// Searcher is the read/delete surface the HTTP layer needs.
type Searcher interface {
	Search(ctx context.Context, cond SearchCondition, page, pageSize int) ([]View, int64, error)
	DeleteByDateAndCountryName(ctx context.Context, date time.Time, countryName string) (int64, error)
	CountryNameExists(ctx context.Context, name string) (bool, error)
}

type HTTPHandler struct {
	service Searcher
}

func NewHTTPHandler(service Searcher) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type listQuery struct {
	StartDate   string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	CountryName string `query:"countryName" validate:"required"`
	Page        int    `query:"page" validate:"gte=1,lte=1000000"`
	Size        int    `query:"size" validate:"gte=1,lte=100"`
}

type deleteQuery struct {
	CountryName string `query:"countryName" validate:"required"`
	Year        string `query:"year" validate:"required,datetime=2006-01-02"`
}

func init() {
	httpx.RegisterStructValidation(validateListRange, listQuery{})
}

func validateListRange(sl validator.StructLevel) {
	q := sl.Current().Interface().(listQuery)
	start, errStart := time.Parse(time.DateOnly, q.StartDate)
	end, errEnd := time.Parse(time.DateOnly, q.EndDate)
	if errStart == nil && errEnd == nil && start.After(end) {
		sl.ReportError(q.EndDate, "endDate", "EndDate", "date_range", "")
	}
}

// List handles GET /api/v1/holidays
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := listQuery{
		StartDate:   query.Get("startDate"),
		EndDate:     query.Get("endDate"),
		CountryName: query.Get("countryName"),
		Page:        defaultPage,
		Size:        defaultPageSize,
	}

	var details []httpx.ErrorDetail
	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "page", Message: "page must be an integer"})
		} else {
			q.Page = n
		}
	}
	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "size", Message: "size must be an integer"})
		} else {
			q.Size = n
		}
	}
	details = append(details, httpx.ValidateStruct(q)...)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	exists, err := h.service.CountryNameExists(r.Context(), q.CountryName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !exists {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
		return
	}

	cond := SearchCondition{CountryName: q.CountryName}
	if q.StartDate != "" {
		d, _ := time.Parse(time.DateOnly, q.StartDate)
		cond.StartDate = &d
	}
	if q.EndDate != "" {
		d, _ := time.Parse(time.DateOnly, q.EndDate)
		cond.EndDate = &d
	}

	views, total, err := h.service.Search(r.Context(), cond, q.Page-1, q.Size)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, views, map[string]any{
		"page":        q.Page,
		"page_size":   q.Size,
		"total":       total,
		"total_pages": (total + int64(q.Size) - 1) / int64(q.Size),
	})
}

// Delete handles DELETE /api/v1/holidays/{countryName}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := deleteQuery{
		CountryName: r.PathValue("countryName"),
		Year:        r.URL.Query().Get("year"),
	}
	if details := httpx.ValidateStruct(q); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid parameters", details)
		return
	}
	date, _ := time.Parse(time.DateOnly, q.Year)

	deleted, err := h.service.DeleteByDateAndCountryName(r.Context(), date, q.CountryName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slog.Info("holidays_deleted",
		"request_id", httpx.RequestIDFrom(r),
		"country", q.CountryName,
		"date", q.Year,
		"rows", deleted,
	)
	httpx.JSONSuccess(w, r, map[string]any{"deleted": deleted}, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, country.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Country not found", nil)
	case errors.Is(err, ErrInvalidDateRange):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{
			{Field: "endDate", Message: err.Error()},
		})
	default:
		slog.Error("holiday_request_failed", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

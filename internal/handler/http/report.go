package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/report"
	"github.com/aarambh-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Statistics(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	DailyRoster(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// monthFromQuery reads year/month query params, defaulting to the current
// month when absent.
func monthFromQuery(r *http.Request) (report.Month, error) {
	now := time.Now()
	m := report.Month{Year: now.Year(), Month: now.Month()}

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 2000 || year > 2100 {
			return report.Month{}, fmt.Errorf("invalid year")
		}
		m.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return report.Month{}, fmt.Errorf("invalid month")
		}
		m.Month = time.Month(month)
	}

	return m, nil
}

// Statistics implements ReportHandler.
func (h *reportHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	m, err := monthFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.Statistics(r.Context(), employeeID, m)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements ReportHandler.
func (h *reportHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	m, err := monthFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.Calendar(r.Context(), employeeID, m)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyRoster implements ReportHandler.
func (h *reportHandlerImpl) DailyRoster(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	result, err := h.reportService.DailyRoster(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements ReportHandler.
func (h *reportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	m, err := monthFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("attendance-%s-%04d-%02d.csv", employeeID, m.Year, int(m.Month))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.ExportCSV(r.Context(), w, employeeID, m); err != nil {
		// Headers may already be written; log and stop.
		response.HandleError(w, err)
		return
	}
}

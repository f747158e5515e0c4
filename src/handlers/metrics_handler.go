package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/reports"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// MetricsHandler serves the per-user dashboard data: derived metrics, the
// filtered daily report, re-investment requests and their CSV downloads.
type MetricsHandler struct {
	reportService reports.ReportService
}

func NewMetricsHandler(reportService reports.ReportService) *MetricsHandler {
	return &MetricsHandler{reportService: reportService}
}

func (h *MetricsHandler) HandleGetUserMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	logger.FromContext(r.Context()).Info("Handling GetUserMetrics")

	metrics, err := h.reportService.GetUserMetrics(r.Context(), userID)
	if err != nil {
		if errors.Is(err, reports.ErrUserNotFound) {
			utils.SendJSONError(w, "User not found in records", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error computing user metrics", "error", err)
		utils.SendJSONError(w, "Error computing metrics", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

// parseReportFilters extracts the date range and payment status filters.
// start+end form an inclusive range; start alone matches that date exactly;
// neither means no date filtering. Status "All" or absent is a no-op.
func parseReportFilters(r *http.Request) (*reports.DateFilter, string, error) {
	q := r.URL.Query()
	startStr := q.Get("start")
	endStr := q.Get("end")
	status := q.Get("status")

	if startStr == "" && endStr != "" {
		return nil, "", fmt.Errorf("end supplied without start")
	}
	if startStr == "" {
		return nil, status, nil
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, "", fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", startStr)
	}
	filter := &reports.DateFilter{Start: start}
	if endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return nil, "", fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", endStr)
		}
		if end.Before(start) {
			return nil, "", fmt.Errorf("end date precedes start date")
		}
		filter.End = end
	}
	return filter, status, nil
}

func (h *MetricsHandler) HandleGetUserReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	filter, status, err := parseReportFilters(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.FromContext(r.Context()).Info("Handling GetUserReport", "status", status)

	report, err := h.reportService.GetUserReport(r.Context(), userID, filter, status)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error building user report", "error", err)
		utils.SendJSONError(w, "Error building report", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *MetricsHandler) HandleExportUserReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	filter, status, err := parseReportFilters(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reportService.GetUserReport(r.Context(), userID, filter, status)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error building report for export", "error", err)
		utils.SendJSONError(w, "Error building report", http.StatusServiceUnavailable)
		return
	}

	payload, err := reports.ReportCSV(report)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error serializing report CSV", "error", err)
		utils.SendJSONError(w, "Error generating CSV", http.StatusInternalServerError)
		return
	}
	sendCSV(w, fmt.Sprintf("%s_profit_data.csv", userID), payload)
}

func (h *MetricsHandler) HandleGetReinvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	logger.FromContext(r.Context()).Info("Handling GetReinvestments")

	entries, err := h.reportService.GetUserReinvestments(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error retrieving re-investments", "error", err)
		utils.SendJSONError(w, "Error retrieving re-investments", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *MetricsHandler) HandleExportReinvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	entries, err := h.reportService.GetUserReinvestments(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error retrieving re-investments for export", "error", err)
		utils.SendJSONError(w, "Error retrieving re-investments", http.StatusServiceUnavailable)
		return
	}

	payload, err := reports.ReinvestmentsCSV(entries)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error serializing re-investments CSV", "error", err)
		utils.SendJSONError(w, "Error generating CSV", http.StatusInternalServerError)
		return
	}
	sendCSV(w, fmt.Sprintf("%s_reinvestment_data.csv", userID), payload)
}

func (h *MetricsHandler) HandleExportCharges(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	metrics, err := h.reportService.GetUserMetrics(r.Context(), userID)
	if err != nil {
		if errors.Is(err, reports.ErrUserNotFound) {
			utils.SendJSONError(w, "User not found in records", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error retrieving charges for export", "error", err)
		utils.SendJSONError(w, "Error retrieving charges", http.StatusServiceUnavailable)
		return
	}

	payload, err := reports.ChargesCSV(metrics.PendingCharges)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error serializing charges CSV", "error", err)
		utils.SendJSONError(w, "Error generating CSV", http.StatusInternalServerError)
		return
	}
	sendCSV(w, fmt.Sprintf("%s_charges_data.csv", userID), payload)
}

func sendCSV(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(payload)
}

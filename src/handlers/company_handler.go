package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/models"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/reports"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// CompanyHandler serves the company-wide aggregates and chart series shown
// alongside every investor's personal figures.
type CompanyHandler struct {
	reportService reports.ReportService
}

func NewCompanyHandler(reportService reports.ReportService) *CompanyHandler {
	return &CompanyHandler{reportService: reportService}
}

func (h *CompanyHandler) HandleGetCompanyTotals(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("Handling GetCompanyTotals")

	totals, err := h.reportService.GetCompanyTotals(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error computing company totals", "error", err)
		utils.SendJSONError(w, "Error computing company totals", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(totals)
}

func (h *CompanyHandler) HandleGetProfitSeries(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("Handling GetProfitSeries")

	series, err := h.reportService.GetCompanyProfitSeries(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error computing profit series", "error", err)
		utils.SendJSONError(w, "Error computing profit series", http.StatusServiceUnavailable)
		return
	}
	if series == nil {
		series = []models.ProfitPoint{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(series)
}

func (h *CompanyHandler) HandleGetInvestmentVsProfit(w http.ResponseWriter, r *http.Request) {
	selectedUser := r.URL.Query().Get("user_id")
	logger.FromContext(r.Context()).Info("Handling GetInvestmentVsProfit", "selectedUser", selectedUser)

	comparisons, err := h.reportService.GetInvestmentVsProfit(r.Context(), selectedUser)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error computing investment comparison", "error", err)
		utils.SendJSONError(w, "Error computing investment comparison", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comparisons)
}

package report

import (
	"net/http"
	"strconv"
	"strings"

	"funnel-analytics/utils"
)

// GetInsights serves GET /v1/insights. A bundle built from partial inputs is
// still returned, flagged through its degraded_inputs field.
func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	from := strings.TrimSpace(params.Get("from"))
	until := strings.TrimSpace(params.Get("until"))

	if (from != "" && !utils.IsValidDate(from)) || (until != "" && !utils.IsValidDate(until)) {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.REPORT_INVALID_REQUEST_DATA)
		return
	}

	rng := utils.ParseDateRange(from, until, h.now())
	result := h.insights.Generate(r.Context(), rng)
	if !result.OK() && len(result.Value.Degraded) == 0 {
		h.logger.Error().Str("error", result.Error).Msg("insights generation failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.INSIGHTS_GENERATION_FAILED)
		return
	}

	message := ""
	if len(result.Value.Degraded) > 0 {
		message = "Insights generated from partial data: " + strings.Join(result.Value.Degraded, ", ")
	}
	utils.SendResponse(w, http.StatusOK, message, result.Value, utils.NO_INTERNAL_ERROR)
}

// GetSnapshots serves GET /v1/insights/snapshots. An invalid limit falls back
// to the archive default.
func (h *Handlers) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		utils.SendResponse(w, http.StatusServiceUnavailable, "", nil, utils.SNAPSHOTS_NOT_CONFIGURED)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	snapshots, err := h.snapshots.ListSnapshots(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list insight snapshots")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_SNAPSHOTS_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", snapshots, utils.NO_INTERNAL_ERROR)
}

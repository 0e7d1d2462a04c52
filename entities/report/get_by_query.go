package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"funnel-analytics/schemas"
	"funnel-analytics/utils"
)

type reportQuery struct {
	Type     string `validate:"required,oneof=conversion sources bottlenecks attribution trends summary"`
	From     string `validate:"omitempty,report_date"`
	Until    string `validate:"omitempty,report_date"`
	SourceID int64  `validate:"omitempty,gt=0"`
	Model    string `validate:"omitempty,max=64"`
}

func parseReportQuery(r *http.Request) (reportQuery, error) {
	params := r.URL.Query()

	query := reportQuery{
		Type:  strings.ToLower(strings.TrimSpace(params.Get("type"))),
		From:  strings.TrimSpace(params.Get("from")),
		Until: strings.TrimSpace(params.Get("until")),
		Model: strings.ToLower(strings.TrimSpace(params.Get("model"))),
	}

	if raw := strings.TrimSpace(params.Get("source_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return query, errors.New("source_id must be a positive integer")
		}
		query.SourceID = id
	}

	return query, utils.ValidateStruct(query)
}

// GetByQuery serves GET /v1/reports. Only successful reports are cached.
func (h *Handlers) GetByQuery(w http.ResponseWriter, r *http.Request) {
	query, err := parseReportQuery(r)
	if err != nil {
		h.logger.Debug().Err(err).Str("query", r.URL.RawQuery).Msg("invalid report query")
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.REPORT_INVALID_REQUEST_DATA)
		return
	}

	model := ""
	if query.Type == schemas.REPORT_TYPE_ATTRIBUTION {
		model = query.Model
	}
	key := CacheKey(query.Type, query.From, query.Until, query.SourceID, model)

	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("X-Cache", "HIT")
		utils.SendResponse(w, http.StatusOK, "", json.RawMessage(cached), utils.NO_INTERNAL_ERROR)
		return
	}

	rng := utils.ParseDateRange(query.From, query.Until, h.now())
	data, err := h.runReport(r.Context(), query, rng)
	if err != nil {
		h.logger.Error().Err(err).Str("type", query.Type).Msg("report failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.REPORT_QUERY_FAILED)
		return
	}

	if encoded, err := json.Marshal(data); err == nil {
		h.cache.Set(r.Context(), key, encoded)
	}

	w.Header().Set("X-Cache", "MISS")
	utils.SendResponse(w, http.StatusOK, "", data, utils.NO_INTERNAL_ERROR)
}

func (h *Handlers) runReport(ctx context.Context, query reportQuery, rng schemas.DateRange) (any, error) {
	switch query.Type {
	case schemas.REPORT_TYPE_CONVERSION:
		var sourceID *int64
		if query.SourceID > 0 {
			sourceID = &query.SourceID
		}
		return outcome(h.engine.CalculateConversionRates(ctx, rng, sourceID))
	case schemas.REPORT_TYPE_SOURCES:
		return outcome(h.engine.GetLeadSourcePerformance(ctx, rng))
	case schemas.REPORT_TYPE_BOTTLENECKS:
		return outcome(h.engine.IdentifyBottlenecks(ctx, rng))
	case schemas.REPORT_TYPE_ATTRIBUTION:
		return outcome(h.engine.CalculateRevenueAttribution(ctx, rng, query.Model))
	case schemas.REPORT_TYPE_TRENDS:
		return outcome(h.engine.GetWeeklyTrends(ctx, rng))
	case schemas.REPORT_TYPE_SUMMARY:
		return outcome(h.engine.GenerateComprehensiveInsights(ctx, rng))
	}
	return nil, errors.New("unknown report type: " + query.Type)
}

func outcome[T any](result schemas.Result[T]) (any, error) {
	if !result.OK() {
		return nil, errors.New(result.Error)
	}
	return result.Value, nil
}

package report

import (
	"encoding/json"
	"net/http"

	"funnel-analytics/schemas"
	"funnel-analytics/utils"
)

const MAX_TRACK_BODY_BYTES = 64 << 10

type trackLeadSourceRequest struct {
	Email      string                      `json:"email" validate:"required,email"`
	SourceName string                      `json:"source_name" validate:"required,max=255"`
	Metadata   schemas.AttributionMetadata `json:"metadata"`
}

type trackLeadSourceResponse struct {
	Tracked bool `json:"tracked"`
}

// TrackLeadSource serves POST /v1/lead-sources/track.
func (h *Handlers) TrackLeadSource(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_TRACK_BODY_BYTES)

	var request trackLeadSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEAD_SOURCE_INVALID_REQUEST_DATA)
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		h.logger.Debug().Err(err).Msg("invalid lead source payload")
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.LEAD_SOURCE_INVALID_REQUEST_DATA)
		return
	}

	result := h.engine.TrackLeadSource(r.Context(), request.Email, request.SourceName, request.Metadata)
	if !result.OK() {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.LEAD_SOURCE_TRACKING_FAILED)
		return
	}

	utils.SendResponse(w, http.StatusOK, "Lead source tracked", trackLeadSourceResponse{Tracked: result.Value}, utils.NO_INTERNAL_ERROR)
}

package utils

import "fmt"

const (
	NO_INTERNAL_ERROR = iota
	REPORT_INVALID_REQUEST_DATA
	REPORT_QUERY_FAILED
	INSIGHTS_GENERATION_FAILED
	LEAD_SOURCE_INVALID_REQUEST_DATA
	LEAD_SOURCE_TRACKING_FAILED
	SNAPSHOTS_NOT_CONFIGURED
	CANNOT_FIND_SNAPSHOTS_IN_MONGODB
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("An internal server error occurred. Please try again later (Code: %d)", internalErrorCode)
}

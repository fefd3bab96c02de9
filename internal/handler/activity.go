package handler

import (
	"net/http"

	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// ActivityResponse lists a user's journaled farm events, newest first
type ActivityResponse struct {
	UID     string           `json:"uid"`
	Entries []eventlog.Entry `json:"entries"`
}

// HandleActivity returns the recent activity of a user, including raids suffered
// @Summary Recent activity
// @Description Journaled farm events the user acted in or was targeted by.
// @Tags account
// @Produce json
// @Param uid query string true "User ID"
// @Param limit query int false "Maximum entries (default 20, max 100)"
// @Success 200 {object} ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /farm/activity [get]
func HandleActivity(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := GetUIDParam(r, w)
		if !ok {
			return
		}
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", eventlog.DefaultActivityLimit)
		if !ok {
			return
		}

		entries, err := svc.RecentActivity(r.Context(), uid, limit)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgOperationFailed, "operation", "activity", "error", err)
			status, msg := mapServiceError(err)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, ActivityResponse{UID: uid, Entries: entries})
	}
}

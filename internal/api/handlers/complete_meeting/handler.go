package complete_meeting

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgNotFound         = "встреча не найдена"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgCannotComplete   = "встреча не может быть завершена"
)

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/meetings/{meetingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meetingIDStr := vars["meetingId"]

	meetingID, err := strconv.ParseInt(meetingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /meetings/{id}/complete - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /meetings/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Complete(r.Context(), meetingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("PATCH /meetings/{id}/complete - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("PATCH /meetings/{id}/complete - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, meetings.ErrCannotComplete):
			h.logger.Warn("PATCH /meetings/{id}/complete - Cannot complete: meeting_id=%d", meetingID)
			handlers.RespondBadRequest(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /meetings/{id}/complete - Failed to complete meeting: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /meetings/{id}/complete - Meeting completed: meeting_id=%d, user_id=%d",
		meetingID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

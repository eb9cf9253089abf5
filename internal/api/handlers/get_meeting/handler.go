package get_meeting

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

// Handle GET /api/v1/meetings/{meetingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meetingIDStr := vars["meetingId"]

	meetingID, err := strconv.ParseInt(meetingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /meetings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	meeting, err := h.service.GetByID(r.Context(), meetingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("GET /meetings/{id} - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("GET /meetings/{id} - Access denied: meeting_id=%d, user_id=%d", meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /meetings/{id} - Failed to get meeting: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /meetings/{id} - Meeting retrieved: meeting_id=%d, user_id=%d", meetingID, userID)
	handlers.RespondJSON(w, http.StatusOK, meeting)
}

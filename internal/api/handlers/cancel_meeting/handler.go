package cancel_meeting

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings"
)

const (
	msgInvalidMeetingID   = "некорректный ID встречи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "встреча не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "встреча не может быть отменена"
	msgInvalidReason      = "некорректная причина отмены"
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

// Handle PATCH /api/v1/meetings/{meetingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meetingIDStr := vars["meetingId"]

	meetingID, err := strconv.ParseInt(meetingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /meetings/{id}/cancel - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /meetings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /meetings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), meetingID, userID, req.Reason())
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, meetings.ErrCannotCancel):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Cannot cancel: meeting_id=%d", meetingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Invalid reason: meeting_id=%d: %v", meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("PATCH /meetings/{id}/cancel - Failed to cancel meeting: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /meetings/{id}/cancel - Meeting cancelled: meeting_id=%d, user_id=%d",
		meetingID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

package reschedule_meeting

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
)

const (
	msgInvalidMeetingID    = "некорректный ID встречи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound            = "встреча не найдена"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgCannotReschedule    = "встреча не может быть перенесена"
	msgSlotTaken           = "выбранный временной слот уже занят"
	msgOutsideAvailability = "слот вне рабочих окон консультанта"
	msgBlockedRange        = "консультант недоступен в выбранное время"
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

// Handle PATCH /api/v1/meetings/{meetingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meetingIDStr := vars["meetingId"]

	meetingID, err := strconv.ParseInt(meetingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /meetings/{id}/reschedule - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /meetings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /meetings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, startTime, err := req.Parse()
	if err != nil {
		h.logger.Warn("PATCH /meetings/{id}/reschedule - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	meeting, err := h.service.Reschedule(r.Context(), meetingID, userID, date, startTime)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, meetings.ErrCannotReschedule):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Cannot reschedule: meeting_id=%d", meetingID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, validate_booking.ErrOutsideAvailability):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Outside availability: meeting_id=%d, date=%s %s",
				meetingID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, validate_booking.ErrBlockedRange):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Blocked range: meeting_id=%d, date=%s %s",
				meetingID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgBlockedRange)

		case errors.Is(err, meetings.ErrSlotTaken):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Slot taken: meeting_id=%d, date=%s %s",
				meetingID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("PATCH /meetings/{id}/reschedule - Invalid input: meeting_id=%d: %v", meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("PATCH /meetings/{id}/reschedule - Failed to reschedule meeting: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /meetings/{id}/reschedule - Meeting rescheduled: meeting_id=%d, user_id=%d",
		meetingID, userID)
	handlers.RespondJSON(w, http.StatusOK, meeting)
}

package create_meeting

import (
	"errors"
	"net/http"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	createMeeting "github.com/m04kA/CRM-SchedulingService/internal/usecase/create_meeting"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgConsultantNotFound    = "консультант не найден"
	msgConsultantNotEligible = "пользователь не может проводить встречи"
	msgLeadNotFound          = "лид не найден"
	msgTooLateToBook         = "слишком поздно для бронирования этого слота"
	msgSlotTaken             = "выбранный временной слот уже занят"
	msgOutsideAvailability   = "слот вне рабочих окон консультанта"
	msgBlockedRange          = "консультант недоступен в выбранное время"
)

type Handler struct {
	useCase CreateMeetingUseCase
	logger  Logger
}

func NewHandler(useCase CreateMeetingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/meetings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /meetings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /meetings - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createMeeting.ErrConsultantNotFound):
			h.logger.Warn("POST /meetings - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createMeeting.ErrConsultantNotEligible):
			h.logger.Warn("POST /meetings - Consultant not eligible: consultant_id=%d", req.ConsultantID)
			handlers.RespondBadRequest(w, msgConsultantNotEligible)

		case errors.Is(err, createMeeting.ErrLeadNotFound):
			h.logger.Warn("POST /meetings - Lead not found: lead_id=%d", req.LeadID)
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, createMeeting.ErrTooLateToBook):
			h.logger.Warn("POST /meetings - Too late to book: consultant_id=%d, date=%s %s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, validate_booking.ErrOutsideAvailability):
			h.logger.Warn("POST /meetings - Outside availability: consultant_id=%d, date=%s %s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, validate_booking.ErrBlockedRange):
			h.logger.Warn("POST /meetings - Blocked range: consultant_id=%d, date=%s %s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgBlockedRange)

		case errors.Is(err, createMeeting.ErrSlotTaken):
			h.logger.Warn("POST /meetings - Slot taken: consultant_id=%d, date=%s %s",
				req.ConsultantID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createMeeting.ErrInvalidInput):
			h.logger.Warn("POST /meetings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /meetings - Failed to create meeting: consultant_id=%d, lead_id=%d, error=%v",
				req.ConsultantID, req.LeadID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /meetings - Meeting created: meeting_id=%d, consultant_id=%d, lead_id=%d",
		result.ID, req.ConsultantID, req.LeadID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

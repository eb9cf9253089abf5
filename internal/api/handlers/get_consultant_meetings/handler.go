package get_consultant_meetings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings/models"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidLeadID       = "некорректный ID лида"
	msgInvalidFromDate     = "некорректная дата начала периода, ожидается YYYY-MM-DD"
	msgInvalidToDate       = "некорректная дата конца периода, ожидается YYYY-MM-DD"
	msgInvalidFilter       = "некорректные параметры фильтра"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
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

// Handle GET /api/v1/consultants/{consultantId}/meetings
// Query params: leadId, from, to (YYYY-MM-DD), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]

	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/meetings - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultants/{id}/meetings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetConsultantMeetingsRequest{
		ConsultantID: consultantID,
		UserID:       userID,
	}

	query := r.URL.Query()

	if leadIDStr := query.Get("leadId"); leadIDStr != "" {
		leadID, err := strconv.ParseInt(leadIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/meetings - Invalid lead ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLeadID)
			return
		}
		req.LeadID = &leadID
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := types.ParseDate(fromStr)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/meetings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.StartDate = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := types.ParseDate(toStr)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/meetings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		req.EndDate = &to
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := query.Get("includeInactive"); includeStr != "" {
		req.IncludeInactive = includeStr == "true"
	}

	result, err := h.service.GetConsultantMeetings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("GET /consultants/{id}/meetings - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/meetings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /consultants/{id}/meetings - Failed to get meetings: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/meetings - Meetings retrieved: consultant_id=%d, count=%d",
		consultantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

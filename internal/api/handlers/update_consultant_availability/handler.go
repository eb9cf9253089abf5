package update_consultant_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/service/availability"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWindow       = "некорректное окно доступности"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/consultants/{consultantId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]

	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /consultants/{id}/availability - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /consultants/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultants/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	windows, err := h.service.ReplaceWindows(r.Context(), consultantID, userID, req.Windows)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /consultants/{id}/availability - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidWindow):
			h.logger.Warn("PUT /consultants/{id}/availability - Invalid window: consultant_id=%d: %v",
				consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("PUT /consultants/{id}/availability - Failed to replace windows: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultants/{id}/availability - Schedule replaced: consultant_id=%d, windows=%d",
		consultantID, len(windows))
	handlers.RespondJSON(w, http.StatusOK, &UpdateAvailabilityResponse{
		ConsultantID: consultantID,
		Windows:      windows,
	})
}

package delete_block

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
	msgInvalidBlockID      = "некорректный ID блокировки"
	msgNotFound            = "блокировка не найдена"
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

// Handle DELETE /api/v1/consultants/{consultantId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /consultants/{id}/blocks/{blockId} - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /consultants/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /consultants/{id}/blocks/{blockId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteBlock(r.Context(), consultantID, blockID, userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockNotFound):
			h.logger.Warn("DELETE /consultants/{id}/blocks/{blockId} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /consultants/{id}/blocks/{blockId} - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /consultants/{id}/blocks/{blockId} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /consultants/{id}/blocks/{blockId} - Block deleted: block_id=%d, consultant_id=%d",
		blockID, consultantID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package create_block

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
	msgInvalidBlock        = "некорректный период блокировки"
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

// Handle POST /api/v1/consultants/{consultantId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultantIDStr := vars["consultantId"]

	consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /consultants/{id}/blocks - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /consultants/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultants/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.CreateBlock(r.Context(), consultantID, userID, req.ToDomainBlock())
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /consultants/{id}/blocks - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidBlock):
			h.logger.Warn("POST /consultants/{id}/blocks - Invalid block: consultant_id=%d: %v",
				consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /consultants/{id}/blocks - Failed to create block: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultants/{id}/blocks - Block created: block_id=%d, consultant_id=%d",
		block.ID, consultantID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}

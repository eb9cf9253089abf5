package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/CRM-SchedulingService/internal/api/handlers"
	getDaySlots "github.com/m04kA/CRM-SchedulingService/internal/usecase/get_day_slots"
)

const (
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidAdvanceHours  = "некорректное значение minAdvanceHours"
	msgNegativeAdvanceHours = "minAdvanceHours не может быть отрицательным"
)

type Handler struct {
	useCase           GetDaySlotsUseCase
	defaultMinAdvance int
	logger            Logger
}

func NewHandler(useCase GetDaySlotsUseCase, defaultMinAdvance int, logger Logger) *Handler {
	return &Handler{
		useCase:           useCase,
		defaultMinAdvance: defaultMinAdvance,
		logger:            logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD), minAdvanceHours (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	minAdvanceHours := h.defaultMinAdvance
	if advanceStr := r.URL.Query().Get("minAdvanceHours"); advanceStr != "" {
		parsed, err := strconv.Atoi(advanceStr)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid minAdvanceHours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAdvanceHours)
			return
		}
		if parsed < 0 {
			h.logger.Warn("GET /slots - Negative minAdvanceHours: %d", parsed)
			handlers.RespondBadRequest(w, msgNegativeAdvanceHours)
			return
		}
		minAdvanceHours = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{
		Date:            dateStr,
		MinAdvanceHours: minAdvanceHours,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /slots - Failed to resolve slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots resolved: date=%s, total=%d, available=%d",
		dateStr, len(result.Slots), result.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}

package create_meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	meetingRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/meeting"
	leadClient "github.com/m04kA/CRM-SchedulingService/internal/integrations/leadservice"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// UseCase use case для создания встречи
type UseCase struct {
	meetingRepo     MeetingRepository
	userRepo        UserRepository
	leadClient      LeadServiceClient
	validator       BookingValidator
	txManager       TransactionManager
	timeProvider    TimeProvider
	minAdvanceHours int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	meetingRepo MeetingRepository,
	userRepo UserRepository,
	leadClient LeadServiceClient,
	validator BookingValidator,
	txManager TransactionManager,
	minAdvanceHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		meetingRepo:     meetingRepo,
		userRepo:        userRepo,
		leadClient:      leadClient,
		validator:       validator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		minAdvanceHours: minAdvanceHours,
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи
// Проверка доступности и вставка выполняются в сериализуемой транзакции;
// финальную гарантию от двойного бронирования дает exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateMeeting: consultant=%d, lead=%d, date=%s, time=%s",
		req.ConsultantID, req.LeadID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateMeeting: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем консультанта
	consultant, err := uc.userRepo.GetByID(ctx, req.ConsultantID)
	if err != nil {
		uc.logger.Warn("CreateMeeting: consultant id=%d not found: %v", req.ConsultantID, err)
		return nil, ErrConsultantNotFound
	}
	if !consultant.CanHoldMeetings() {
		uc.logger.Warn("CreateMeeting: user id=%d cannot hold meetings (role=%s, status=%s)",
			consultant.ID, consultant.Role, consultant.Status)
		return nil, ErrConsultantNotEligible
	}

	// 4. Получаем лида для денормализации данных
	lead, err := uc.leadClient.GetLead(ctx, req.LeadID)
	if err != nil {
		if errors.Is(err, leadClient.ErrLeadNotFound) {
			uc.logger.Warn("CreateMeeting: lead id=%d not found", req.LeadID)
			return nil, ErrLeadNotFound
		}
		uc.logger.Error("CreateMeeting: failed to get lead id=%d: %v", req.LeadID, err)
		return nil, fmt.Errorf("%w: failed to get lead: %v", ErrInternal, err)
	}

	// 5. Строим интервал встречи в локальной зоне
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	startAt := types.BuildLocalInstant(req.Date, startMinutes/60, startMinutes%60, 0, 0)
	endAt := startAt.Add(domain.MeetingDurationMinutes * time.Minute)

	// 6. Проверяем минимальное время до начала встречи
	minAllowed := now.Add(time.Duration(uc.minAdvanceHours) * time.Hour)
	if startAt.Before(minAllowed) {
		uc.logger.Warn("CreateMeeting: too late to book %s (min advance %dh)",
			startAt.Format(time.RFC3339), uc.minAdvanceHours)
		return nil, fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, uc.minAdvanceHours)
	}

	var result *domain.Meeting

	// 7. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Повторная авторитетная проверка: окна и блокировки консультанта.
		// Конфликты встреч валидатор по контракту не проверяет
		if err := uc.validator.Execute(txCtx, &validate_booking.Request{
			ConsultantID: req.ConsultantID,
			StartAt:      startAt,
			EndAt:        endAt,
		}); err != nil {
			return err
		}

		// 7.2. Проверяем конфликты со встречами под блокировкой FOR UPDATE
		meetings, err := uc.meetingRepo.GetInRange(txCtx, []int64{req.ConsultantID}, startAt, endAt)
		if err != nil {
			uc.logger.Error("CreateMeeting: failed to get meetings: %v", err)
			return fmt.Errorf("%w: failed to get meetings: %v", ErrInternal, err)
		}
		for _, m := range meetings {
			if m.ConflictsWith(startAt, endAt) {
				uc.logger.Warn("CreateMeeting: slot taken by meeting id=%d", m.ID)
				return ErrSlotTaken
			}
		}

		// 7.3. Создаем встречу с денормализацией данных лида
		meeting := &domain.Meeting{
			ConsultantID: req.ConsultantID,
			LeadID:       req.LeadID,
			StartAt:      startAt,
			EndAt:        endAt,
			Status:       domain.StatusScheduled,
			LeadName:     lead.Name,
			LeadCompany:  lead.Company,
			Notes:        req.Notes,
		}

		created, err := uc.meetingRepo.Create(txCtx, meeting)
		if err != nil {
			// Exclusion constraint сработал - гонку выиграла другая транзакция
			if errors.Is(err, meetingRepo.ErrMeetingConflict) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateMeeting: failed to create meeting: %v", err)
			return fmt.Errorf("%w: failed to create meeting: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateMeeting: successfully created meeting id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		ConsultantID: result.ConsultantID,
		LeadID:       result.LeadID,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       string(result.Status),
		LeadName:     result.LeadName,
		LeadCompany:  result.LeadCompany,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}
	if req.LeadID <= 0 {
		return fmt.Errorf("%w: leadID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/block"
	userRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// Service сервис управления расписанием консультантов: недельные окна и блокировки
type Service struct {
	availRepo AvailabilityRepository
	blockRepo BlockRepository
	userRepo  UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availRepo AvailabilityRepository,
	blockRepo BlockRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availRepo: availRepo,
		blockRepo: blockRepo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetConsultantAvailability возвращает недельные окна и блокировки консультанта
// Доступна самому консультанту и администраторам
func (s *Service) GetConsultantAvailability(ctx context.Context, consultantID, userID int64) (*models.ConsultantAvailabilityResponse, error) {
	s.logger.Info("GetConsultantAvailability: consultant=%d, user=%d", consultantID, userID)

	if err := s.checkConsultantAccess(ctx, consultantID, userID); err != nil {
		return nil, err
	}

	windows, err := s.availRepo.GetByConsultant(ctx, consultantID)
	if err != nil {
		s.logger.Error("GetConsultantAvailability: failed to fetch windows for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantAvailability - repository error: %v", ErrInternal, err)
	}

	blocks, err := s.blockRepo.GetByConsultant(ctx, consultantID)
	if err != nil {
		s.logger.Error("GetConsultantAvailability: failed to fetch blocks for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantAvailability - repository error: %v", ErrInternal, err)
	}

	return &models.ConsultantAvailabilityResponse{
		ConsultantID: consultantID,
		Windows:      models.FromDomainSlots(windows),
		Blocks:       models.FromDomainBlocks(blocks),
	}, nil
}

// ReplaceWindows атомарно заменяет недельное расписание консультанта
// Старые окна удаляются и создаются новые в одной транзакции,
// чтобы резолвер слотов не увидел частично обновленное расписание
func (s *Service) ReplaceWindows(ctx context.Context, consultantID, userID int64, inputs []models.WindowInput) ([]models.WindowResponse, error) {
	s.logger.Info("ReplaceWindows: consultant=%d, user=%d, windows=%d", consultantID, userID, len(inputs))

	if err := s.checkConsultantAccess(ctx, consultantID, userID); err != nil {
		return nil, err
	}

	slots := make([]*domain.AvailabilitySlot, 0, len(inputs))
	for i, in := range inputs {
		startTime, err := types.NewTimeStringFromString(in.StartTime)
		if err != nil {
			s.logger.Warn("ReplaceWindows: invalid start time %q in window %d: %v", in.StartTime, i, err)
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}
		endTime, err := types.NewTimeStringFromString(in.EndTime)
		if err != nil {
			s.logger.Warn("ReplaceWindows: invalid end time %q in window %d: %v", in.EndTime, i, err)
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}

		slot := &domain.AvailabilitySlot{
			ConsultantID: consultantID,
			DayOfWeek:    in.DayOfWeek,
			StartTime:    startTime,
			EndTime:      endTime,
			IsActive:     in.IsActive,
		}
		if err := slot.Validate(); err != nil {
			s.logger.Warn("ReplaceWindows: invalid window %d for consultant=%d: %v", i, consultantID, err)
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}
		slots = append(slots, slot)
	}

	created := make([]*domain.AvailabilitySlot, 0, len(slots))
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.availRepo.DeleteByConsultant(txCtx, consultantID); err != nil {
			return fmt.Errorf("delete windows: %w", err)
		}
		for _, slot := range slots {
			saved, err := s.availRepo.Create(txCtx, slot)
			if err != nil {
				return fmt.Errorf("create window: %w", err)
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceWindows: transaction failed for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: ReplaceWindows - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWindows: consultant=%d schedule replaced, %d windows", consultantID, len(created))
	return models.FromDomainSlots(created), nil
}

// CreateBlock создает разовую блокировку доступности консультанта
func (s *Service) CreateBlock(ctx context.Context, consultantID, userID int64, block *domain.AvailabilityBlock) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: consultant=%d, user=%d, range=[%s, %s]",
		consultantID, userID, block.StartAt, block.EndAt)

	if err := s.checkConsultantAccess(ctx, consultantID, userID); err != nil {
		return nil, err
	}

	block.ConsultantID = consultantID
	if err := block.Validate(); err != nil {
		s.logger.Warn("CreateBlock: invalid block for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	if block.Reason != nil && len(*block.Reason) > domain.MaxBlockReasonLen {
		s.logger.Warn("CreateBlock: reason too long for consultant=%d (%d chars)", consultantID, len(*block.Reason))
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidBlock, domain.MaxBlockReasonLen)
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlock: repository error for consultant=%d: %v", consultantID, err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: block id=%d created for consultant=%d", created.ID, consultantID)
	resp := models.FromDomainBlocks([]*domain.AvailabilityBlock{created})
	return &resp[0], nil
}

// DeleteBlock удаляет блокировку консультанта
func (s *Service) DeleteBlock(ctx context.Context, consultantID, blockID, userID int64) error {
	s.logger.Info("DeleteBlock: consultant=%d, block=%d, user=%d", consultantID, blockID, userID)

	if err := s.checkConsultantAccess(ctx, consultantID, userID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, blockID, consultantID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found for consultant=%d", blockID, consultantID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: block id=%d deleted for consultant=%d", blockID, consultantID)
	return nil
}

// checkConsultantAccess проверяет, что пользователь управляет своим расписанием
// либо является администратором
func (s *Service) checkConsultantAccess(ctx context.Context, consultantID, userID int64) error {
	if consultantID == userID {
		return nil
	}
	return s.checkAdmin(ctx, userID)
}

// checkAdmin проверяет, что пользователь является администратором
func (s *Service) checkAdmin(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdmin - repository error: %v", ErrInternal, err)
	}
	if user.Role != domain.RoleAdmin {
		return ErrAccessDenied
	}
	return nil
}

package meetings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	meetingRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/meeting"
	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings/models"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// Service сервис для работы со встречами
type Service struct {
	meetingRepo MeetingRepository
	userRepo    UserRepository
	validator   BookingValidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	meetingRepo MeetingRepository,
	userRepo UserRepository,
	validator BookingValidator,
	logger Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		validator:   validator,
		logger:      logger,
	}
}

// GetByID получает встречу по ID
// Доступна консультанту, которому назначена встреча, и администраторам
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.MeetingResponse, error) {
	s.logger.Info("GetByID: fetching meeting id=%d for user=%d", id, userID)

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("GetByID: meeting id=%d not found", id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("GetByID: repository error for meeting id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, meeting, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to meeting id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainMeeting(meeting), nil
}

// GetConsultantMeetings получает встречи консультанта с гибкой фильтрацией
func (s *Service) GetConsultantMeetings(ctx context.Context, req *models.GetConsultantMeetingsRequest) (*models.MeetingListResponse, error) {
	s.logger.Info("GetConsultantMeetings: consultant=%d, user=%d", req.ConsultantID, req.UserID)

	if err := s.checkConsultantAccess(ctx, req.ConsultantID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantMeetings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	meetings, err := s.meetingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantMeetings: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantMeetings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantMeetings: fetched %d meetings for consultant=%d", len(meetings), req.ConsultantID)
	return models.FromDomainMeetingList(meetings), nil
}

// Cancel отменяет встречу с указанием причины
// Отменить можно только встречу в статусе SCHEDULED или RESCHEDULED
func (s *Service) Cancel(ctx context.Context, id int64, userID int64, reason string) error {
	s.logger.Info("Cancel: cancelling meeting id=%d by user=%d", id, userID)

	if len(reason) > domain.MaxCancellationReasonLen {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, meeting, userID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to meeting id=%d", userID, id)
		return err
	}

	if !meeting.CanBeCancelled() {
		s.logger.Warn("Cancel: meeting id=%d in status %s cannot be cancelled", id, meeting.Status)
		return ErrCannotCancel
	}

	if err := s.meetingRepo.Cancel(ctx, id, reason); err != nil {
		s.logger.Error("Cancel: failed to cancel meeting id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: meeting id=%d cancelled", id)
	return nil
}

// Complete помечает встречу завершенной
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Complete: completing meeting id=%d by user=%d", id, userID)

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, meeting, userID); err != nil {
		return err
	}

	if !meeting.IsActive() {
		return ErrCannotComplete
	}

	if err := s.meetingRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		s.logger.Error("Complete: failed to update meeting id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Reschedule переносит встречу на новую дату и время
// Новый интервал проходит ту же проверку доступности, что и при создании;
// конфликт с другой встречей ловит exclusion constraint в БД
func (s *Service) Reschedule(ctx context.Context, id int64, userID int64, date time.Time, startTime types.TimeString) (*models.MeetingResponse, error) {
	s.logger.Info("Reschedule: meeting id=%d by user=%d to %s %s", id, userID, date.Format(domain.DateFormat), startTime)

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, meeting, userID); err != nil {
		return nil, err
	}

	if !meeting.CanBeRescheduled() {
		s.logger.Warn("Reschedule: meeting id=%d in status %s cannot be rescheduled", id, meeting.Status)
		return nil, ErrCannotReschedule
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	startAt := types.BuildLocalInstant(date, startMinutes/60, startMinutes%60, 0, 0)
	endAt := startAt.Add(domain.MeetingDurationMinutes * time.Minute)

	if err := s.validator.Execute(ctx, &validate_booking.Request{
		ConsultantID: meeting.ConsultantID,
		StartAt:      startAt,
		EndAt:        endAt,
	}); err != nil {
		s.logger.Warn("Reschedule: new slot rejected for meeting id=%d: %v", id, err)
		return nil, err
	}

	if err := s.meetingRepo.Reschedule(ctx, id, startAt, endAt); err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingConflict) {
			s.logger.Warn("Reschedule: new slot for meeting id=%d is taken", id)
			return nil, ErrSlotTaken
		}
		s.logger.Error("Reschedule: failed to reschedule meeting id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	updated, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: Reschedule - failed to reload meeting: %v", ErrInternal, err)
	}

	s.logger.Info("Reschedule: meeting id=%d moved to %s", id, startAt.Format(time.RFC3339))
	return models.FromDomainMeeting(updated), nil
}

// checkAccess проверяет права пользователя на встречу
// Доступ есть у консультанта встречи и у администраторов
func (s *Service) checkAccess(ctx context.Context, meeting *domain.Meeting, userID int64) error {
	if meeting.ConsultantID == userID {
		return nil
	}
	return s.checkAdmin(ctx, userID)
}

// checkConsultantAccess проверяет права на просмотр расписания консультанта
func (s *Service) checkConsultantAccess(ctx context.Context, consultantID, userID int64) error {
	if consultantID == userID {
		return nil
	}
	return s.checkAdmin(ctx, userID)
}

func (s *Service) checkAdmin(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrAccessDenied
	}
	if user.Role != domain.RoleAdmin {
		return ErrAccessDenied
	}
	return nil
}

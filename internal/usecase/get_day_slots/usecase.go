package get_day_slots

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// msgWeekendClosed сообщение для запросов на выходные дни
// Правило жестко зашито: бизнес не работает по субботам и воскресеньям
const msgWeekendClosed = "встречи по выходным не проводятся"

// UseCase use case для расчета доступных слотов на день
type UseCase struct {
	userRepo     UserRepository
	availRepo    AvailabilityRepository
	blockRepo    BlockRepository
	meetingRepo  MeetingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	availRepo AvailabilityRepository,
	blockRepo BlockRepository,
	meetingRepo MeetingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		availRepo:    availRepo,
		blockRepo:    blockRepo,
		meetingRepo:  meetingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute вычисляет список слотов на указанную дату
//
// Слот доступен, если найдется консультант, у которого: окно (или дефолтное окно
// по fallback правилу) целиком вмещает интервал встречи, нет пересекающейся
// блокировки и нет пересекающейся активной встречи. Консультант назначается
// жадно - первый подходящий в стабильном порядке ростера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: date=%s, minAdvanceHours=%d", req.Date, req.MinAdvanceHours)

	// 1. Валидация входных данных (до обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetDaySlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 2. Выходные дни закрыты для бронирования
	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		uc.logger.Info("GetDaySlots: %s is a weekend, no slots", req.Date)
		return &Response{
			Date:    date,
			Slots:   []Slot{},
			Message: msgWeekendClosed,
		}, nil
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Загружаем ростер активных консультантов
	consultants, err := uc.userRepo.GetActiveConsultants(ctx, domain.SchedulingRoles)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get consultants: %v", err)
		return nil, fmt.Errorf("%w: failed to get consultants: %v", ErrInternal, err)
	}

	if len(consultants) == 0 {
		uc.logger.Info("GetDaySlots: no active consultants, returning empty slot list")
		return &Response{Date: date, Slots: []Slot{}}, nil
	}

	consultantIDs := make([]int64, len(consultants))
	for i, c := range consultants {
		consultantIDs[i] = c.ID
	}

	dayStart := types.BuildLocalInstant(date, 0, 0, 0, 0)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// 5. Загружаем окна, блокировки и встречи параллельно - чтения независимы.
	// Любая ошибка отменяет остальные запросы и роняет весь вызов, частичных
	// результатов не бывает
	var (
		windows      []*domain.AvailabilitySlot
		totalWindows int64
		blocks       []*domain.AvailabilityBlock
		meetings     []*domain.Meeting
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		windows, err = uc.availRepo.GetActiveByDay(gCtx, consultantIDs, int(weekday))
		return err
	})
	g.Go(func() error {
		var err error
		totalWindows, err = uc.availRepo.CountAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.blockRepo.GetInRange(gCtx, consultantIDs, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		meetings, err = uc.meetingRepo.GetInRange(gCtx, consultantIDs, dayStart, dayEnd)
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetDaySlots: failed to load scheduling data: %v", err)
		return nil, fmt.Errorf("%w: failed to load scheduling data: %v", ErrInternal, err)
	}

	// 6. Строим интервалы каждого консультанта с учетом fallback правила.
	// Область действия fallback здесь - вся система: дефолтное окно применяется,
	// только если ни у кого нет ни одного окна (bootstrap пустой инсталляции)
	useFallback := totalWindows == 0
	if useFallback {
		uc.logger.Info("GetDaySlots: no availability slots configured system-wide (%s fallback), using default %s-%s window",
			domain.FallbackScopeSystemWide, domain.DefaultWorkdayStart, domain.DefaultWorkdayEnd)
	}

	intervalsByConsultant, err := buildConsultantIntervals(consultants, windows, useFallback)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to build intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to build intervals: %v", ErrInternal, err)
	}

	blocksByConsultant := groupBlocks(blocks)
	meetingsByConsultant := groupMeetings(meetings)

	// 7. Собираем кандидатов: старты привязаны к началу каждого интервала с шагом
	// в длительность встречи, а не к фиксированной сетке "каждый час ровно"
	candidates := collectCandidateStarts(intervalsByConsultant)

	// 8. Для каждого кандидата находим первого свободного консультанта
	minAllowed := now.Add(time.Duration(req.MinAdvanceHours) * time.Hour)

	slots := make([]Slot, 0, len(candidates))
	availableCount := 0

	for _, startMinutes := range candidates {
		slotTime, err := types.NewTimeStringFromMinutes(startMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format slot time: %v", ErrInternal, err)
		}

		startAt := types.BuildLocalInstant(date, startMinutes/60, startMinutes%60, 0, 0)

		// Слишком близкие слоты остаются в списке, но помечаются недоступными
		// и консультант к ним не прикрепляется
		if startAt.Before(minAllowed) {
			slots = append(slots, Slot{Time: slotTime, Available: false})
			continue
		}

		endAt := startAt.Add(domain.MeetingDurationMinutes * time.Minute)

		consultant := findAvailableConsultant(
			consultants,
			startMinutes,
			startAt,
			endAt,
			intervalsByConsultant,
			blocksByConsultant,
			meetingsByConsultant,
		)

		if consultant == nil {
			slots = append(slots, Slot{Time: slotTime, Available: false})
			continue
		}

		slots = append(slots, Slot{
			Time:           slotTime,
			Available:      true,
			ConsultantID:   &consultant.ID,
			ConsultantName: &consultant.Name,
		})
		availableCount++
	}

	uc.logger.Info("GetDaySlots: date=%s, candidates=%d, available=%d", req.Date, len(slots), availableCount)

	return &Response{
		Date:           date,
		Slots:          slots,
		AvailableCount: availableCount,
	}, nil
}

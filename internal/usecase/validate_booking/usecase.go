package validate_booking

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// UseCase use case повторной проверки бронирования перед записью встречи
//
// Это авторитетная проверка "номинально ли консультант открыт в это время"
// непосредственно перед вставкой Meeting - она закрывает окно гонки между
// показом списка слотов и подтверждением. Конфликты с существующими встречами
// здесь НЕ проверяются: их атомарно гарантирует constraint на уровне хранилища
// при вставке строки
type UseCase struct {
	availRepo AvailabilityRepository
	blockRepo BlockRepository
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availRepo AvailabilityRepository,
	blockRepo BlockRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availRepo: availRepo,
		blockRepo: blockRepo,
		logger:    logger,
	}
}

// Request модель запроса на проверку бронирования
type Request struct {
	ConsultantID int64
	StartAt      time.Time
	EndAt        time.Time
}

// Execute проверяет, что консультант номинально открыт для встречи в указанное время
//
// Возвращает nil при успехе или ошибку-отказ (ErrOutsideAvailability, ErrBlockedRange).
// Длительность проверки - фиксированная длительность встречи: EndAt валидируется
// только на корректность пары, но размер проверяемого интервала от него не зависит
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("ValidateBooking: consultant=%d, start=%s", req.ConsultantID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return err
	}

	// 2. День недели берем из момента начала
	dayOfWeek := int(req.StartAt.Weekday())

	windowEnd := req.StartAt.Add(domain.MeetingDurationMinutes * time.Minute)

	// 3. Загружаем окна на этот день, общее количество окон консультанта
	// и блокировки параллельно
	var (
		windows      []*domain.AvailabilitySlot
		totalWindows int64
		blocks       []*domain.AvailabilityBlock
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		windows, err = uc.availRepo.GetActiveByConsultantAndDay(gCtx, req.ConsultantID, dayOfWeek)
		return err
	})
	g.Go(func() error {
		var err error
		totalWindows, err = uc.availRepo.CountByConsultant(gCtx, req.ConsultantID)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.blockRepo.GetByConsultantInRange(gCtx, req.ConsultantID, req.StartAt, windowEnd)
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("ValidateBooking: failed to load availability data: %v", err)
		return fmt.Errorf("%w: failed to load availability data: %v", ErrInternal, err)
	}

	// 4. Fallback правило здесь per-consultant: дефолтное окно применяется, если
	// у ЭТОГО консультанта нет ни одного окна - в отличие от system-wide триггера
	// резолвера. Расхождение намеренное, см. domain.FallbackScope
	intervals, err := applicableIntervals(windows, totalWindows == 0)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to build intervals: %v", err)
		return fmt.Errorf("%w: failed to build intervals: %v", ErrInternal, err)
	}

	if totalWindows == 0 {
		uc.logger.Info("ValidateBooking: consultant=%d has no configured slots (%s fallback), using default window",
			req.ConsultantID, domain.FallbackScopePerConsultant)
	}

	// 5. Проверяем вхождение в окна для фиксированной длительности встречи
	startMinutes := req.StartAt.Hour()*60 + req.StartAt.Minute()
	if !domain.IntervalsContain(intervals, startMinutes, domain.MeetingDurationMinutes) {
		uc.logger.Warn("ValidateBooking: consultant=%d is outside availability at %s", req.ConsultantID, req.StartAt.Format(time.RFC3339))
		return ErrOutsideAvailability
	}

	// 6. Проверяем пересечение с блокировками
	for _, b := range blocks {
		if b.Blocks(req.StartAt, windowEnd) {
			uc.logger.Warn("ValidateBooking: consultant=%d is blocked at %s (block id=%d)",
				req.ConsultantID, req.StartAt.Format(time.RFC3339), b.ID)
			return ErrBlockedRange
		}
	}

	uc.logger.Info("ValidateBooking: consultant=%d is open at %s", req.ConsultantID, req.StartAt.Format(time.RFC3339))
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}
	return nil
}

// applicableIntervals строит применимый набор интервалов консультанта
func applicableIntervals(windows []*domain.AvailabilitySlot, useFallback bool) ([]domain.MinuteInterval, error) {
	if useFallback {
		return []domain.MinuteInterval{domain.DefaultWorkdayInterval()}, nil
	}

	intervals := make([]domain.MinuteInterval, 0, len(windows))
	for _, w := range windows {
		interval, err := w.Interval()
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

package domain

// Default scheduling values
const (
	// MeetingDurationMinutes фиксированная длительность встречи
	// Сервис работает с единственной длительностью, сетка слотов строится с этим шагом
	MeetingDurationMinutes = 60

	// DefaultMinAdvanceHours минимальное время до начала встречи при бронировании
	DefaultMinAdvanceHours = 2

	// DefaultWorkdayStart начало рабочего дня по умолчанию (fallback, когда окна не настроены)
	DefaultWorkdayStart = "09:00"

	// DefaultWorkdayEnd конец рабочего дня по умолчанию
	DefaultWorkdayEnd = "17:00"
)

// Business validation constants
const (
	MinDayOfWeek              = 0 // воскресенье
	MaxDayOfWeek              = 6 // суббота
	MaxCancellationReasonLen  = 500
	MaxBlockReasonLen         = 500
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// FallbackScope область действия fallback-правила "окна не настроены -> 09:00-17:00"
//
// Резолвер и валидатор применяют одно и то же дефолтное окно, но триггер у них разный:
// резолвер смотрит на количество окон во всей системе (bootstrap пустой инсталляции),
// валидатор - на количество окон конкретного консультанта. Расхождение намеренно
// сохранено, области вынесены в именованные константы, чтобы их нельзя было
// молча унифицировать
type FallbackScope string

const (
	// FallbackScopeSystemWide fallback включается, только если во всей системе нет ни одного окна
	FallbackScopeSystemWide FallbackScope = "system_wide"

	// FallbackScopePerConsultant fallback включается, если у консультанта нет ни одного окна
	FallbackScopePerConsultant FallbackScope = "per_consultant"
)

// SchedulingRoles роли пользователей, участвующих в расписании встреч
var SchedulingRoles = []UserRole{RoleConsultant, RoleSDR}

// ActiveMeetingStatuses статусы встреч, занимающих время консультанта
// Используется для фильтрации при подсчете конфликтов
var ActiveMeetingStatuses = []MeetingStatus{
	StatusScheduled,
	StatusRescheduled,
}

// InactiveMeetingStatuses статусы встреч, не занимающих время
var InactiveMeetingStatuses = []MeetingStatus{
	StatusCompleted,
	StatusCancelled,
}

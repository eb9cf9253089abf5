package get_day_slots

import (
	"sort"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// buildConsultantIntervals строит интервалы доступности каждого консультанта
//
// При useFallback каждый консультант получает единственное дефолтное окно 09:00-17:00.
// Без fallback консультант без собственных окон на этот день не получает ничего -
// и, соответственно, нулевую доступность
func buildConsultantIntervals(
	consultants []*domain.Consultant,
	windows []*domain.AvailabilitySlot,
	useFallback bool,
) (map[int64][]domain.MinuteInterval, error) {
	result := make(map[int64][]domain.MinuteInterval, len(consultants))

	if useFallback {
		for _, c := range consultants {
			result[c.ID] = []domain.MinuteInterval{domain.DefaultWorkdayInterval()}
		}
		return result, nil
	}

	for _, w := range windows {
		interval, err := w.Interval()
		if err != nil {
			return nil, err
		}
		result[w.ConsultantID] = append(result[w.ConsultantID], interval)
	}

	return result, nil
}

// collectCandidateStarts собирает кандидатов на время начала по всем консультантам
//
// Старты генерируются от начала каждого интервала с шагом в длительность встречи,
// пока встреча целиком помещается в интервал: окно 09:15-12:15 дает кандидатов
// 09:15, 10:15, 11:15. Результат дедуплицирован и отсортирован по возрастанию
func collectCandidateStarts(intervalsByConsultant map[int64][]domain.MinuteInterval) []int {
	seen := make(map[int]struct{})

	for _, intervals := range intervalsByConsultant {
		for _, interval := range intervals {
			for start := interval.Start; start+domain.MeetingDurationMinutes <= interval.End; start += domain.MeetingDurationMinutes {
				seen[start] = struct{}{}
			}
		}
	}

	candidates := make([]int, 0, len(seen))
	for start := range seen {
		candidates = append(candidates, start)
	}
	sort.Ints(candidates)

	return candidates
}

// findAvailableConsultant находит первого консультанта, способного взять слот
//
// Порядок перебора - стабильный порядок ростера, политика намеренно жадная
// (без балансировки нагрузки). Консультант подходит, если его интервалы вмещают
// встречу целиком, нет пересекающейся блокировки и пересекающейся активной встречи
func findAvailableConsultant(
	consultants []*domain.Consultant,
	startMinutes int,
	startAt, endAt time.Time,
	intervalsByConsultant map[int64][]domain.MinuteInterval,
	blocksByConsultant map[int64][]*domain.AvailabilityBlock,
	meetingsByConsultant map[int64][]*domain.Meeting,
) *domain.Consultant {
	for _, c := range consultants {
		if !domain.IntervalsContain(intervalsByConsultant[c.ID], startMinutes, domain.MeetingDurationMinutes) {
			continue
		}
		if isBlocked(blocksByConsultant[c.ID], startAt, endAt) {
			continue
		}
		if hasMeetingConflict(meetingsByConsultant[c.ID], startAt, endAt) {
			continue
		}
		return c
	}
	return nil
}

// isBlocked проверяет пересечение слота хотя бы с одной блокировкой
func isBlocked(blocks []*domain.AvailabilityBlock, startAt, endAt time.Time) bool {
	for _, b := range blocks {
		if b.Blocks(startAt, endAt) {
			return true
		}
	}
	return false
}

// hasMeetingConflict проверяет пересечение слота хотя бы с одной активной встречей
func hasMeetingConflict(meetings []*domain.Meeting, startAt, endAt time.Time) bool {
	for _, m := range meetings {
		if m.ConflictsWith(startAt, endAt) {
			return true
		}
	}
	return false
}

// groupBlocks группирует блокировки по консультантам
func groupBlocks(blocks []*domain.AvailabilityBlock) map[int64][]*domain.AvailabilityBlock {
	result := make(map[int64][]*domain.AvailabilityBlock)
	for _, b := range blocks {
		result[b.ConsultantID] = append(result[b.ConsultantID], b)
	}
	return result
}

// groupMeetings группирует встречи по консультантам
func groupMeetings(meetings []*domain.Meeting) map[int64][]*domain.Meeting {
	result := make(map[int64][]*domain.Meeting)
	for _, m := range meetings {
		result[m.ConsultantID] = append(result[m.ConsultantID], m)
	}
	return result
}

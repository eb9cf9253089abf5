package meeting

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meeting.repository: meeting not found")

	// ErrMeetingConflict возвращается при нарушении exclusion constraint:
	// у консультанта уже есть активная встреча, пересекающаяся с этим интервалом.
	// Именно эта ошибка дает атомарную гарантию отсутствия двойных бронирований
	ErrMeetingConflict = errors.New("meeting.repository: overlapping meeting already exists")

	// ErrCannotCancel возвращается, когда встреча не может быть отменена
	ErrCannotCancel = errors.New("meeting.repository: meeting cannot be cancelled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("meeting.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("meeting.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("meeting.repository: failed to scan row")
)

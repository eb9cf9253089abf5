package create_meeting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	meetingRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/meeting"
	userRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/CRM-SchedulingService/internal/integrations/leadservice"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/CRM-SchedulingService/pkg/ptr"
)

// --- Фейки зависимостей ---

type fakeMeetingRepo struct {
	existing  []*domain.Meeting
	createErr error
	created   *domain.Meeting
}

func (f *fakeMeetingRepo) Create(_ context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	meeting.ID = 42
	meeting.CreatedAt = time.Now()
	meeting.UpdatedAt = meeting.CreatedAt
	f.created = meeting
	return meeting, nil
}

func (f *fakeMeetingRepo) GetInRange(_ context.Context, _ []int64, _, _ time.Time) ([]*domain.Meeting, error) {
	return f.existing, nil
}

type fakeUserRepo struct {
	consultant *domain.Consultant
	err        error
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.Consultant, error) {
	return f.consultant, f.err
}

type fakeLeadClient struct {
	lead *leadservice.Lead
	err  error
}

func (f *fakeLeadClient) GetLead(_ context.Context, _ int64) (*leadservice.Lead, error) {
	return f.lead, f.err
}

type fakeValidator struct {
	err error
}

func (f *fakeValidator) Execute(_ context.Context, _ *validate_booking.Request) error {
	return f.err
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

func activeConsultant() *domain.Consultant {
	return &domain.Consultant{ID: 1, Name: "Анна", Role: domain.RoleConsultant, Status: domain.UserStatusActive}
}

func testLead() *leadservice.Lead {
	return &leadservice.Lead{ID: 10, Name: "Иван Петров", Company: ptr.Ptr("ООО Ромашка")}
}

func validRequest() *Request {
	return &Request{
		ConsultantID: 1,
		LeadID:       10,
		Date:         time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local),
		StartTime:    "10:00",
	}
}

func newTestUseCase(
	meetings *fakeMeetingRepo,
	users *fakeUserRepo,
	leads *fakeLeadClient,
	validator *fakeValidator,
) *UseCase {
	uc := NewUseCase(meetings, users, leads, validator, fakeTxManager{}, 2, nopLogger{})
	// Запрос за день до встречи: minAdvance не мешает
	uc.timeProvider = &fixedTime{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	return uc
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	meetings := &fakeMeetingRepo{}
	uc := newTestUseCase(meetings, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(1), resp.ConsultantID)
	assert.Equal(t, int64(10), resp.LeadID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "Иван Петров", resp.LeadName)
	require.NotNil(t, resp.LeadCompany)
	assert.Equal(t, "ООО Ромашка", *resp.LeadCompany)

	// Интервал встречи фиксированной длительности
	require.NotNil(t, meetings.created)
	assert.Equal(t, time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local), meetings.created.StartAt)
	assert.Equal(t, time.Date(2025, 3, 11, 11, 0, 0, 0, time.Local), meetings.created.EndAt)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "non-positive consultant", mutate: func(r *Request) { r.ConsultantID = 0 }},
		{name: "non-positive lead", mutate: func(r *Request) { r.LeadID = -5 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConsultantNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{err: userRepo.ErrUserNotFound},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestExecute_ConsultantNotEligible(t *testing.T) {
	admin := &domain.Consultant{ID: 1, Name: "Админ", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{consultant: admin},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultantNotEligible)
}

func TestExecute_LeadNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{err: leadservice.ErrLeadNotFound}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_TooLateToBook(t *testing.T) {
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})
	// Запрос в 09:00 дня встречи: до слота 10:00 меньше двух часов
	uc.timeProvider = &fixedTime{now: time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ValidatorRejectionPropagates(t *testing.T) {
	uc := newTestUseCase(&fakeMeetingRepo{}, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{err: validate_booking.ErrOutsideAvailability})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, validate_booking.ErrOutsideAvailability)
}

func TestExecute_SlotTakenByExistingMeeting(t *testing.T) {
	meetings := &fakeMeetingRepo{existing: []*domain.Meeting{{
		ConsultantID: 1,
		StartAt:      time.Date(2025, 3, 11, 10, 30, 0, 0, time.Local),
		EndAt:        time.Date(2025, 3, 11, 11, 30, 0, 0, time.Local),
		Status:       domain.StatusScheduled,
	}}}
	uc := newTestUseCase(meetings, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ExclusionConstraintMapsToSlotTaken(t *testing.T) {
	// Гонку выиграла другая транзакция: constraint в БД отбил вставку
	meetings := &fakeMeetingRepo{createErr: meetingRepo.ErrMeetingConflict}
	uc := newTestUseCase(meetings, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_BackToBackMeetingDoesNotConflict(t *testing.T) {
	meetings := &fakeMeetingRepo{existing: []*domain.Meeting{{
		ConsultantID: 1,
		StartAt:      time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local),
		EndAt:        time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local),
		Status:       domain.StatusScheduled,
	}}}
	uc := newTestUseCase(meetings, &fakeUserRepo{consultant: activeConsultant()},
		&fakeLeadClient{lead: testLead()}, &fakeValidator{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

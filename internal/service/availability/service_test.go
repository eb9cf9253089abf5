package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/block"
	userRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/CRM-SchedulingService/pkg/ptr"
)

// --- Фейки зависимостей ---

type fakeAvailRepo struct {
	windows []*domain.AvailabilitySlot
	deleted bool
	created []*domain.AvailabilitySlot
}

func (f *fakeAvailRepo) GetByConsultant(_ context.Context, _ int64) ([]*domain.AvailabilitySlot, error) {
	return f.windows, nil
}

func (f *fakeAvailRepo) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	slot.ID = int64(len(f.created) + 1)
	f.created = append(f.created, slot)
	return slot, nil
}

func (f *fakeAvailRepo) DeleteByConsultant(_ context.Context, _ int64) error {
	f.deleted = true
	return nil
}

type fakeBlockRepo struct {
	blocks    []*domain.AvailabilityBlock
	created   *domain.AvailabilityBlock
	deleteErr error
}

func (f *fakeBlockRepo) GetByConsultant(_ context.Context, _ int64) ([]*domain.AvailabilityBlock, error) {
	return f.blocks, nil
}

func (f *fakeBlockRepo) Create(_ context.Context, blk *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	blk.ID = 11
	f.created = blk
	return blk, nil
}

func (f *fakeBlockRepo) Delete(_ context.Context, _, _ int64) error {
	return f.deleteErr
}

type fakeUserRepo struct {
	users map[int64]*domain.Consultant
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.Consultant, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	consultantID = int64(1)
	otherID      = int64(2)
	adminID      = int64(99)
)

func newTestService(avail *fakeAvailRepo, blocks *fakeBlockRepo) *Service {
	users := &fakeUserRepo{users: map[int64]*domain.Consultant{
		consultantID: {ID: consultantID, Role: domain.RoleConsultant, Status: domain.UserStatusActive},
		otherID:      {ID: otherID, Role: domain.RoleConsultant, Status: domain.UserStatusActive},
		adminID:      {ID: adminID, Role: domain.RoleAdmin, Status: domain.UserStatusActive},
	}}
	return NewService(avail, blocks, users, fakeTxManager{}, nopLogger{})
}

// --- Тесты ---

func TestGetConsultantAvailability(t *testing.T) {
	avail := &fakeAvailRepo{windows: []*domain.AvailabilitySlot{{
		ID: 1, ConsultantID: consultantID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true,
	}}}
	blocks := &fakeBlockRepo{blocks: []*domain.AvailabilityBlock{{
		ID:           2,
		ConsultantID: consultantID,
		StartAt:      time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local),
		EndAt:        time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local),
	}}}
	svc := newTestService(avail, blocks)

	resp, err := svc.GetConsultantAvailability(context.Background(), consultantID, consultantID)
	require.NoError(t, err)
	assert.Equal(t, consultantID, resp.ConsultantID)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	require.Len(t, resp.Blocks, 1)

	t.Run("other consultant is denied", func(t *testing.T) {
		_, err := svc.GetConsultantAvailability(context.Background(), consultantID, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin is allowed", func(t *testing.T) {
		_, err := svc.GetConsultantAvailability(context.Background(), consultantID, adminID)
		assert.NoError(t, err)
	})
}

func TestReplaceWindows(t *testing.T) {
	t.Run("replaces schedule atomically", func(t *testing.T) {
		avail := &fakeAvailRepo{}
		svc := newTestService(avail, &fakeBlockRepo{})

		inputs := []models.WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "17:00", IsActive: true},
		}

		windows, err := svc.ReplaceWindows(context.Background(), consultantID, consultantID, inputs)
		require.NoError(t, err)
		assert.True(t, avail.deleted)
		assert.Len(t, windows, 2)
		assert.Len(t, avail.created, 2)
	})

	t.Run("inverted window is rejected, not swapped", func(t *testing.T) {
		avail := &fakeAvailRepo{}
		svc := newTestService(avail, &fakeBlockRepo{})

		_, err := svc.ReplaceWindows(context.Background(), consultantID, consultantID, []models.WindowInput{
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00", IsActive: true},
		})
		assert.ErrorIs(t, err, ErrInvalidWindow)
		// До хранилища дело не дошло
		assert.False(t, avail.deleted)
	})

	t.Run("lenient time format is rejected", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{})

		_, err := svc.ReplaceWindows(context.Background(), consultantID, consultantID, []models.WindowInput{
			{DayOfWeek: 1, StartTime: "9:00", EndTime: "12:00", IsActive: true},
		})
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("empty schedule is allowed", func(t *testing.T) {
		avail := &fakeAvailRepo{}
		svc := newTestService(avail, &fakeBlockRepo{})

		windows, err := svc.ReplaceWindows(context.Background(), consultantID, consultantID, nil)
		require.NoError(t, err)
		assert.True(t, avail.deleted)
		assert.Empty(t, windows)
	})
}

func TestCreateBlock(t *testing.T) {
	start := time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)

	t.Run("creates block", func(t *testing.T) {
		blocks := &fakeBlockRepo{}
		svc := newTestService(&fakeAvailRepo{}, blocks)

		resp, err := svc.CreateBlock(context.Background(), consultantID, consultantID, &domain.AvailabilityBlock{
			StartAt: start,
			EndAt:   start.Add(2 * time.Hour),
			Reason:  ptr.Ptr("отпуск"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		require.NotNil(t, blocks.created)
		assert.Equal(t, consultantID, blocks.created.ConsultantID)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{})

		_, err := svc.CreateBlock(context.Background(), consultantID, consultantID, &domain.AvailabilityBlock{
			StartAt: start.Add(time.Hour),
			EndAt:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidBlock)
	})

	t.Run("reason length is limited", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{})

		_, err := svc.CreateBlock(context.Background(), consultantID, consultantID, &domain.AvailabilityBlock{
			StartAt: start,
			EndAt:   start.Add(time.Hour),
			Reason:  ptr.Ptr(strings.Repeat("о", domain.MaxBlockReasonLen+1)),
		})
		assert.ErrorIs(t, err, ErrInvalidBlock)
	})
}

func TestDeleteBlock(t *testing.T) {
	t.Run("deletes block", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{})
		assert.NoError(t, svc.DeleteBlock(context.Background(), consultantID, 11, consultantID))
	})

	t.Run("missing block maps to not found", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{deleteErr: blockRepo.ErrBlockNotFound})

		err := svc.DeleteBlock(context.Background(), consultantID, 404, consultantID)
		assert.ErrorIs(t, err, ErrBlockNotFound)
	})

	t.Run("other consultant is denied", func(t *testing.T) {
		svc := newTestService(&fakeAvailRepo{}, &fakeBlockRepo{})

		err := svc.DeleteBlock(context.Background(), consultantID, 11, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

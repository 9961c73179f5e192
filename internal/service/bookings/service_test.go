package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/internal/domain"
	bookingRepo "github.com/zarechye/booking-service/internal/infra/storage/booking"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	"github.com/zarechye/booking-service/internal/integrations/notifyservice"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
	"github.com/zarechye/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	expireCutoff  time.Time
	expiredReturn int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.ResourceID != nil && b.ResourceID != *filter.ResourceID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

func (f *fakeBookingRepo) SetPaymentMethod(_ context.Context, id int64, method domain.PaymentMethod) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentMethod = &method
	return nil
}

func (f *fakeBookingRepo) UpdatePrice(_ context.Context, id int64, price domain.PriceBreakdown) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Price = price
	return nil
}

func (f *fakeBookingRepo) ExpireStale(_ context.Context, createdBefore time.Time) (int64, error) {
	f.expireCutoff = createdBefore
	return f.expiredReturn, nil
}

type fakeResourceRepo struct {
	resource *domain.Resource
}

func (f *fakeResourceRepo) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	if f.resource == nil || f.resource.ID != id {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return f.resource, nil
}

type fakeNotifyClient struct {
	events []notifyservice.StatusEvent
}

func (f *fakeNotifyClient) NotifyStatusChange(_ context.Context, event notifyservice.StatusEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBathResource() *domain.Resource {
	return &domain.Resource{
		ID:       1,
		Code:     "BATH1",
		Category: domain.CategoryBath,
		Name:     "Баня на дровах",
		Active:   true,
	}
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ResourceID:      1,
		Category:        domain.CategoryBath,
		Subtype:         domain.SubtypeTubOnly,
		BookingDate:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 180,
		GuestCount:      4,
		Price: domain.PriceBreakdown{
			BasePrice: 150, Total: 150,
		},
		Customer:  domain.Customer{Name: "Иван Петров", Phone: "+375291234567"},
		Status:    status,
		CreatedBy: 7,
	}
}

func newTestService(repo *fakeBookingRepo, now time.Time) (*Service, *fakeNotifyClient) {
	notify := &fakeNotifyClient{}
	svc := NewService(
		repo,
		&fakeResourceRepo{resource: testBathResource()},
		notify,
		&fakeTxManager{},
		24*time.Hour,
		nopLogger{},
	)
	svc.timeProvider = &fakeTimeProvider{now: now}
	return svc, notify
}

var staffReq = &models.AcceptBookingRequest{ActorID: 42, Role: domain.RoleStaff}

func TestAccept(t *testing.T) {
	now := time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)

	t.Run("confirms pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, notify := newTestService(repo, now)

		resp, err := svc.Accept(context.Background(), 1, staffReq)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)

		require.Len(t, notify.events, 1)
		assert.Equal(t, string(domain.StatusPendingCall), notify.events[0].OldStatus)
		assert.Equal(t, string(domain.StatusConfirmed), notify.events[0].NewStatus)
	})

	t.Run("guest role is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, _ := newTestService(repo, now)

		_, err := svc.Accept(context.Background(), 1,
			&models.AcceptBookingRequest{ActorID: 7, Role: domain.RoleGuest})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already confirmed is illegal", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.Accept(context.Background(), 1, staffReq)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("competing confirmed booking blocks acceptance", func(t *testing.T) {
		pending := testBooking(1, domain.StatusPendingCall)
		competing := testBooking(2, domain.StatusConfirmed)
		competing.StartTime = types.TimeString("15:00")

		repo := newFakeBookingRepo(pending, competing)
		svc, _ := newTestService(repo, now)

		_, err := svc.Accept(context.Background(), 1, staffReq)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, domain.StatusPendingCall, repo.bookings[1].Status)
	})

	t.Run("adjacent booking does not block", func(t *testing.T) {
		pending := testBooking(1, domain.StatusPendingCall)
		adjacent := testBooking(2, domain.StatusConfirmed)
		adjacent.StartTime = types.TimeString("17:00")

		repo := newFakeBookingRepo(pending, adjacent)
		svc, _ := newTestService(repo, now)

		_, err := svc.Accept(context.Background(), 1, staffReq)
		assert.NoError(t, err)
	})

	t.Run("cancelled competitor does not block", func(t *testing.T) {
		pending := testBooking(1, domain.StatusPendingCall)
		cancelled := testBooking(2, domain.StatusCancelled)

		repo := newFakeBookingRepo(pending, cancelled)
		svc, _ := newTestService(repo, now)

		_, err := svc.Accept(context.Background(), 1, staffReq)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newTestService(newFakeBookingRepo(), now)

		_, err := svc.Accept(context.Background(), 99, staffReq)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)

	t.Run("guest cancels own booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, notify := newTestService(repo, now)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ActorID: 7, Role: domain.RoleGuest, Reason: "планы изменились",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "планы изменились", *resp.CancellationReason)
		assert.Len(t, notify.events, 1)
	})

	t.Run("guest cannot cancel someone else's booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, _ := newTestService(repo, now)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ActorID: 1000, Role: domain.RoleGuest, Reason: "",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff cancels any booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			ActorID: 42, Role: domain.RoleStaff, Reason: "просьба гостя",
		})
		assert.NoError(t, err)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		for _, status := range domain.TerminalStatuses {
			repo := newFakeBookingRepo(testBooking(1, status))
			svc, _ := newTestService(repo, now)

			_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
				ActorID: 42, Role: domain.RoleStaff,
			})
			assert.ErrorIs(t, err, ErrIllegalTransition, "status=%s", status)
		}
	})
}

func TestClosePayment(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)

	t.Run("closes payment for confirmed booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		resp, err := svc.ClosePayment(context.Background(), 1, &models.ClosePaymentRequest{
			ActorID: 42, Role: domain.RoleStaff, Method: domain.PaymentERIP,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.PaymentMethod)
		assert.Equal(t, string(domain.PaymentERIP), *resp.PaymentMethod)
	})

	t.Run("pending booking is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, _ := newTestService(repo, now)

		_, err := svc.ClosePayment(context.Background(), 1, &models.ClosePaymentRequest{
			ActorID: 42, Role: domain.RoleStaff, Method: domain.PaymentCash,
		})
		assert.ErrorIs(t, err, ErrPaymentNotAllowed)
	})

	t.Run("guest role is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.ClosePayment(context.Background(), 1, &models.ClosePaymentRequest{
			ActorID: 7, Role: domain.RoleGuest, Method: domain.PaymentCash,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestSetDiscount(t *testing.T) {
	now := time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)

	t.Run("owner sets discount and price is recalculated", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		resp, err := svc.SetDiscount(context.Background(), 1, &models.SetDiscountRequest{
			ActorID: 99, Role: domain.RoleOwner, DiscountPercent: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, resp.Price.DiscountPercent)
		assert.Equal(t, 15.0, resp.Price.DiscountAmount)
		assert.Equal(t, 135.0, resp.Price.Total)
	})

	t.Run("staff role is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.SetDiscount(context.Background(), 1, &models.SetDiscountRequest{
			ActorID: 42, Role: domain.RoleStaff, DiscountPercent: 10,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("discount out of range is rejected loudly", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		for _, percent := range []int{-5, 101} {
			_, err := svc.SetDiscount(context.Background(), 1, &models.SetDiscountRequest{
				ActorID: 99, Role: domain.RoleOwner, DiscountPercent: percent,
			})
			assert.ErrorIs(t, err, ErrInvalidInput, "percent=%d", percent)
			// Расценка не изменилась
			assert.Equal(t, 150.0, repo.bookings[1].Price.Total)
		}
	})

	t.Run("terminal booking is rejected", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusCompleted))
		svc, _ := newTestService(repo, now)

		_, err := svc.SetDiscount(context.Background(), 1, &models.SetDiscountRequest{
			ActorID: 99, Role: domain.RoleOwner, DiscountPercent: 10,
		})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestMarkArrived(t *testing.T) {
	attendanceReq := &models.AttendanceRequest{ActorID: 42, Role: domain.RoleStaff}

	t.Run("marks arrival after visit start", func(t *testing.T) {
		// Визит 2026-06-10 14:00, сейчас 14:05
		now := time.Date(2026, 6, 10, 14, 5, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		resp, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})

	t.Run("too early before visit start", func(t *testing.T) {
		now := time.Date(2026, 6, 10, 13, 0, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		assert.ErrorIs(t, err, ErrTooEarly)
	})

	t.Run("too early on previous day", func(t *testing.T) {
		now := time.Date(2026, 6, 9, 18, 0, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		assert.ErrorIs(t, err, ErrTooEarly)
	})

	t.Run("allowed until end of visit day", func(t *testing.T) {
		now := time.Date(2026, 6, 10, 23, 59, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		assert.NoError(t, err)
	})

	t.Run("too late on the next day", func(t *testing.T) {
		now := time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		assert.ErrorIs(t, err, ErrTooLate)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("pending booking cannot be marked", func(t *testing.T) {
		now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPendingCall))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkArrived(context.Background(), 1, attendanceReq)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestMarkNoShow(t *testing.T) {
	attendanceReq := &models.AttendanceRequest{ActorID: 42, Role: domain.RoleStaff}
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

	t.Run("marks no show and notifies", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, notify := newTestService(repo, now)

		resp, err := svc.MarkNoShow(context.Background(), 1, attendanceReq)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), resp.Status)
		require.Len(t, notify.events, 1)
		assert.Equal(t, string(domain.StatusNoShow), notify.events[0].NewStatus)
	})

	t.Run("too late days after the visit", func(t *testing.T) {
		later := time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, notify := newTestService(repo, later)

		_, err := svc.MarkNoShow(context.Background(), 1, attendanceReq)
		assert.ErrorIs(t, err, ErrTooLate)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
		assert.Empty(t, notify.events)
	})

	t.Run("interval stays occupied in storage", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		_, err := svc.MarkNoShow(context.Background(), 1, attendanceReq)
		require.NoError(t, err)
		assert.True(t, repo.bookings[1].OccupiesInterval())
	})
}

func TestExpireStale(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepo()
	repo.expiredReturn = 3
	svc, _ := newTestService(repo, now)

	expired, err := svc.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)

	// Окно удержания 24 часа
	assert.Equal(t, now.Add(-24*time.Hour), repo.expireCutoff)
}

func TestGetByID(t *testing.T) {
	now := time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
		svc, _ := newTestService(repo, now)

		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "14:00", resp.StartTime)
		assert.Equal(t, "17:00", resp.EndTime)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newTestService(newFakeBookingRepo(), now)

		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestList(t *testing.T) {
	now := time.Date(2026, 6, 9, 12, 0, 0, 0, time.UTC)

	t.Run("staff gets bookings", func(t *testing.T) {
		repo := newFakeBookingRepo(
			testBooking(1, domain.StatusConfirmed),
			testBooking(2, domain.StatusPendingCall),
		)
		svc, _ := newTestService(repo, now)

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
			ActorID:  42,
			Role:     domain.RoleStaff,
			Category: domain.CategoryBath,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("guest is rejected", func(t *testing.T) {
		svc, _ := newTestService(newFakeBookingRepo(), now)

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			ActorID:  7,
			Role:     domain.RoleGuest,
			Category: domain.CategoryBath,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

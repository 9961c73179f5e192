package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/internal/domain"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	"github.com/zarechye/booking-service/internal/service/resources/models"
	"github.com/zarechye/booking-service/pkg/types"
)

type fakeResourceRepo struct {
	byCode map[string]*domain.Resource
	nextID int64
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{byCode: make(map[string]*domain.Resource), nextID: 1}
}

func (f *fakeResourceRepo) Create(_ context.Context, res *domain.Resource) (*domain.Resource, error) {
	if _, ok := f.byCode[res.Code]; ok {
		return nil, resourceRepo.ErrDuplicateCode
	}
	created := *res
	created.ID = f.nextID
	f.nextID++
	f.byCode[res.Code] = &created
	return &created, nil
}

func (f *fakeResourceRepo) GetByCode(_ context.Context, code string) (*domain.Resource, error) {
	res, ok := f.byCode[code]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func spaRequest() *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		ActorID:  42,
		Role:     domain.RoleStaff,
		Code:     "SPA3",
		Category: domain.CategorySpa,
		Name:     "SPA-комплекс с купелью",

		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("23:00"),
		SlotDurationMinutes: 60,
		MaxBookingMinutes:   300,
		MinLeadMinutes:      180,
	}
}

func TestCreate(t *testing.T) {
	t.Run("staff provisions a resource", func(t *testing.T) {
		repo := newFakeResourceRepo()
		svc := NewService(repo, &fakeTxManager{}, nopLogger{})

		resp, err := svc.Create(context.Background(), spaRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "SPA3", resp.Code)
		assert.Equal(t, "10:00", resp.OpenTime)
		assert.True(t, resp.Active)
		assert.Contains(t, repo.byCode, "SPA3")
	})

	t.Run("guest role is rejected", func(t *testing.T) {
		svc := NewService(newFakeResourceRepo(), &fakeTxManager{}, nopLogger{})

		req := spaRequest()
		req.Role = domain.RoleGuest

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		repo := newFakeResourceRepo()
		svc := NewService(repo, &fakeTxManager{}, nopLogger{})

		_, err := svc.Create(context.Background(), spaRequest())
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), spaRequest())
		assert.ErrorIs(t, err, ErrCodeTaken)
	})
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreateResourceRequest)
	}{
		{"blank code", func(req *models.CreateResourceRequest) {
			req.Code = ""
		}},
		{"blank name", func(req *models.CreateResourceRequest) {
			req.Name = ""
		}},
		{"close before open", func(req *models.CreateResourceRequest) {
			req.OpenTime = types.TimeString("20:00")
			req.CloseTime = types.TimeString("10:00")
		}},
		{"zero slot duration", func(req *models.CreateResourceRequest) {
			req.SlotDurationMinutes = 0
		}},
		{"negative lead time", func(req *models.CreateResourceRequest) {
			req.MinLeadMinutes = -60
		}},
		{"max booking below category minimum", func(req *models.CreateResourceRequest) {
			req.MaxBookingMinutes = 60
		}},
		{"max booking exceeds working day", func(req *models.CreateResourceRequest) {
			req.OpenTime = types.TimeString("10:00")
			req.CloseTime = types.TimeString("13:00")
			req.MaxBookingMinutes = 300
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeResourceRepo(), &fakeTxManager{}, nopLogger{})

			req := spaRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

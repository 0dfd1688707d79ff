package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"checkin/config"
	kafkaMocks "checkin/infras/kafka/mocks"
	"checkin/infras/otel/mocks"
	guestMocks "checkin/internal/domains/guest/mocks"
	"checkin/internal/domains/guest/model"
	"checkin/internal/domains/guest/model/dto"
	"checkin/internal/domains/guest/service"
	hotelMocks "checkin/internal/domains/hotel/mocks"
	hotelModel "checkin/internal/domains/hotel/model"
	"checkin/shared/authz"
	cacheMocks "checkin/shared/cache/mocks"
	gDto "checkin/shared/dto"
	"checkin/shared/failure"
	"checkin/shared/lock"
	"checkin/shared/timezone"
)

func gDtoParams() gDto.QueryParams {
	return gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
}

func futureDate(days int) string {
	return timezone.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func futureTime(days int) time.Time {
	return timezone.Today().AddDate(0, 0, days)
}

func validRequest() dto.RegisterGuestRequest {
	return dto.RegisterGuestRequest{
		FullName:      "Jordan Fletcher",
		MobileNumber:  "0812345678",
		Email:         "jordan@example.com",
		Address:       "12 Lakeside Road",
		Purpose:       "Tourist",
		IDProofNumber: "AB1234567",
		StayFrom:      futureDate(1),
		StayTo:        futureDate(5),
	}
}

func TestGuestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka, lock.NewKeyed())

	lakeview := hotelModel.Hotel{ID: "hotel-lakeview", Name: "Lakeview"}

	tests := []struct {
		name      string
		req       dto.RegisterGuestRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful registration",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "hotel not found",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "overlapping stay rejected",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Guest{{
						ID:       "guest-existing",
						HotelID:  lakeview.ID,
						StayFrom: futureTime(3),
						StayTo:   futureTime(7),
					}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate identity proof rejected before insert",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique constraint backstops the pre-check race",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505", Constraint: "guests_id_proof_number_key"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "check-out before check-in",
			req: func() dto.RegisterGuestRequest {
				req := validRequest()
				req.StayFrom = futureDate(5)
				req.StayTo = futureDate(1)

				return req
			}(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "check-in in the past",
			req: func() dto.RegisterGuestRequest {
				req := validRequest()
				req.StayFrom = timezone.Today().AddDate(0, 0, -2).Format("2006-01-02")
				req.StayTo = futureDate(3)

				return req
			}(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unparseable dates",
			req: func() dto.RegisterGuestRequest {
				req := validRequest()
				req.StayFrom = "soon"

				return req
			}(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(lakeview, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error surfaces as internal",
			req:  validRequest(),
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Register(context.Background(), lakeview.ID, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Jordan Fletcher", res.FullName)
			assert.Equal(t, "Lakeview", res.Hotel)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestGuestService_Register_ConflictCarriesRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka, lock.NewKeyed())

	mockHotelRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(hotelModel.Hotel{ID: "hotel-lakeview", Name: "Lakeview"}, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Guest{{StayFrom: futureTime(3), StayTo: futureTime(7)}}, nil)

	_, err := svc.Register(context.Background(), "hotel-lakeview", validRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), futureDate(3))
	assert.Contains(t, err.Error(), futureDate(7))
}

func TestGuestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka, lock.NewKeyed())

	existing := model.Guest{
		ID:       "guest-1",
		HotelID:  "hotel-lakeview",
		FullName: "Jordan Fletcher",
		StayFrom: futureTime(1),
		StayTo:   futureTime(5),
	}

	tests := []struct {
		name      string
		actor     authz.Context
		req       dto.UpdateGuestRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:  "platform operator updates contact info",
			actor: authz.PlatformOperator("admin-1"),
			req:   dto.UpdateGuestRequest{FullName: "Jordan A. Fletcher"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:  "edited dates re-run the overlap check",
			actor: authz.HotelOperator("staff-1", "hotel-lakeview"),
			req:   dto.UpdateGuestRequest{StayFrom: futureDate(10), StayTo: futureDate(12)},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:  "edited dates conflicting with another stay",
			actor: authz.PlatformOperator("admin-1"),
			req:   dto.UpdateGuestRequest{StayFrom: futureDate(10), StayTo: futureDate(12)},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Guest{{StayFrom: futureTime(11), StayTo: futureTime(14)}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:  "operator of another hotel is rejected",
			actor: authz.HotelOperator("staff-2", "hotel-other"),
			req:   dto.UpdateGuestRequest{FullName: "Someone Else"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "empty update rejected",
			actor:     authz.PlatformOperator("admin-1"),
			req:       dto.UpdateGuestRequest{},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:  "guest not found",
			actor: authz.PlatformOperator("admin-1"),
			req:   dto.UpdateGuestRequest{FullName: "Jordan A. Fletcher"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Guest{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.actor, tt.req, existing.ID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuestService_GetAll_Scoping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka, lock.NewKeyed())

	t.Run("hotel operator cannot request another hotel", func(t *testing.T) {
		_, err := svc.GetAll(context.Background(), authz.HotelOperator("staff-1", "hotel-lakeview"), "hotel-other", gDtoParams())

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("hotel operator defaults to own hotel", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Guest{{ID: "guest-1", HotelID: "hotel-lakeview"}}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(context.Background(), authz.HotelOperator("staff-1", "hotel-lakeview"), "", gDtoParams())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Len(t, res.Guests, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}

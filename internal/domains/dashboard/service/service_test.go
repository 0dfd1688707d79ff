package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"checkin/config"
	"checkin/infras/otel/mocks"
	"checkin/internal/domains/dashboard/service"
	guestMocks "checkin/internal/domains/guest/mocks"
	hotelMocks "checkin/internal/domains/hotel/mocks"
	hotelModel "checkin/internal/domains/hotel/model"
	cacheMocks "checkin/shared/cache/mocks"
	"checkin/shared/authz"
)

type fixture struct {
	guestRepo *guestMocks.MockGuest
	hotelRepo *hotelMocks.MockHotel
	cache     *cacheMocks.MockRedisCache
	svc       service.Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		guestRepo: guestMocks.NewMockGuest(ctrl),
		hotelRepo: hotelMocks.NewMockHotel(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	f.svc = service.New(f.guestRepo, f.hotelRepo, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestDashboardService_PlatformStats(t *testing.T) {
	t.Run("hotel operator is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.PlatformStats(context.Background(), authz.HotelOperator("user-id", "hotel-id"))

		assert.Error(t, err)
	})

	t.Run("returns aggregate counts", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.hotelRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(4, nil)

		f.guestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(120, nil)

		f.guestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(9, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.PlatformStats(context.Background(), authz.PlatformOperator("user-id"))

		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalHotels)
		assert.Equal(t, 120, res.TotalGuests)
		assert.Equal(t, 9, res.RecentRegistrations)
	})

	t.Run("hotel count failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.hotelRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := f.svc.PlatformStats(context.Background(), authz.PlatformOperator("user-id"))

		assert.Error(t, err)
	})
}

func TestDashboardService_HotelStats(t *testing.T) {
	hotel := hotelModel.Hotel{ID: "hotel-id-123", Name: "Lakeview Inn"}

	t.Run("operator of another hotel is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.HotelStats(context.Background(), authz.HotelOperator("user-id", "other-hotel"), hotel.ID)

		assert.Error(t, err)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.hotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelModel.Hotel{}, nil)

		_, err := f.svc.HotelStats(context.Background(), authz.PlatformOperator("user-id"), "missing-hotel")

		assert.Error(t, err)
	})

	t.Run("hotel operator sees own hotel", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.hotelRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		f.guestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(42, nil)

		f.guestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		f.guestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(5, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.HotelStats(context.Background(), authz.HotelOperator("user-id", hotel.ID), "")

		require.NoError(t, err)
		assert.Equal(t, hotel.ID, res.HotelID)
		assert.Equal(t, 42, res.TotalGuests)
		assert.Equal(t, 3, res.CheckInsToday)
		assert.Equal(t, 5, res.CheckOutsToday)
	})
}

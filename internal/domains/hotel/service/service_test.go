package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"checkin/config"
	kafkaMocks "checkin/infras/kafka/mocks"
	"checkin/infras/otel/mocks"
	qrMocks "checkin/infras/qr/mocks"
	s3Mocks "checkin/infras/s3/mocks"
	guestMocks "checkin/internal/domains/guest/mocks"
	hotelMocks "checkin/internal/domains/hotel/mocks"
	"checkin/internal/domains/hotel/model"
	"checkin/internal/domains/hotel/model/dto"
	"checkin/internal/domains/hotel/service"
	"checkin/shared/authz"
	cacheMocks "checkin/shared/cache/mocks"
	"checkin/shared/failure"
)

type fixture struct {
	repo      *hotelMocks.MockHotel
	guestRepo *guestMocks.MockGuest
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
	qr        *qrMocks.MockQR
	kafka     *kafkaMocks.MockClient
	svc       service.Hotel
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.BaseURL = "https://checkin.example.com"
	cfg.External.S3.BucketName = "checkin-assets"

	f := fixture{
		repo:      hotelMocks.NewMockHotel(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
		qr:        qrMocks.NewMockQR(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.guestRepo, cfg, f.cache, mocks.NewOtel(), f.s3, f.qr, f.kafka)

	return f
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	formFile, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)

	_, err = formFile.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())

	form, err := reader.ReadForm(int64(len(content)) + 10240)
	require.NoError(t, err)

	return form.File["file"][0]
}

func TestHotelService_Create(t *testing.T) {
	t.Run("platform operator creates a hotel with QR code", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			UploadFile(gomock.Any(), "checkin-assets", model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/checkin-assets/hotel/logo.png", nil)

		f.qr.EXPECT().
			GeneratePNG(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, content string, _ int) ([]byte, error) {
				assert.Contains(t, content, "https://checkin.example.com/guest/form/")

				return []byte("png-bytes"), nil
			})

		f.s3.EXPECT().
			UploadFileBytes(gomock.Any(), "checkin-assets", model.EntityName, gomock.Any(), "image/png", []byte("png-bytes")).
			Return("https://cdn.example.com/checkin-assets/hotel/qr.png", nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
				assert.Contains(t, hotel.QRCodeURL, "qr.png")
				assert.NotEmpty(t, hotel.ID)

				return nil
			})

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		req := dto.CreateHotelRequest{
			Name:    "Lakeview",
			Address: "1 Lakeside Road",
			Logo:    fileHeader(t, "logo.png", []byte("fake-png")),
		}

		res, err := f.svc.Create(context.Background(), authz.PlatformOperator("admin-1"), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Lakeview", res.Name)
		assert.Contains(t, res.RegistrationURL, res.ID)
	})

	t.Run("hotel operator cannot create hotels", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), authz.HotelOperator("staff-1", "hotel-1"), dto.CreateHotelRequest{Name: "Rogue"})

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestHotelService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("returns hotel with registration URL", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{ID: "hotel-1", Name: "Lakeview"}, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := f.svc.Get(context.Background(), "hotel-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Lakeview", res.Name)
		assert.Equal(t, "https://checkin.example.com/guest/form/hotel-1", res.RegistrationURL)
	})
}

func TestHotelService_Update(t *testing.T) {
	t.Run("operator of another hotel is rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(context.Background(), authz.HotelOperator("staff-1", "hotel-other"), dto.UpdateHotelRequest{Name: "Renamed"}, "hotel-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("own hotel can be updated", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := f.svc.Update(context.Background(), authz.HotelOperator("staff-1", "hotel-1"), dto.UpdateHotelRequest{Name: "Renamed"}, "hotel-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestHotelService_Delete(t *testing.T) {
	t.Run("hotel operator cannot delete", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(context.Background(), authz.HotelOperator("staff-1", "hotel-1"), "hotel-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		err := f.svc.Delete(context.Background(), authz.PlatformOperator("admin-1"), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

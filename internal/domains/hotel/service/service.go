package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"checkin/config"
	"checkin/infras/kafka"
	"checkin/infras/otel"
	"checkin/infras/qr"
	"checkin/infras/s3"
	guestModel "checkin/internal/domains/guest/model"
	guestRepo "checkin/internal/domains/guest/repository"
	"checkin/internal/domains/hotel/model"
	"checkin/internal/domains/hotel/model/dto"
	"checkin/internal/domains/hotel/repository"
	"checkin/shared"
	"checkin/shared/authz"
	"checkin/shared/cache"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/failure"
	"checkin/shared/timezone"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheGetAllHotel = "hotel:gets"
	cacheCountHotel  = "hotel:count"

	eventHotelDeleted = "hotel.deleted"

	qrImageSize = 512
)

type Hotel interface {
	Create(ctx context.Context, actor authz.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	GetAll(ctx context.Context, actor authz.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HotelResponse, error)
	Update(ctx context.Context, actor authz.Context, req dto.UpdateHotelRequest, id string) error
	Delete(ctx context.Context, actor authz.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Hotel
	guestRepo guestRepo.Guest
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
	qr        qr.QR
	kafka     kafka.Client
}

func New(
	repo repository.Hotel,
	guestRepo guestRepo.Guest,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	qr qr.QR,
	kafka kafka.Client,
) Hotel {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
		qr:        qr,
		kafka:     kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor authz.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = actor.RequirePlatformOperator(); err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName

	logoFile, err := req.Logo.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open logo file")

		return res, failure.BadRequestFromString("logo file could not be read") //nolint:wrapcheck
	}
	defer logoFile.Close()

	logoURL, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, logoFile, req.Logo, req.Logo.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel logo")

		return res, fmt.Errorf("failed to upload hotel logo: %w", err)
	}

	photoURLs := make([]string, 0, len(req.Photos))

	for _, photo := range req.Photos {
		photoFile, openErr := photo.Open()
		if openErr != nil {
			log.Error().Err(openErr).Msg("failed to open photo file")

			return res, failure.BadRequestFromString("photo file could not be read") //nolint:wrapcheck
		}

		photoURL, uploadErr := s.s3.UploadFile(ctx, bucketName, model.EntityName, photoFile, photo, photo.Filename)

		photoFile.Close()

		if uploadErr != nil {
			log.Error().Err(uploadErr).Msg("failed to upload hotel photo")

			return res, fmt.Errorf("failed to upload hotel photo: %w", uploadErr)
		}

		photoURLs = append(photoURLs, photoURL)
	}

	hotel := req.ToModel(actor.UserID, logoURL, photoURLs, constant.Empty)

	// The QR payload deep-links to this hotel's registration form, so the
	// identifier has to be assigned before the code is generated.
	registrationURL := s.registrationURL(hotel.ID)

	qrPNG, err := s.qr.GeneratePNG(ctx, registrationURL, qrImageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate hotel QR code")

		return res, fmt.Errorf("failed to generate hotel QR code: %w", err)
	}

	qrCodeURL, err := s.s3.UploadFileBytes(ctx, bucketName, model.EntityName, hotel.ID+"-qr.png", constant.ContentTypePNG, qrPNG)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel QR code")

		return res, fmt.Errorf("failed to upload hotel QR code: %w", err)
	}

	hotel.QRCodeURL = qrCodeURL

	if err = s.repo.Insert(ctx, hotel); err != nil {
		log.Error().Err(err).Msg("failed to insert hotel")

		return res, fmt.Errorf("failed to insert hotel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
	}()

	res.FromModel(hotel)
	res.RegistrationURL = registrationURL

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor authz.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Hotel operators only ever see their own hotel.
	if actor.Role == authz.RoleHotelOperator {
		filter = shared.FilterByID(actor.HotelID, model.FieldID, model.TableName)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHotel, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, err
	}

	hotels, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(hotels, total, params.Limit)

	for i := range res.Hotels {
		res.Hotels[i].RegistrationURL = s.registrationURL(res.Hotels[i].ID)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHotel, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return total, fmt.Errorf("failed to count hotels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel count to cache")
		}
	}()

	return total, nil
}

// Get serves both the admin detail view and the public registration form, so
// it takes no actor.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel") //nolint:wrapcheck
	}

	res.FromModel(hotel)
	res.RegistrationURL = s.registrationURL(hotel.ID)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor authz.Context, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateHotelRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	if err = actor.CanAccessHotel(id); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check hotel existence")

		return fmt.Errorf("failed to check hotel existence: %w", err)
	}

	if !exist {
		return failure.NotFound("hotel") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor.UserID)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update hotel")

		return fmt.Errorf("failed to update hotel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
	}()

	return nil
}

// Delete removes the hotel and all of its guest registrations in one
// transaction, then cleans up stored images best-effort.
func (s *serviceImpl) Delete(ctx context.Context, actor authz.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = actor.RequirePlatformOperator(); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	hotel, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel for deletion")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return failure.NotFound("hotel") //nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin hotel delete transaction")

		return err
	}

	guestFilter := shared.FilterByID(id, guestModel.FieldHotelID, guestModel.TableName)

	if err = s.guestRepo.DeleteTx(ctx, tx, guestFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete hotel guests")

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback hotel delete transaction")
		}

		return fmt.Errorf("failed to delete hotel guests: %w", err)
	}

	if err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete hotel")

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback hotel delete transaction")
		}

		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit hotel delete transaction")

		return fmt.Errorf("failed to commit hotel delete transaction: %w", err)
	}

	s.publishHotelDeleted(ctx, hotel, actor.UserID)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
		shared.InvalidateCaches(c, s.cache, "guest:")

		s.deleteImages(c, hotel)
	}()

	return nil
}

func (s *serviceImpl) deleteImages(ctx context.Context, hotel model.Hotel) {
	bucketName := s.cfg.External.S3.BucketName

	urls := append([]string{hotel.LogoURL, hotel.QRCodeURL}, hotel.Photos...)

	for _, url := range urls {
		if url == constant.Empty {
			continue
		}

		objectName := s.s3.GetObjectNameFromURL(bucketName, url)
		if objectName == constant.Empty {
			log.Warn().Str("url", url).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to delete hotel image from S3")
		}
	}
}

func (s *serviceImpl) publishHotelDeleted(ctx context.Context, hotel model.Hotel, actorID string) {
	if !s.cfg.External.Kafka.Enable {
		return
	}

	payload := map[string]any{
		"event":      eventHotelDeleted,
		"hotel_id":   hotel.ID,
		"hotel_name": hotel.Name,
		"deleted_by": actorID,
		"at":         timezone.Now().Format(time.RFC3339),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.External.Kafka.Topic, kafka.Message{Key: hotel.ID, Value: payload}); err != nil {
			log.Error().Err(err).Msg("failed to publish hotel deleted event")
		}
	}()
}

func (s *serviceImpl) registrationURL(hotelID string) string {
	return fmt.Sprintf("%s/guest/form/%s", s.cfg.App.BaseURL, hotelID)
}

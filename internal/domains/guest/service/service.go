package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"checkin/config"
	"checkin/infras/kafka"
	"checkin/infras/otel"
	"checkin/internal/domains/guest/model"
	"checkin/internal/domains/guest/model/dto"
	"checkin/internal/domains/guest/repository"
	"checkin/internal/domains/guest/stay"
	hotelModel "checkin/internal/domains/hotel/model"
	hotelRepo "checkin/internal/domains/hotel/repository"
	"checkin/shared"
	"checkin/shared/authz"
	"checkin/shared/cache"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/failure"
	"checkin/shared/lock"
	"checkin/shared/timezone"
)

const (
	cacheGetGuest    = "guest:get"
	cacheGetAllGuest = "guest:gets"
	cacheCountGuest  = "guest:count"

	eventGuestRegistered = "guest.registered"

	msgDuplicateIDProof = "identity proof number already registered"
)

type Guest interface {
	Register(ctx context.Context, hotelID string, req dto.RegisterGuestRequest) (dto.RegisterGuestResponse, error)
	GetAll(ctx context.Context, actor authz.Context, hotelID string, params gDto.QueryParams) (dto.GetGuestsResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, actor authz.Context, id string) (dto.GuestResponse, error)
	Update(ctx context.Context, actor authz.Context, req dto.UpdateGuestRequest, id string) error
}

type serviceImpl struct {
	repo      repository.Guest
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	kafka     kafka.Client
	locks     *lock.Keyed
}

func New(
	repo repository.Guest,
	hotelRepo hotelRepo.Hotel,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
	locks *lock.Keyed,
) Guest {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		kafka:     kafka,
		locks:     locks,
	}
}

func (s *serviceImpl) Register(ctx context.Context, hotelID string, req dto.RegisterGuestRequest) (res dto.RegisterGuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel for registration")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel") //nolint:wrapcheck
	}

	interval, err := stay.Parse(req.StayFrom, req.StayTo)
	if err != nil {
		return res, err
	}

	if err = interval.Validate(timezone.Today(), s.cfg.App.MaxStayDays); err != nil {
		return res, err
	}

	// Hold the per-hotel lock across the overlap check and the insert so two
	// concurrent submissions cannot both pass the check.
	s.locks.Lock(hotel.ID)
	defer s.locks.Unlock(hotel.ID)

	if err = s.checkOverlap(ctx, hotel.ID, interval, constant.Empty); err != nil {
		return res, err
	}

	duplicate, err := s.repo.Exist(ctx, filterByIDProof(req.IDProofNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check identity proof uniqueness")

		return res, fmt.Errorf("failed to check identity proof uniqueness: %w", err)
	}

	if duplicate {
		return res, failure.Conflict(msgDuplicateIDProof) //nolint:wrapcheck
	}

	guest := req.ToModel(hotel.ID, interval)

	if err = s.repo.Insert(ctx, guest); err != nil {
		// The unique constraint backstops the pre-check when a concurrent
		// submission wins the race.
		if isUniqueViolation(err) {
			return res, failure.Conflict(msgDuplicateIDProof) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert guest")

		return res, fmt.Errorf("failed to insert guest: %w", err)
	}

	s.publishGuestRegistered(ctx, guest)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
		shared.InvalidateCaches(c, s.cache, cacheCountGuest)
	}()

	res = dto.RegisterGuestResponse{
		ID:       guest.ID,
		FullName: guest.FullName,
		Hotel:    hotel.Name,
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor authz.Context, hotelID string, params gDto.QueryParams) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scopedHotelID, err := actor.ScopedHotelID(hotelID)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{}
	if scopedHotelID != constant.Empty {
		filter = shared.FilterByID(scopedHotelID, model.FieldHotelID, model.TableName)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGuest, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, err
	}

	guests, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(guests, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGuest, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guest count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return total, fmt.Errorf("failed to count guests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor authz.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest") //nolint:wrapcheck
	}

	if err = actor.CanAccessHotel(guest.HotelID); err != nil {
		return res, err
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor authz.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateGuestRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest for update")

		return fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return failure.NotFound("guest") //nolint:wrapcheck
	}

	if err = actor.CanAccessHotel(guest.HotelID); err != nil {
		return err
	}

	interval := stay.Interval{From: guest.StayFrom, To: guest.StayTo}
	datesChanged := false

	if req.StayFrom != constant.Empty {
		parsed, parseErr := stay.ParseDate(req.StayFrom)
		if parseErr != nil {
			return parseErr
		}

		interval.From = parsed
		datesChanged = true
	}

	if req.StayTo != constant.Empty {
		parsed, parseErr := stay.ParseDate(req.StayTo)
		if parseErr != nil {
			return parseErr
		}

		interval.To = parsed
		datesChanged = true
	}

	updatedFields := shared.TransformFields(req, actor.UserID)

	if datesChanged {
		if err = interval.Validate(timezone.Today(), s.cfg.App.MaxStayDays); err != nil {
			return err
		}

		s.locks.Lock(guest.HotelID)
		defer s.locks.Unlock(guest.HotelID)

		// Edited dates go through the same overlap check as new
		// registrations, excluding the record being edited.
		if err = s.checkOverlap(ctx, guest.HotelID, interval, guest.ID); err != nil {
			return err
		}

		updatedFields[model.FieldStayFrom] = interval.From
		updatedFields[model.FieldStayTo] = interval.To
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return fmt.Errorf("failed to update guest: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGuest, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete guest from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
		shared.InvalidateCaches(c, s.cache, cacheCountGuest)
	}()

	return nil
}

func (s *serviceImpl) checkOverlap(ctx context.Context, hotelID string, interval stay.Interval, excludeID string) error {
	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, overlapFilter(hotelID, interval, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to query overlapping stays")

		return fmt.Errorf("failed to query overlapping stays: %w", err)
	}

	if len(existing) > 0 {
		return stay.Conflict(stay.Interval{From: existing[0].StayFrom, To: existing[0].StayTo}) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publishGuestRegistered(ctx context.Context, guest model.Guest) {
	if !s.cfg.External.Kafka.Enable {
		return
	}

	payload := map[string]any{
		"event":     eventGuestRegistered,
		"guest_id":  guest.ID,
		"hotel_id":  guest.HotelID,
		"stay_from": guest.StayFrom.Format(constant.StayDateFormat),
		"stay_to":   guest.StayTo.Format(constant.StayDateFormat),
		"at":        timezone.Now().Format(time.RFC3339),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.External.Kafka.Topic, kafka.Message{Key: guest.HotelID, Value: payload}); err != nil {
			log.Error().Err(err).Msg("failed to publish guest registered event")
		}
	}()
}

// overlapFilter selects stays at hotelID whose half-open interval intersects
// the candidate: stay_from < candidate.To AND stay_to > candidate.From.
// Abutting stays fall outside both strict comparisons.
func overlapFilter(hotelID string, interval stay.Interval, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    hotelID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStayFrom,
			Operator: gDto.FilterOperatorLess,
			Value:    interval.To,
			ArgName:  "overlap_to",
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStayTo,
			Operator: gDto.FilterOperatorGreater,
			Value:    interval.From,
			ArgName:  "overlap_from",
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			ArgName:  "exclude_id",
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func filterByIDProof(idProofNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIDProofNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    idProofNumber,
				Table:    model.TableName,
			},
		},
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}

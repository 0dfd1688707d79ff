package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"checkin/config"
	"checkin/infras/otel"
	"checkin/internal/domains/dashboard/model/dto"
	guestModel "checkin/internal/domains/guest/model"
	guestRepo "checkin/internal/domains/guest/repository"
	hotelModel "checkin/internal/domains/hotel/model"
	hotelRepo "checkin/internal/domains/hotel/repository"
	"checkin/shared"
	"checkin/shared/authz"
	"checkin/shared/cache"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/failure"
	"checkin/shared/timezone"
)

const (
	cachePlatformStats = "dashboard:platform"
	cacheHotelStats    = "dashboard:hotel"

	fieldCreatedAt = "created_at"

	// recentRegistrationDays bounds the "recent" window on the platform view.
	recentRegistrationDays = 7
)

type Dashboard interface {
	PlatformStats(ctx context.Context, actor authz.Context) (dto.PlatformStatsResponse, error)
	HotelStats(ctx context.Context, actor authz.Context, hotelID string) (dto.HotelStatsResponse, error)
}

type serviceImpl struct {
	guestRepo guestRepo.Guest
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	guestRepo guestRepo.Guest,
	hotelRepo hotelRepo.Hotel,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		guestRepo: guestRepo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) PlatformStats(ctx context.Context, actor authz.Context) (res dto.PlatformStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PlatformStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = actor.RequirePlatformOperator(); err != nil {
		return res, err //nolint:wrapcheck
	}

	err = s.cache.Get(ctx, cachePlatformStats, &res)
	if err == nil {
		return res, nil
	}

	res.TotalHotels, err = s.hotelRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	res.TotalGuests, err = s.guestRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	since := timezone.Today().AddDate(0, 0, -recentRegistrationDays)

	res.RecentRegistrations, err = s.guestRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    fieldCreatedAt,
				Table:    guestModel.TableName,
				Value:    since,
				Operator: gDto.FilterOperatorGreaterEq,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count recent registrations")

		return res, fmt.Errorf("failed to count recent registrations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cachePlatformStats, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Msg("failed to save platform stats cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) HotelStats(ctx context.Context, actor authz.Context, hotelID string) (res dto.HotelStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HotelStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotelID, err = actor.ScopedHotelID(hotelID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheHotelStats, hotelID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel for stats")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel") //nolint:wrapcheck
	}

	res.HotelID = hotel.ID
	today := timezone.Today()

	res.TotalGuests, err = s.guestRepo.Count(ctx, hotelFilter(hotelID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotel guests")

		return res, fmt.Errorf("failed to count hotel guests: %w", err)
	}

	res.CheckInsToday, err = s.guestRepo.Count(ctx, hotelStayFilter(hotelID, guestModel.FieldStayFrom, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count today's check-ins")

		return res, fmt.Errorf("failed to count today's check-ins: %w", err)
	}

	res.CheckOutsToday, err = s.guestRepo.Count(ctx, hotelStayFilter(hotelID, guestModel.FieldStayTo, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count today's check-outs")

		return res, fmt.Errorf("failed to count today's check-outs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Msg("failed to save hotel stats cache")
		}
	}()

	return res, nil
}

func hotelFilter(hotelID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    guestModel.FieldHotelID,
				Table:    guestModel.TableName,
				Value:    hotelID,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}

func hotelStayFilter(hotelID, dateField string, date any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    guestModel.FieldHotelID,
				Table:    guestModel.TableName,
				Value:    hotelID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    dateField,
				Table:    guestModel.TableName,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"checkin/config"
	"checkin/infras/otel"
	hotelModel "checkin/internal/domains/hotel/model"
	hotelRepo "checkin/internal/domains/hotel/repository"
	"checkin/internal/domains/user/model"
	"checkin/internal/domains/user/model/dto"
	"checkin/internal/domains/user/repository"
	"checkin/shared"
	"checkin/shared/authz"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	"checkin/shared/failure"
	"checkin/shared/password"
)

type User interface {
	Create(ctx context.Context, actor authz.Context, req dto.CreateOperatorRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, actor authz.Context, params gDto.QueryParams) (dto.GetUsersResponse, error)
}

type serviceImpl struct {
	repo      repository.User
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.User, hotelRepo hotelRepo.Hotel, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		otel:      otel,
	}
}

// Create provisions an operator account. Only the platform operator can do
// this; hotel operator accounts must reference an existing hotel.
func (s *serviceImpl) Create(ctx context.Context, actor authz.Context, req dto.CreateOperatorRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = actor.RequirePlatformOperator(); err != nil {
		return res, err
	}

	usernameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Username,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, usernameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("username already registered") //nolint:wrapcheck
	}

	if req.Role == constant.RoleHotelOperator {
		hotelExists, hotelErr := s.hotelRepo.Exist(ctx, shared.FilterByID(*req.HotelID, hotelModel.FieldID, hotelModel.TableName))
		if hotelErr != nil {
			log.Error().Err(hotelErr).Msg("failed to check if hotel exists")

			return res, fmt.Errorf("failed to check if hotel exists: %w", hotelErr)
		}

		if !hotelExists {
			return res, failure.BadRequestFromString("hotel does not exist") //nolint:wrapcheck
		}
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actor.UserID, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor authz.Context, params gDto.QueryParams) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = actor.RequirePlatformOperator(); err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, params.Limit)

	return res, nil
}

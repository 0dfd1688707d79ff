package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"checkin/config"
	"checkin/infras/jwt"
	jwtMocks "checkin/infras/jwt/mocks"
	"checkin/infras/otel/mocks"
	"checkin/internal/domains/auth/model/dto"
	"checkin/internal/domains/auth/service"
	userMocks "checkin/internal/domains/user/mocks"
	userModel "checkin/internal/domains/user/model"
	"checkin/shared/constant"
	gModel "checkin/shared/model"
	"checkin/shared/timezone"
)

func stringPtr(s string) *string {
	return &s
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	hotelID := "hotel-lakeview"

	// bcrypt hash of "password"
	validUser := userModel.User{
		ID:       "user-id-123",
		Username: "lakeview-staff",
		Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
		Role:     constant.RoleHotelOperator,
		HotelID:  &hotelID,
		FullName: stringPtr("Lakeview Staff"),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "lakeview-staff", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Username, validUser.Role, hotelID).
					Return(tokenPair, nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "lakeview-staff", Password: "wrong-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Username: "lakeview-staff", Password: "password"},
			setupMock: func() {
				deactivated := validUser
				deactivated.Active = false

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deactivated, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Username: "lakeview-staff", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, constant.RoleHotelOperator, res.Role)
			assert.Equal(t, hotelID, res.HotelID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("valid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("good-refresh").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 3600}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good-refresh"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("bad-refresh").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-refresh"})

		assert.Error(t, err)
	})
}

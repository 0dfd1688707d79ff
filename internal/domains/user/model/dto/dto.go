package dto

import (
	"github.com/google/uuid"

	"checkin/internal/domains/user/model"
	"checkin/shared"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	gModel "checkin/shared/model"
	"checkin/shared/timezone"
)

type CreateOperatorRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=50,alphanum"`
	Password string  `json:"password"  validate:"required,min=8"`
	Role     string  `json:"role"      validate:"required,oneof=platform_operator hotel_operator"`
	HotelID  *string `json:"hotel_id"  validate:"required_if=Role hotel_operator,omitempty,uuid"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

func (r *CreateOperatorRequest) ToModel(username, hashedPassword string) model.User {
	hotelID := r.HotelID
	if r.Role == constant.RolePlatformOperator {
		hotelID = nil
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		Role:     r.Role,
		HotelID:  hotelID,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	HotelID   *string `json:"hotel_id,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Role = model.Role
	r.HotelID = model.HotelID
	r.FullName = model.FullName
	r.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := model.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

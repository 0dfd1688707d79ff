package dto

import (
	"strings"

	"github.com/google/uuid"

	"checkin/internal/domains/guest/model"
	"checkin/internal/domains/guest/stay"
	"checkin/shared"
	"checkin/shared/constant"
	gDto "checkin/shared/dto"
	gModel "checkin/shared/model"
	"checkin/shared/timezone"
)

type RegisterGuestRequest struct {
	FullName      string `json:"full_name"       validate:"required,min=3,max=100"`
	MobileNumber  string `json:"mobile_number"   validate:"required,len=10,numeric"`
	Email         string `json:"email"           validate:"required,email,max=100"`
	Address       string `json:"address"         validate:"required,max=255"`
	Purpose       string `json:"purpose"         validate:"required,oneof=Business Personal Tourist"`
	IDProofNumber string `json:"id_proof_number" validate:"required,min=5,max=20"`
	StayFrom      string `json:"stay_from"       validate:"required,staydate"`
	StayTo        string `json:"stay_to"         validate:"required,staydate"`
}

// Normalize trims surrounding whitespace from every free-text field before
// validation and persistence.
func (r *RegisterGuestRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.Email = strings.TrimSpace(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.IDProofNumber = strings.TrimSpace(r.IDProofNumber)
}

func (r *RegisterGuestRequest) ToModel(hotelID string, interval stay.Interval) model.Guest {
	return model.Guest{
		ID:            uuid.NewString(),
		HotelID:       hotelID,
		FullName:      r.FullName,
		MobileNumber:  r.MobileNumber,
		Email:         r.Email,
		Address:       r.Address,
		Purpose:       r.Purpose,
		IDProofNumber: r.IDProofNumber,
		StayFrom:      interval.From,
		StayTo:        interval.To,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.SystemActor,
			ModifiedBy: constant.SystemActor,
		},
	}
}

type UpdateGuestRequest struct {
	FullName     string `db:"full_name"     json:"full_name"     validate:"omitempty,min=3,max=100"`
	MobileNumber string `db:"mobile_number" json:"mobile_number" validate:"omitempty,len=10,numeric"`
	Email        string `db:"email"         json:"email"         validate:"omitempty,email,max=100"`
	Purpose      string `db:"purpose"       json:"purpose"       validate:"omitempty,oneof=Business Personal Tourist"`
	StayFrom     string `json:"stay_from"   validate:"omitempty,staydate"`
	StayTo       string `json:"stay_to"     validate:"omitempty,staydate"`
}

type RegisterGuestResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Hotel    string `json:"hotel"`
}

type GuestResponse struct {
	ID            string `json:"id"`
	HotelID       string `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	FullName      string `json:"full_name"`
	MobileNumber  string `json:"mobile_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Purpose       string `json:"purpose"`
	IDProofNumber string `json:"id_proof_number"`
	StayFrom      string `json:"stay_from"`
	StayTo        string `json:"stay_to"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.FullName = model.FullName
	r.MobileNumber = model.MobileNumber
	r.Email = model.Email
	r.Address = model.Address
	r.Purpose = model.Purpose
	r.IDProofNumber = model.IDProofNumber
	r.StayFrom = model.StayFrom.Format(constant.StayDateFormat)
	r.StayTo = model.StayTo.Format(constant.StayDateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}

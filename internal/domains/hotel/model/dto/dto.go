package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"checkin/internal/domains/hotel/model"
	"checkin/shared"
	gDto "checkin/shared/dto"
	gModel "checkin/shared/model"
	"checkin/shared/timezone"
)

type CreateHotelRequest struct {
	Name        string                  `json:"name"        validate:"required,max=100"`
	Address     string                  `json:"address"     validate:"required,max=255"`
	Description string                  `json:"description" validate:"omitempty,max=1000"`
	Logo        *multipart.FileHeader   `json:"-"           validate:"required,maxfilesize=5,mimetypes=image/png image/jpeg"`
	Photos      []*multipart.FileHeader `json:"-"           validate:"omitempty,max=3,dive,maxfilesize=5,mimetypes=image/png image/jpeg"`
}

func (c *CreateHotelRequest) ToModel(user, logoURL string, photoURLs []string, qrCodeURL string) model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		LogoURL:     logoURL,
		Photos:      pq.StringArray(photoURLs),
		QRCodeURL:   qrCodeURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Address     string `db:"address"     json:"address"     validate:"omitempty,max=255"`
	Description string `db:"description" json:"description" validate:"omitempty,max=1000"`
}

type HotelResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Description     string   `json:"description"`
	LogoURL         string   `json:"logo_url"`
	Photos          []string `json:"photos"`
	QRCodeURL       string   `json:"qr_code_url"`
	RegistrationURL string   `json:"registration_url"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.Description = model.Description
	r.LogoURL = model.LogoURL
	r.Photos = model.Photos
	r.QRCodeURL = model.QRCodeURL
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

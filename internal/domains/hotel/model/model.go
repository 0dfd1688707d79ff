package model

import (
	"github.com/lib/pq"

	"checkin/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldLogoURL     = "logo_url"
	FieldPhotos      = "photos"
	FieldQRCodeURL   = "qr_code_url"
)

type Hotel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Address     string         `db:"address"`
	Description string         `db:"description"`
	LogoURL     string         `db:"logo_url"`
	Photos      pq.StringArray `db:"photos"`
	QRCodeURL   string         `db:"qr_code_url"`
	model.Metadata
}

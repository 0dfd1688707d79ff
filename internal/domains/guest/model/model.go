package model

import (
	"fmt"
	"time"

	hotelModel "checkin/internal/domains/hotel/model"
	"checkin/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldFullName      = "full_name"
	FieldMobileNumber  = "mobile_number"
	FieldEmail         = "email"
	FieldAddress       = "address"
	FieldPurpose       = "purpose"
	FieldIDProofNumber = "id_proof_number"
	FieldStayFrom      = "stay_from"
	FieldStayTo        = "stay_to"
)

type Guest struct {
	ID            string    `db:"id"`
	HotelID       string    `db:"hotel_id"`
	HotelName     string    `db:"hotel_name"      table:"hotels" column:"name"`
	FullName      string    `db:"full_name"`
	MobileNumber  string    `db:"mobile_number"`
	Email         string    `db:"email"`
	Address       string    `db:"address"`
	Purpose       string    `db:"purpose"`
	IDProofNumber string    `db:"id_proof_number"`
	StayFrom      time.Time `db:"stay_from"`
	StayTo        time.Time `db:"stay_to"`
	model.Metadata
}

func (Guest) GetJoinQuery() string {
	return fmt.Sprintf(
		"LEFT JOIN %s ON %s.%s = %s.%s",
		hotelModel.TableName,
		TableName, FieldHotelID,
		hotelModel.TableName, hotelModel.FieldID,
	)
}

package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkin/internal/domains/guest/model/dto"
	"checkin/shared/validator"
)

func validRequest() dto.RegisterGuestRequest {
	return dto.RegisterGuestRequest{
		FullName:      "Asha Verma",
		MobileNumber:  "9876543210",
		Email:         "asha@example.com",
		Address:       "12 Lake Road, Pune",
		Purpose:       "Business",
		IDProofNumber: "AB1234567",
		StayFrom:      "2026-09-10",
		StayTo:        "2026-09-12",
	}
}

func TestRegisterGuestRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterGuestRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *dto.RegisterGuestRequest) {},
		},
		{
			name:    "mobile number too short",
			mutate:  func(r *dto.RegisterGuestRequest) { r.MobileNumber = "12345" },
			wantErr: true,
		},
		{
			name:    "mobile number with letters",
			mutate:  func(r *dto.RegisterGuestRequest) { r.MobileNumber = "98765O3210" },
			wantErr: true,
		},
		{
			name:    "invalid email",
			mutate:  func(r *dto.RegisterGuestRequest) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "unknown purpose",
			mutate:  func(r *dto.RegisterGuestRequest) { r.Purpose = "Vacation" },
			wantErr: true,
		},
		{
			name:    "full name too short",
			mutate:  func(r *dto.RegisterGuestRequest) { r.FullName = "Al" },
			wantErr: true,
		},
		{
			name:    "identity proof too short",
			mutate:  func(r *dto.RegisterGuestRequest) { r.IDProofNumber = "A123" },
			wantErr: true,
		},
		{
			name:    "malformed stay date",
			mutate:  func(r *dto.RegisterGuestRequest) { r.StayFrom = "10-09-2026" },
			wantErr: true,
		},
		{
			name:    "missing stay end",
			mutate:  func(r *dto.RegisterGuestRequest) { r.StayTo = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRegisterGuestRequest_Normalize(t *testing.T) {
	req := validRequest()
	req.FullName = "  Asha Verma  "
	req.Email = " asha@example.com "

	req.Normalize()

	assert.Equal(t, "Asha Verma", req.FullName)
	assert.Equal(t, "asha@example.com", req.Email)
}

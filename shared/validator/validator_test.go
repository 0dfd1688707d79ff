package validator_test

import (
	"checkin/shared/validator"
	"strings"
	"testing"
)

type guestForm struct {
	FullName     string `validate:"required,min=2,max=50"        json:"full_name"`
	MobileNumber string `validate:"required,len=10,numeric"      json:"mobile_number"`
	Email        string `validate:"required,email"               json:"email"`
	Address      string `validate:"required,min=5"               json:"address"`
	Purpose      string `validate:"required,oneof=Business Personal Tourist" json:"purpose"`
	StayFrom     string `validate:"required,staydate"            json:"stay_from"`
	StayTo       string `validate:"required,staydate"            json:"stay_to"`
}

func validForm() guestForm {
	return guestForm{
		FullName:     "Jane Traveler",
		MobileNumber: "9876543210",
		Email:        "jane@example.com",
		Address:      "12 Lakeside Road",
		Purpose:      "Tourist",
		StayFrom:     "2030-06-01",
		StayTo:       "2030-06-05",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*guestForm)
		expectError bool
	}{
		{
			name:        "valid form",
			mutate:      func(*guestForm) {},
			expectError: false,
		},
		{
			name:        "missing full name",
			mutate:      func(f *guestForm) { f.FullName = "" },
			expectError: true,
		},
		{
			name:        "mobile number too short",
			mutate:      func(f *guestForm) { f.MobileNumber = "12345" },
			expectError: true,
		},
		{
			name:        "mobile number non numeric",
			mutate:      func(f *guestForm) { f.MobileNumber = "98765abcde" },
			expectError: true,
		},
		{
			name:        "invalid email",
			mutate:      func(f *guestForm) { f.Email = "not-an-email" },
			expectError: true,
		},
		{
			name:        "purpose outside enum",
			mutate:      func(f *guestForm) { f.Purpose = "Vacation" },
			expectError: true,
		},
		{
			name:        "stay date wrong format",
			mutate:      func(f *guestForm) { f.StayFrom = "01-06-2030" },
			expectError: true,
		},
		{
			name:        "stay date not a calendar date",
			mutate:      func(f *guestForm) { f.StayTo = "2030-13-45" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate_DecodesAndValidates(t *testing.T) {
	body := `{"full_name":"Jane Traveler","mobile_number":"9876543210","email":"jane@example.com","address":"12 Lakeside Road","purpose":"Tourist","stay_from":"2030-06-01","stay_to":"2030-06-05"}`

	form := guestForm{}
	if err := validator.Validate(strings.NewReader(body), &form); err != nil {
		t.Errorf("expected valid body to pass, got %v", err)
	}

	form = guestForm{}
	if err := validator.Validate(strings.NewReader(`{invalid`), &form); err == nil {
		t.Error("expected malformed JSON to fail")
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("9876543210", "len=10,numeric"); err != nil {
		t.Errorf("expected valid mobile to pass, got %v", err)
	}

	if err := validator.ValidateVar("12345", "len=10,numeric"); err == nil {
		t.Error("expected short mobile to fail")
	}
}

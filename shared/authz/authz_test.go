package authz_test

import (
	"checkin/shared/authz"
	"checkin/shared/constant"
	"net/http"
	"testing"

	"checkin/shared/failure"
)

func TestFromClaims(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		hotelID  string
		expected authz.Role
	}{
		{name: "platform operator", role: constant.RolePlatformOperator, expected: authz.RolePlatformOperator},
		{name: "hotel operator", role: constant.RoleHotelOperator, hotelID: "h1", expected: authz.RoleHotelOperator},
		{name: "unknown role falls back to anonymous", role: "superuser", expected: authz.RoleAnonymous},
		{name: "empty role", role: "", expected: authz.RoleAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := authz.FromClaims("u1", tt.role, tt.hotelID)

			if ctx.Role != tt.expected {
				t.Errorf("expected role %s, got %s", tt.expected, ctx.Role)
			}

			if tt.expected == authz.RoleHotelOperator && ctx.HotelID != tt.hotelID {
				t.Errorf("expected hotel scope %s, got %s", tt.hotelID, ctx.HotelID)
			}
		})
	}
}

func TestCanAccessHotel(t *testing.T) {
	tests := []struct {
		name     string
		ctx      authz.Context
		hotelID  string
		wantErr  bool
		wantCode int
	}{
		{
			name:    "platform operator reaches any hotel",
			ctx:     authz.PlatformOperator("u1"),
			hotelID: "h-any",
		},
		{
			name:    "hotel operator reaches own hotel",
			ctx:     authz.HotelOperator("u2", "h1"),
			hotelID: "h1",
		},
		{
			name:     "hotel operator blocked from other hotel",
			ctx:      authz.HotelOperator("u2", "h1"),
			hotelID:  "h2",
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "anonymous blocked",
			ctx:      authz.Anonymous(),
			hotelID:  "h1",
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.CanAccessHotel(tt.hotelID)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if failure.GetCode(err) != tt.wantCode {
					t.Errorf("expected code %d, got %d", tt.wantCode, failure.GetCode(err))
				}

				return
			}

			if err != nil {
				t.Errorf("expected access, got %v", err)
			}
		})
	}
}

func TestScopedHotelID(t *testing.T) {
	platform := authz.PlatformOperator("u1")

	hotelID, err := platform.ScopedHotelID("h7")
	if err != nil || hotelID != "h7" {
		t.Errorf("platform operator should address any hotel, got %s, %v", hotelID, err)
	}

	operator := authz.HotelOperator("u2", "h1")

	hotelID, err = operator.ScopedHotelID("")
	if err != nil || hotelID != "h1" {
		t.Errorf("hotel operator should default to own hotel, got %s, %v", hotelID, err)
	}

	if _, err = operator.ScopedHotelID("h2"); err == nil {
		t.Error("hotel operator must not address another hotel")
	}

	if _, err = authz.Anonymous().ScopedHotelID("h1"); err == nil {
		t.Error("anonymous caller must be rejected")
	}
}

func TestRequirePlatformOperator(t *testing.T) {
	if err := authz.PlatformOperator("u1").RequirePlatformOperator(); err != nil {
		t.Errorf("expected platform operator to pass, got %v", err)
	}

	if err := authz.HotelOperator("u2", "h1").RequirePlatformOperator(); err == nil {
		t.Error("expected hotel operator to be rejected")
	}
}

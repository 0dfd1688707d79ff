// Package authz models the caller's identity as an explicit value passed
// into service operations, replacing ad hoc role checks scattered through
// handlers. Services never read identity from ambient state.
package authz

import (
	"context"

	"checkin/shared/constant"
	"checkin/shared/failure"
)

// Role is the closed set of caller roles.
type Role string

const (
	RoleAnonymous        Role = "anonymous"
	RolePlatformOperator Role = "platform_operator"
	RoleHotelOperator    Role = "hotel_operator"
)

// Context identifies the caller for a single request. HotelID is set only
// for hotel operators and scopes every hotel-bound operation.
type Context struct {
	UserID  string
	Role    Role
	HotelID string
}

func Anonymous() Context {
	return Context{Role: RoleAnonymous}
}

func PlatformOperator(userID string) Context {
	return Context{UserID: userID, Role: RolePlatformOperator}
}

func HotelOperator(userID, hotelID string) Context {
	return Context{UserID: userID, Role: RoleHotelOperator, HotelID: hotelID}
}

// FromRequestContext rebuilds the caller from the values the auth
// middleware stored on the request context. Unauthenticated requests come
// back anonymous.
func FromRequestContext(ctx context.Context) Context {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	hotelID, _ := ctx.Value(constant.ContextKeyHotelID).(string)

	return FromClaims(userID, role, hotelID)
}

// FromClaims rebuilds a Context from the role and hotel scope carried in
// JWT claims.
func FromClaims(userID, role, hotelID string) Context {
	switch role {
	case constant.RolePlatformOperator:
		return PlatformOperator(userID)
	case constant.RoleHotelOperator:
		return HotelOperator(userID, hotelID)
	default:
		return Anonymous()
	}
}

// CanAccessHotel is the single scope check consulted by every hotel-bound
// operation: platform operators see every hotel, hotel operators only their
// own.
func (c Context) CanAccessHotel(hotelID string) error {
	switch c.Role {
	case RolePlatformOperator:
		return nil
	case RoleHotelOperator:
		if c.HotelID == hotelID {
			return nil
		}

		return failure.ResourceRestrictedError
	default:
		return failure.ForbiddenError
	}
}

// RequirePlatformOperator guards operations reserved for the platform, such
// as creating or deleting hotels.
func (c Context) RequirePlatformOperator() error {
	if c.Role != RolePlatformOperator {
		return failure.ForbiddenError
	}

	return nil
}

// ScopedHotelID resolves which hotel an operation targets: platform
// operators may address any hotel, hotel operators are pinned to their own.
func (c Context) ScopedHotelID(requested string) (string, error) {
	switch c.Role {
	case RolePlatformOperator:
		return requested, nil
	case RoleHotelOperator:
		if requested == "" || requested == c.HotelID {
			return c.HotelID, nil
		}

		return "", failure.ResourceRestrictedError
	default:
		return "", failure.ForbiddenError
	}
}

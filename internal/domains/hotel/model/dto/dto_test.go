package dto_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"checkin/internal/domains/hotel/model/dto"
	"checkin/shared/validator"
)

func imageHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header: textproto.MIMEHeader{
			"Content-Type": []string{contentType},
		},
	}
}

func validRequest() dto.CreateHotelRequest {
	return dto.CreateHotelRequest{
		Name:    "Lakeside Residency",
		Address: "12 Lake Road, Pune",
		Logo:    imageHeader("logo.png", "image/png", 2*1024*1024),
	}
}

func TestCreateHotelRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateHotelRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *dto.CreateHotelRequest) {},
		},
		{
			name: "logo exactly at the size cap",
			mutate: func(r *dto.CreateHotelRequest) {
				r.Logo = imageHeader("logo.png", "image/png", 5*1024*1024)
			},
		},
		{
			name: "logo over five megabytes",
			mutate: func(r *dto.CreateHotelRequest) {
				r.Logo = imageHeader("logo.png", "image/png", 50*1024*1024)
			},
			wantErr: true,
		},
		{
			name: "logo with unsupported content type",
			mutate: func(r *dto.CreateHotelRequest) {
				r.Logo = imageHeader("logo.gif", "image/gif", 1024)
			},
			wantErr: true,
		},
		{
			name:    "missing logo",
			mutate:  func(r *dto.CreateHotelRequest) { r.Logo = nil },
			wantErr: true,
		},
		{
			name: "oversized photo",
			mutate: func(r *dto.CreateHotelRequest) {
				r.Photos = []*multipart.FileHeader{
					imageHeader("front.jpg", "image/jpeg", 1024),
					imageHeader("lobby.jpg", "image/jpeg", 50*1024*1024),
				}
			},
			wantErr: true,
		},
		{
			name: "too many photos",
			mutate: func(r *dto.CreateHotelRequest) {
				r.Photos = []*multipart.FileHeader{
					imageHeader("a.jpg", "image/jpeg", 1024),
					imageHeader("b.jpg", "image/jpeg", 1024),
					imageHeader("c.jpg", "image/jpeg", 1024),
					imageHeader("d.jpg", "image/jpeg", 1024),
				}
			},
			wantErr: true,
		},
		{
			name:    "name too long",
			mutate:  func(r *dto.CreateHotelRequest) { r.Name = strings.Repeat("a", 101) },
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
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

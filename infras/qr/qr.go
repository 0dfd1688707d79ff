package qr

//go:generate go run go.uber.org/mock/mockgen -source=./qr.go -destination=./mocks/qr_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"

	"checkin/infras/otel"
	"checkin/shared/constant"
)

const otelAttrContent = "content"

// QR encodes arbitrary payloads as PNG QR code images.
type QR interface {
	GeneratePNG(ctx context.Context, content string, size int) ([]byte, error)
}

type qrImpl struct {
	otel otel.Otel
}

func (q *qrImpl) GeneratePNG(ctx context.Context, content string, size int) (png []byte, err error) {
	_, scope := q.otel.NewScope(ctx, constant.OtelQRScopeName, constant.OtelQRScopeName+".GeneratePNG")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrContent, content)

	png, err = qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return png, nil
}

func New(otel otel.Otel) QR {
	return &qrImpl{
		otel: otel,
	}
}

package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(reservationID int) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) CheckinURL(reservationID int) string {
	return fmt.Sprintf("%s/reservation/checkin?reservation_id=%d", g.BaseURL, reservationID)
}

func (g DefaultQRGenerator) Generate(reservationID int) ([]byte, error) {
	return qrcode.Encode(g.CheckinURL(reservationID), qrcode.Medium, 256)
}

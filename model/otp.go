package model

import (
	"time"

	"gorm.io/gorm"
)

type OtpCode struct {
	gorm.Model
	Phone     string    `json:"phone" gorm:"index"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"default:false"`
}

func (o *OtpCode) Usable(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}

package domain

import "time"

type KnownCode struct {
	ID           int64     `db:"id" json:"id"`
	BeverageName string    `db:"beverage_name" json:"beverage_name"`
	QRURL        string    `db:"qr_url" json:"qr_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

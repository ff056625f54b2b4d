package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data
type Airport struct {
	ID        uint
	Code      string
	Name      string
	CityName  string
	Country   string
	TzName    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:airportcode;unique"`
	Name      string         `gorm:"column:airport_name"`
	CityName  string         `gorm:"column:cityname"`
	Country   string         `gorm:"column:country"`
	TzName    string         `gorm:"column:tzname"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("airportcode = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:        airport.ID,
		Code:      airport.Code,
		Name:      airport.Name,
		CityName:  airport.CityName,
		Country:   airport.Country,
		TzName:    airport.TzName,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}, nil
}

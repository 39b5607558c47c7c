package models

import "time"

// City is a student city listed on the marketplace
type City struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Slug          string    `gorm:"size:120;not null;uniqueIndex:idx_cities_slug" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	ImageURL      string    `gorm:"size:500" json:"image_url"`
	PropertyCount int       `gorm:"not null;default:0" json:"property_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (City) TableName() string {
	return "cities"
}

// University belongs to a city through a soft reference: removing the city
// keeps the university and clears city_id.
type University struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Slug         string    `gorm:"size:220;not null;uniqueIndex:idx_universities_slug" json:"slug"`
	CityID       *uint     `gorm:"index" json:"city_id"`
	City         *City     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Latitude     *float64  `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Longitude    *float64  `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`
	StudentCount *int      `json:"student_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (University) TableName() string {
	return "universities"
}

// Feature is an entry of the amenity vocabulary attached to properties
type Feature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_features_name" json:"name"`
	Icon      string    `gorm:"size:100" json:"icon"`
	Category  string    `gorm:"size:50;index" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feature) TableName() string {
	return "features"
}

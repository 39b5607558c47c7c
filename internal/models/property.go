package models

import "time"

type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusDraft    PropertyStatus = "draft"
)

// PricePeriod tells how Property.Price is quoted
type PricePeriod string

const (
	PricePerPersonPerWeek PricePeriod = "per_person_per_week"
	PricePerWeek          PricePeriod = "per_week"
	PricePerMonth         PricePeriod = "per_month"
)

// Property is a listing. City, university and agent are soft references:
// deleting any of them clears the column and keeps the listing.
type Property struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Slug          string         `gorm:"size:255;not null;uniqueIndex:idx_properties_slug" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	AddressLine1  string         `gorm:"size:255" json:"address_line1"`
	AddressLine2  string         `gorm:"size:255" json:"address_line2"`
	Postcode      string         `gorm:"size:20;index" json:"postcode"`
	CityID        *uint          `gorm:"index" json:"city_id"`
	City          *City          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	UniversityID  *uint          `gorm:"index" json:"university_id"`
	University    *University    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	AgentID       *uint          `gorm:"index" json:"agent_id"`
	Agent         *User          `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Bedrooms      int            `gorm:"not null;default:1" json:"bedrooms"`
	Bathrooms     int            `gorm:"not null;default:1" json:"bathrooms"`
	Price         float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	PricePeriod   PricePeriod    `gorm:"type:varchar(30);not null;default:'per_person_per_week'" json:"price_period"`
	BillsIncluded bool           `gorm:"not null;default:false" json:"bills_included"`
	AvailableFrom *time.Time     `json:"available_from,omitempty"`
	Status        PropertyStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Featured      bool           `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is owned by its property and removed with it
type PropertyImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyID   uint      `gorm:"not null;index" json:"property_id"`
	Property     *Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	AltText      string    `gorm:"size:255" json:"alt_text"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// PrimaryImage returns the image flagged primary with the lowest display
// order, falling back to the first image by display order. Only one primary
// image per property is meaningful; the database does not enforce it.
func PrimaryImage(images []PropertyImage) (PropertyImage, bool) {
	var best PropertyImage
	found := false
	for _, img := range images {
		switch {
		case !found:
			best, found = img, true
		case img.IsPrimary && !best.IsPrimary:
			best = img
		case img.IsPrimary == best.IsPrimary && img.DisplayOrder < best.DisplayOrder:
			best = img
		}
	}
	return best, found
}

// PropertyFeature is the junction row between a property and a feature
type PropertyFeature struct {
	PropertyID uint      `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Property   *Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FeatureID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"feature_id"`
	Feature    *Feature  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PropertyFeature) TableName() string {
	return "property_features"
}

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityReserved  AvailabilityStatus = "reserved"
	AvailabilityBooked    AvailabilityStatus = "booked"
)

// PropertyAvailability is one date range of a property's booking calendar.
// A property may have many, non-overlap is not enforced.
type PropertyAvailability struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	PropertyID uint               `gorm:"not null;index:idx_property_availability_property_start,priority:1" json:"property_id"`
	Property   *Property          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	StartDate  time.Time          `gorm:"not null;index:idx_property_availability_property_start,priority:2" json:"start_date"`
	EndDate    time.Time          `gorm:"not null" json:"end_date"`
	Status     AvailabilityStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (PropertyAvailability) TableName() string {
	return "property_availability"
}

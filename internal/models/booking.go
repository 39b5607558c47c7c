package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking ties a user and a property to a date range. A user can hold one
// booking per property and start date.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;uniqueIndex:idx_bookings_user_property_start,priority:1" json:"user_id"`
	User        *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PropertyID  uint          `gorm:"not null;uniqueIndex:idx_bookings_user_property_start,priority:2;index" json:"property_id"`
	Property    *Property     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	StartDate   time.Time     `gorm:"not null;uniqueIndex:idx_bookings_user_property_start,priority:3" json:"start_date"`
	EndDate     time.Time     `gorm:"not null" json:"end_date"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount float64       `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

package models

import "time"

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:           {PaymentCompleted, PaymentFailed},
	PaymentCompleted:         {PaymentRefunded, PaymentPartiallyRefunded},
	PaymentPartiallyRefunded: {PaymentRefunded, PaymentPartiallyRefunded},
}

// CanTransitionTo reports whether a payment may move from s to next.
// The schema stores the status as plain text; callers enforce this.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment is a gateway transaction. Deleting the booking or the user keeps
// the payment for accounting.
type Payment struct {
	ID                   uint          `gorm:"primaryKey" json:"id"`
	BookingID            *uint         `gorm:"index" json:"booking_id"`
	Booking              *Booking      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	UserID               *uint         `gorm:"index" json:"user_id"`
	User                 *User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Amount               float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency             string        `gorm:"size:3;not null;default:'GBP'" json:"currency"`
	Gateway              string        `gorm:"size:50;not null" json:"gateway"`
	GatewayTransactionID *string       `gorm:"size:255;uniqueIndex:idx_payments_gateway_transaction" json:"gateway_transaction_id,omitempty"`
	Status               PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Refund records money returned against a payment and the admin who issued it
type Refund struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentID       uint      `gorm:"not null;index" json:"payment_id"`
	Payment         *Payment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IssuedByID      *uint     `gorm:"index" json:"issued_by_id"`
	IssuedBy        *User     `gorm:"foreignKey:IssuedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason          string    `gorm:"type:text" json:"reason"`
	GatewayRefundID *string   `gorm:"size:255" json:"gateway_refund_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Refund) TableName() string {
	return "refunds"
}

type RentPaymentStatus string

const (
	RentDue     RentPaymentStatus = "due"
	RentPaid    RentPaymentStatus = "paid"
	RentOverdue RentPaymentStatus = "overdue"
)

// RentPayment is one instalment of a booking's rent schedule. The originating
// payment is optional and a deleted payment keeps the rent history.
type RentPayment struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	BookingID uint              `gorm:"not null;index" json:"booking_id"`
	Booking   *Booking          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID    *uint             `gorm:"index" json:"user_id"`
	User      *User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	PaymentID *uint             `gorm:"index" json:"payment_id"`
	Payment   *Payment          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Amount    float64           `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate   time.Time         `gorm:"not null;index" json:"due_date"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
	Status    RentPaymentStatus `gorm:"type:varchar(20);not null;default:'due'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (RentPayment) TableName() string {
	return "rent_payments"
}

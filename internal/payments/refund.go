// Package payments applies the payment status rules the schema leaves to
// the application.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/unilets/internal/models"
)

var (
	// ErrInvalidTransition is returned when a payment cannot move to the
	// requested status
	ErrInvalidTransition = errors.New("invalid payment status transition")
	// ErrRefundExceedsBalance is returned when a refund is larger than what
	// remains of the payment
	ErrRefundExceedsBalance = errors.New("refund exceeds refundable balance")
)

// RefundRequest describes a refund against one payment
type RefundRequest struct {
	PaymentID       uint
	Amount          float64
	Reason          string
	IssuedByID      *uint
	GatewayRefundID string
}

// IssueRefund records a refund and moves the payment to refunded or
// partially_refunded in one transaction
func IssueRefund(ctx context.Context, db *gorm.DB, req RefundRequest) (*models.Refund, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("refund amount must be positive, got %.2f", req.Amount)
	}

	var refund *models.Refund
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Concurrent refunds of one payment serialize on the row lock.
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, req.PaymentID).Error; err != nil {
			return fmt.Errorf("failed to load payment %d: %w", req.PaymentID, err)
		}

		var refunded float64
		err := tx.Model(&models.Refund{}).
			Where("payment_id = ?", payment.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&refunded).Error
		if err != nil {
			return fmt.Errorf("failed to total refunds for payment %d: %w", payment.ID, err)
		}

		remaining := cents(payment.Amount) - cents(refunded)
		requested := cents(req.Amount)
		if requested > remaining {
			return fmt.Errorf("payment %d has %.2f left, %.2f requested: %w",
				payment.ID, float64(remaining)/100, req.Amount, ErrRefundExceedsBalance)
		}

		next := models.PaymentPartiallyRefunded
		if requested == remaining {
			next = models.PaymentRefunded
		}
		if !payment.Status.CanTransitionTo(next) {
			return fmt.Errorf("payment %d %s -> %s: %w", payment.ID, payment.Status, next, ErrInvalidTransition)
		}

		refund = &models.Refund{
			PaymentID:  payment.ID,
			IssuedByID: req.IssuedByID,
			Amount:     req.Amount,
			Reason:     req.Reason,
		}
		if id := strings.TrimSpace(req.GatewayRefundID); id != "" {
			refund.GatewayRefundID = &id
		}
		if err := tx.Create(refund).Error; err != nil {
			return fmt.Errorf("failed to insert refund: %w", err)
		}

		if err := tx.Model(&payment).Update("status", next).Error; err != nil {
			return fmt.Errorf("failed to update payment %d: %w", payment.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beesaferoot/unilets/internal/models"
)

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to models.PaymentStatus
		want     bool
	}{
		{models.PaymentPending, models.PaymentCompleted, true},
		{models.PaymentPending, models.PaymentFailed, true},
		{models.PaymentPending, models.PaymentRefunded, false},
		{models.PaymentCompleted, models.PaymentRefunded, true},
		{models.PaymentCompleted, models.PaymentPartiallyRefunded, true},
		{models.PaymentCompleted, models.PaymentPending, false},
		{models.PaymentFailed, models.PaymentCompleted, false},
		{models.PaymentRefunded, models.PaymentPartiallyRefunded, false},
		{models.PaymentPartiallyRefunded, models.PaymentRefunded, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

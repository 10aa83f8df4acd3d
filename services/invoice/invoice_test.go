package invoice

import (
	"testing"

	"lablink/models"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceAmountFixedPriceWins(t *testing.T) {
	ord := &models.Order{Urgency: models.UrgencyNormal, PriceEGP: 900}
	pricing := &models.LabPricing{FixedPrice: 1200, MinPrice: 800, MaxPrice: 1600}

	amount, surcharge := invoiceAmount(ord, pricing)
	assert.Equal(t, 1200.0, amount)
	assert.Zero(t, surcharge)
}

func TestInvoiceAmountMidpointOfRange(t *testing.T) {
	ord := &models.Order{Urgency: models.UrgencyNormal}
	pricing := &models.LabPricing{MinPrice: 800, MaxPrice: 1600}

	amount, _ := invoiceAmount(ord, pricing)
	assert.Equal(t, 1200.0, amount)
}

func TestInvoiceAmountFallsBackToAgreedPrice(t *testing.T) {
	ord := &models.Order{Urgency: models.UrgencyNormal, PriceEGP: 950}

	amount, surcharge := invoiceAmount(ord, &models.LabPricing{})
	assert.Equal(t, 950.0, amount)
	assert.Zero(t, surcharge)

	// No pricing row at all behaves the same.
	amount, surcharge = invoiceAmount(ord, nil)
	assert.Equal(t, 950.0, amount)
	assert.Zero(t, surcharge)
}

func TestInvoiceRushSurcharge(t *testing.T) {
	pricing := &models.LabPricing{FixedPrice: 1000, IncludesRush: true, RushSurchargePercent: 20}

	amount, surcharge := invoiceAmount(&models.Order{Urgency: models.UrgencyUrgent}, pricing)
	assert.Equal(t, 1000.0, amount)
	assert.Equal(t, 200.0, surcharge)

	// Normal urgency never pays the surcharge.
	_, surcharge = invoiceAmount(&models.Order{Urgency: models.UrgencyNormal}, pricing)
	assert.Zero(t, surcharge)

	// Urgent without rush coverage pays the base amount only.
	noRush := &models.LabPricing{FixedPrice: 1000, RushSurchargePercent: 20}
	_, surcharge = invoiceAmount(&models.Order{Urgency: models.UrgencyUrgent}, noRush)
	assert.Zero(t, surcharge)
}

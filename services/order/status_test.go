package order

import (
	"testing"

	"lablink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleForwardPath(t *testing.T) {
	forward := [][2]string{
		{models.OrderStatusAssigned, models.OrderStatusAccepted},
		{models.OrderStatusAccepted, models.OrderStatusInProduction},
		{models.OrderStatusInProduction, models.OrderStatusQualityCheck},
		{models.OrderStatusQualityCheck, models.OrderStatusShipped},
	}
	for _, step := range forward {
		assert.True(t, transitionAllowed(step[0], step[1]), "%s -> %s must be allowed", step[0], step[1])
	}
}

func TestLifecycleRejectsSkipsAndBackwardsMoves(t *testing.T) {
	cases := [][2]string{
		{models.OrderStatusAssigned, models.OrderStatusInProduction}, // skip
		{models.OrderStatusAccepted, models.OrderStatusShipped},      // skip
		{models.OrderStatusShipped, models.OrderStatusInProduction},  // backwards
		{models.OrderStatusQualityCheck, models.OrderStatusAccepted}, // backwards
		{models.OrderStatusDelivered, models.OrderStatusShipped},     // terminal
		{models.OrderStatusCancelled, models.OrderStatusPending},     // terminal
		{models.OrderStatusDeclined, models.OrderStatusAssigned},     // terminal
		{models.OrderStatusPending, models.OrderStatusAccepted},      // only a lab assignment leaves pending
	}
	for _, step := range cases {
		assert.False(t, transitionAllowed(step[0], step[1]), "%s -> %s must be rejected", step[0], step[1])
	}
}

func TestLifecycleSideExits(t *testing.T) {
	assert.True(t, transitionAllowed(models.OrderStatusAssigned, models.OrderStatusDeclined))
	assert.True(t, transitionAllowed(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, transitionAllowed(models.OrderStatusAccepted, models.OrderStatusCancelled))

	// Once the case is on the bench the dentist can no longer cancel.
	assert.False(t, transitionAllowed(models.OrderStatusInProduction, models.OrderStatusCancelled))
	assert.False(t, transitionAllowed(models.OrderStatusShipped, models.OrderStatusCancelled))
}

func TestLifecycleReservesDedicatedEntryPoints(t *testing.T) {
	// Assignment and delivery never flow through AdvanceStatus.
	for from := range lifecycle {
		assert.False(t, transitionAllowed(from, models.OrderStatusAssigned), "from %s", from)
		assert.False(t, transitionAllowed(from, models.OrderStatusDelivered), "from %s", from)
	}
}

func TestValidateIntake(t *testing.T) {
	ord := &models.Order{
		DoctorID:        "doc-1",
		RestorationType: models.RestorationEmax,
	}
	require.NoError(t, validateIntake(ord))
	assert.Equal(t, models.UrgencyNormal, ord.Urgency, "urgency defaults to normal")

	assert.Error(t, validateIntake(&models.Order{RestorationType: models.RestorationEmax}))
	assert.Error(t, validateIntake(&models.Order{DoctorID: "doc-1", RestorationType: "Gold Tooth"}))
	assert.Error(t, validateIntake(&models.Order{
		DoctorID:        "doc-1",
		RestorationType: models.RestorationEmax,
		Urgency:         "immediately",
	}))
}

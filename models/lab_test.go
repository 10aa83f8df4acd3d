package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierRankOrdering(t *testing.T) {
	assert.Greater(t, TierRank(TierElite), TierRank(TierTrusted))
	assert.Greater(t, TierRank(TierTrusted), TierRank(TierEstablished))
	assert.Greater(t, TierRank(TierEstablished), TierRank(TierEmerging))
	assert.Equal(t, 0, TierRank("platinum"), "unknown tiers sort last")
}

func TestAtCapacity(t *testing.T) {
	assert.True(t, Lab{CurrentLoad: 10, MaxCapacity: 10}.AtCapacity())
	assert.True(t, Lab{CurrentLoad: 12, MaxCapacity: 10}.AtCapacity())
	assert.False(t, Lab{CurrentLoad: 9, MaxCapacity: 10}.AtCapacity())
	assert.False(t, Lab{CurrentLoad: 100, MaxCapacity: 0}.AtCapacity(), "undeclared capacity never blocks")
}

func TestOnTimeRate(t *testing.T) {
	assert.Zero(t, LabPerformanceMetrics{}.OnTimeRate())
	assert.InDelta(t, 0.75, LabPerformanceMetrics{CompletedOrders: 8, OnTimeDeliveries: 6}.OnTimeRate(), 1e-9)
}

func TestValidRestorationType(t *testing.T) {
	assert.True(t, ValidRestorationType(RestorationZirconia))
	assert.True(t, ValidRestorationType(RestorationPartialDenture))
	assert.False(t, ValidRestorationType("zirconia"), "types are case sensitive")
	assert.False(t, ValidRestorationType(""))
}

package monitoring

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

func TestMonitor_Records(t *testing.T) {
	m := NewMonitor(time.Minute)

	m.RecordGeneration(2 * time.Second)
	m.RecordGeneration(4 * time.Second)
	m.RecordRender(entities.FormatPowerPoint, 100*time.Millisecond)
	m.RecordRender(entities.FormatPowerPoint, 100*time.Millisecond)
	m.RecordRender(entities.FormatPDF, 100*time.Millisecond)
	m.RecordSuccess()
	m.RecordFailure(entities.ErrorTypeParse)
	m.RecordFailure(entities.ErrorTypeParse)
	m.RecordFailure("")

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.DecksGenerated)
	assert.Equal(t, int64(2), snap.Failures[entities.ErrorTypeParse])
	assert.Equal(t, int64(1), snap.Failures["unknown"])
	assert.Equal(t, int64(2), snap.Renders[entities.FormatPowerPoint])
	assert.Equal(t, int64(1), snap.Renders[entities.FormatPDF])
	assert.Equal(t, int64(2200), snap.AvgGenerationMS)
	assert.Equal(t, int64(100), snap.AvgRenderMS)
	assert.Positive(t, snap.Goroutines)
}

func TestMonitor_SnapshotIsACopy(t *testing.T) {
	m := NewMonitor(time.Minute)
	m.RecordFailure(entities.ErrorTypeSchema)

	snap := m.Snapshot()
	snap.Failures[entities.ErrorTypeSchema] = 99

	assert.Equal(t, int64(1), m.Snapshot().Failures[entities.ErrorTypeSchema])
}

func TestMonitor_StartStop(t *testing.T) {
	m := NewMonitor(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.Start(ctx)
	m.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	m.Stop()
	m.Stop()

	// Restart after stop is allowed.
	m.Start(ctx)
	m.Stop()
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, time.Second, movingAverage(0, time.Second))
	assert.Equal(t, 1100*time.Millisecond, movingAverage(time.Second, 2*time.Second))
}

func TestSafeUint64ToInt64(t *testing.T) {
	assert.Equal(t, int64(42), safeUint64ToInt64(42))
	assert.Equal(t, int64(math.MaxInt64), safeUint64ToInt64(math.MaxUint64))
}

package engine

import (
	"sync"
	"time"

	"github.com/go-drift/hookslab/pkg/core"
)

const (
	frameTraceSamplesDefault   = 240
	defaultFrameTraceThreshold = 16667 * time.Microsecond
)

// FrameCounts captures per-frame workload indicators.
type FrameCounts struct {
	Passes          int `json:"passes"`
	Dispatched      int `json:"dispatched"`
	EffectsRun      int `json:"effectsRun"`
	ElementCount    int `json:"elementCount"`
	PendingAtFinish int `json:"pendingAtFinish"`
}

// FrameSample is a single frame trace sample.
type FrameSample struct {
	Timestamp int64       `json:"ts"`
	FrameMs   float64     `json:"frameMs"`
	Counts    FrameCounts `json:"counts"`
	// DepthExceeded is set when the frame hit the update-depth limit.
	DepthExceeded bool `json:"depthExceeded,omitempty"`
}

// FrameTimeline is a chronological copy of the recorded samples.
type FrameTimeline struct {
	Samples    []FrameSample `json:"samples"`
	SlowFrames int           `json:"slowFrames"`
	Threshold  float64       `json:"thresholdMs"`
}

// FrameTraceBuffer stores recent frame samples in a ring buffer.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	samples   []FrameSample
	index     int
	count     int
	slow      int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a new frame trace buffer.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultFrameTraceThreshold
	}
	return &FrameTraceBuffer{
		samples:   make([]FrameSample, capacity),
		threshold: threshold,
	}
}

// Capacity returns the buffer capacity.
func (b *FrameTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Add records a frame sample and counts it as slow when frameDuration
// exceeds the threshold.
func (b *FrameTraceBuffer) Add(sample FrameSample, frameDuration time.Duration) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if frameDuration > b.threshold {
		b.slow++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of samples and stats.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return FrameTimeline{Threshold: durationToMillis(b.threshold)}
	}

	result := make([]FrameSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return FrameTimeline{
		Samples:    result,
		SlowFrames: b.slow,
		Threshold:  durationToMillis(b.threshold),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func countElementTree(root core.Element) int {
	if root == nil {
		return 0
	}
	count := 1
	root.VisitChildren(func(child core.Element) bool {
		count += countElementTree(child)
		return true
	})
	return count
}

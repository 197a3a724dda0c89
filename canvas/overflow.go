package canvas

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultOverflowClearAfter is how long overflow warnings stay visible.
const DefaultOverflowClearAfter = 8 * time.Second

// OverflowTracker holds the ids of children that did not fit their grid and
// clears them after a delay. Setting new ids replaces the pending clear
// instead of stacking another one.
type OverflowTracker struct {
	mu         sync.Mutex
	ids        []string
	timer      *time.Timer
	generation uint64
	clearAfter time.Duration
	logger     *zap.Logger
}

// NewOverflowTracker returns a tracker that clears itself clearAfter after
// the last set. A non-positive clearAfter uses DefaultOverflowClearAfter.
func NewOverflowTracker(clearAfter time.Duration, logger *zap.Logger) *OverflowTracker {
	if clearAfter <= 0 {
		clearAfter = DefaultOverflowClearAfter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverflowTracker{clearAfter: clearAfter, logger: logger.Named("overflow")}
}

func (o *OverflowTracker) SetOverflowBoxIDs(ids []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.ids = slices.Clone(ids)
	if len(o.ids) == 0 {
		return
	}
	gen := o.generation
	o.timer = time.AfterFunc(o.clearAfter, func() { o.expire(gen) })
	o.logger.Debug("overflow set", zap.Strings("ids", o.ids), zap.Duration("clear_after", o.clearAfter))
}

func (o *OverflowTracker) ClearOverflowBoxIDs() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopLocked()
	o.ids = nil
}

// OverflowBoxIDs returns the ids currently flagged.
func (o *OverflowTracker) OverflowBoxIDs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.ids)
}

// stopLocked cancels the pending clear. The generation bump covers a timer
// that already fired and is waiting on the lock.
func (o *OverflowTracker) stopLocked() {
	o.generation++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *OverflowTracker) expire(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return
	}
	o.ids = nil
	o.timer = nil
	o.logger.Debug("overflow cleared")
}

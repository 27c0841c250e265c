package audio

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-features/logging"
)

// FrameAccumulator buffers incoming byte chunks of arbitrary length into
// fixed-size overlapping analysis frames. Each completed frame is handed to
// the caller together with an interpolated timestamp: the chunk's
// originating time backed off by the time equivalent of the chunk bytes
// consumed after the frame's last byte, so the stamp marks the moment the
// frame's final sample actually arrived.
//
// Emitted frame slices point into the accumulator's scratch buffer and are
// only valid for the duration of the emit callback.
type FrameAccumulator struct {
	frameSizeBytes       int
	shiftBytes           int
	overlapBytes         int
	scratch              []byte
	bytesRemainingToFill int
	bytesPerSecond       float64
	lastEmittedTimestamp time.Time
	logger               logging.Logger
}

// NewFrameAccumulator creates an accumulator producing frames of
// frameSizeBytes advanced by shiftBytes, with timestamps interpolated via
// bytesPerSecond.
func NewFrameAccumulator(frameSizeBytes, shiftBytes int, bytesPerSecond float64) (*FrameAccumulator, error) {
	if frameSizeBytes <= 0 {
		return nil, fmt.Errorf("frame size must be positive: %d", frameSizeBytes)
	}
	if shiftBytes <= 0 {
		return nil, fmt.Errorf("frame shift must be positive: %d", shiftBytes)
	}
	if shiftBytes > frameSizeBytes {
		return nil, fmt.Errorf("frame shift (%d) cannot exceed frame size (%d)", shiftBytes, frameSizeBytes)
	}
	if bytesPerSecond <= 0 {
		return nil, fmt.Errorf("bytes per second must be positive: %g", bytesPerSecond)
	}

	return &FrameAccumulator{
		frameSizeBytes:       frameSizeBytes,
		shiftBytes:           shiftBytes,
		overlapBytes:         frameSizeBytes - shiftBytes,
		scratch:              make([]byte, frameSizeBytes),
		bytesRemainingToFill: frameSizeBytes,
		bytesPerSecond:       bytesPerSecond,
		logger: logging.WithFields(logging.Fields{
			"component":   "frame_accumulator",
			"frame_bytes": frameSizeBytes,
			"shift_bytes": shiftBytes,
		}),
	}, nil
}

// Push consumes one input chunk, invoking emit once per completed frame.
// A chunk that is large relative to the shift can complete several frames.
// Push never fails; partial data simply stays buffered.
func (fa *FrameAccumulator) Push(chunk []byte, originatingTime time.Time, emit func(frame []byte, timestamp time.Time)) {
	pos := 0
	for pos < len(chunk) {
		n := len(chunk) - pos
		if n > fa.bytesRemainingToFill {
			n = fa.bytesRemainingToFill
		}
		copy(fa.scratch[fa.frameSizeBytes-fa.bytesRemainingToFill:], chunk[pos:pos+n])
		fa.bytesRemainingToFill -= n
		pos += n

		if fa.bytesRemainingToFill > 0 {
			return
		}

		// The frame's last byte landed pos bytes into this chunk; back-date
		// the stamp by the chunk bytes that arrived after it.
		trailing := len(chunk) - pos
		timestamp := originatingTime.Add(-time.Duration(float64(trailing) / fa.bytesPerSecond * float64(time.Second)))
		if !timestamp.After(fa.lastEmittedTimestamp) {
			// Upstream clocks can jump backward; keep emissions strictly
			// monotonic by the smallest representable step.
			timestamp = fa.lastEmittedTimestamp.Add(time.Nanosecond)
		}
		fa.lastEmittedTimestamp = timestamp

		emit(fa.scratch, timestamp)

		copy(fa.scratch, fa.scratch[fa.shiftBytes:])
		fa.bytesRemainingToFill = fa.shiftBytes
	}
}

// FrameSizeBytes returns the size of emitted frames in bytes
func (fa *FrameAccumulator) FrameSizeBytes() int {
	return fa.frameSizeBytes
}

// ShiftBytes returns the advance between consecutive frames in bytes
func (fa *FrameAccumulator) ShiftBytes() int {
	return fa.shiftBytes
}

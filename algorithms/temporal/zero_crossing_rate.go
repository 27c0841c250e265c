package temporal

// ZeroCrossingRate counts sign changes between consecutive samples,
// normalized by frame length. Only a strictly negative product counts as
// a crossing, so a sample of exactly zero never crosses on either side.
type ZeroCrossingRate struct{}

// NewZeroCrossingRate creates a zero crossing rate reducer
func NewZeroCrossingRate() *ZeroCrossingRate {
	return &ZeroCrossingRate{}
}

// Compute returns the crossing count divided by the frame length
func (zcr *ZeroCrossingRate) Compute(frame []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(frame); i++ {
		if frame[i]*frame[i-1] < 0 {
			crossings++
		}
	}

	return float64(crossings) / float64(len(frame))
}

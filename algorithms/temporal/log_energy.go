package temporal

import (
	"math"
)

// logEnergyFloor is the clamp applied below a mean square of 1e-40,
// approximately log(1e-40). Returning the constant avoids -Inf on silent
// frames and keeps the floor value exact.
const logEnergyFloor = -92.1

// LogEnergy computes the natural log of the mean squared sample value of
// a frame
type LogEnergy struct{}

// NewLogEnergy creates a log energy reducer
func NewLogEnergy() *LogEnergy {
	return &LogEnergy{}
}

// Compute returns log(mean(frame[i]^2)), clamped to -92.1 when the mean
// square falls below 1e-40
func (le *LogEnergy) Compute(frame []float64) float64 {
	sumSquares := 0.0
	for _, s := range frame {
		sumSquares += s * s
	}
	meanSquare := sumSquares / float64(len(frame))

	if meanSquare < 1e-40 {
		return logEnergyFloor
	}
	return math.Log(meanSquare)
}

// resonance.go
package coil

import (
	"fmt"
	"math"
)

// ResonantFrequency f = 1 / (2π √(LC))
func ResonantFrequency(L, C float64) (float64, error) {
	if !(L > 0) || math.IsInf(L, 0) {
		return 0, fmt.Errorf("%w: L = %g", ErrNonPhysical, L)
	}
	if !(C > 0) || math.IsInf(C, 0) {
		return 0, fmt.Errorf("%w: C = %g", ErrNonPhysical, C)
	}
	return 1 / (2 * math.Pi * math.Sqrt(L*C)), nil
}

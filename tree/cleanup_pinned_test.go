package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAnglesHaveNoLargeGap pins the wrap-around check in its exact
// form (angles[0]-angles[last]+pi > convexityTol over angles sorted
// into (-pi,pi]); see anglesHaveNoLargeGap for why that form must not
// be paraphrased.
func TestAnglesHaveNoLargeGap(t *testing.T) {
	cases := []struct {
		name   string
		angles []float64
		want   bool
	}{
		{"empty", nil, false},
		{"single angle leaves a full-circle gap", []float64{0}, false},
		{"two opposite angles", []float64{0, math.Pi}, true},
		{"two angles just under opposite", []float64{0, math.Pi - 0.01}, false},
		{"four paper-corner angles", []float64{-math.Pi / 2, 0, math.Pi / 2, math.Pi}, true},
		{"three angles with one reflex gap", []float64{0, 0.3, 0.6}, false},
		{"dense fan", []float64{-2.8, -1.4, 0, 1.4, 2.8}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			angles := append([]float64{}, tc.angles...)
			assert.Equal(t, tc.want, anglesHaveNoLargeGap(angles))
		})
	}
}

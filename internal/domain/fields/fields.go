package fields

import (
	"math"
	"strconv"
)

// Rating is a catalog rating on the 0-10 scale.
type Rating float64

const MaxRating Rating = 10

// Scales a dataset may declare its ratings on.
const (
	ScaleTen  = 10
	ScaleFive = 5
)

func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(r.Rounded(), 'f', 1, 64)), nil
}

// Rounded returns the rating rounded to one decimal place.
func (r Rating) Rounded() float64 {
	return math.Round(float64(r)*10) / 10
}

// ScaleRating converts a rating read from a dataset declared on the given scale
// to the canonical 0-10 scale. Unknown scales are treated as 0-10.
func ScaleRating(v float64, scale int) Rating {
	if scale == ScaleFive {
		v *= 2
	}
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > float64(MaxRating):
		return MaxRating
	}
	return Rating(v)
}

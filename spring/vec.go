package spring

// Squared-magnitude helpers for intermediate vectors. Sleep checks compare
// against squared thresholds, so the square roots are never taken.

// magnitudeSq returns the squared magnitude of v.
func magnitudeSq(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// distanceSq returns the squared distance between a and b.
func distanceSq(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

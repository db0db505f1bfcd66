package utils

// Halton returns the radical inverse of i in the given prime base, the
// i-th element of the one-dimensional Halton sequence. Successive i fill
// the unit interval with low discrepancy.
func Halton(prime uint, i int) float64 {
	val := 0.0
	invBase := 1.0 / float64(prime)
	f := invBase
	n := i
	for n > 0 {
		val += float64(n%int(prime)) * f
		n /= int(prime)
		f *= invBase
	}
	return val
}

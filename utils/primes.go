// Package utils contains the low-discrepancy sequence and permutation
// helpers shared by the roadmap generators and the edge check scheduler.
package utils

// primes holds enough primes for one Halton base per configuration space
// dimension. Spaces beyond this dimensionality are not supported by the
// Halton-based generators.
var primes = []uint{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
}

// GetPrime returns the (k+1)-th prime from the hardcoded table, or 0 if
// the table is not large enough.
func GetPrime(k int) uint {
	if k < 0 || k >= len(primes) {
		return 0
	}
	return primes[k]
}

// NumPrimes returns how many primes are hardcoded.
func NumPrimes() int {
	return len(primes)
}

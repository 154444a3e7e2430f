package service

import (
	"math"
	"math/big"
	"time"
)

// currentYear is the in-universe "now" the rating formula is anchored to.
const currentYear = 3019

// Rating computes a ship's rating:
//
//	k      = 0.5 if used, else 1
//	rating = round((80 * speed * k) / (currentYear - prodYear + 1), 2)
//
// prodYear is taken in UTC. The caller guarantees prodYear <= currentYear.
func Rating(speed float64, isUsed bool, prodDate time.Time) float64 {
	k := 1.0
	if isUsed {
		k = 0.5
	}
	prodYear := prodDate.UTC().Year()
	raw := (80 * speed * k) / float64(currentYear-prodYear+1)
	return roundHalfUp(raw, 2)
}

// roundHalfUp rounds x to the given number of decimal places, ties away from
// zero. The decision is made on the exact binary value of x, so 0.125 rounds
// to 0.13 while 1.005 (stored as 1.00499999...) rounds to 1.0.
func roundHalfUp(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 {
		return -roundHalfUp(-x, places)
	}
	scale := math.Pow10(places)

	f := new(big.Float).SetPrec(256).SetFloat64(x)
	f.Mul(f, new(big.Float).SetFloat64(scale))
	f.Add(f, big.NewFloat(0.5))
	n, _ := f.Int(nil)

	r, _ := new(big.Float).SetInt(n).Float64()
	return r / scale
}

package wfc

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(normalizeSeed(seed)))
}

func normalizeSeed(seed int64) int64 {
	if seed == 0 {
		return defaultRNGSeed
	}
	return seed
}

// deriveSeed mixes a parent seed and an attempt number into a new seed with
// a SplitMix64 finalizer, so consecutive attempts get uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// attemptSeeds returns the seed of every attempt. Attempt 0 uses the base
// seed itself so a single-attempt solve is replayable with the same seed.
// When base is non-nil the seeds are drawn from it instead.
func attemptSeeds(seed int64, base *rand.Rand, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		switch {
		case base != nil:
			out[i] = base.Int63()
		case i == 0:
			out[i] = normalizeSeed(seed)
		default:
			out[i] = deriveSeed(normalizeSeed(seed), uint64(i))
		}
	}
	return out
}

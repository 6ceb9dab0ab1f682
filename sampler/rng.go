package sampler

import "math/rand"

// defaultSeed replaces a zero seed so that the zero Config stays reproducible.
const defaultSeed int64 = 1

// chunkSeed derives an independent seed for one chunk (SplitMix64 finalizer).
func chunkSeed(seed int64, chunk uint64) int64 {
	if seed == 0 {
		seed = defaultSeed
	}
	x := uint64(seed) ^ (chunk + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

func newChunkRNG(seed int64, chunk int) *rand.Rand {
	return rand.New(rand.NewSource(chunkSeed(seed, uint64(chunk)))) // nolint gosec
}

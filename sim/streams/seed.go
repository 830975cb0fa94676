package streams

import "hash/fnv"

// offsetModulus bounds hashed seed offsets so base seed + offset stays far from
// int64 overflow for any practical base seed.
const offsetModulus = 100_000_000

// SeedOffset derives the default seed offset of a stream from its name.
// The same name always yields the same offset, across processes and platforms.
func SeedOffset(name string) int64 {
	return int64(fnv1a64(name) % offsetModulus)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

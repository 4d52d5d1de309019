package services

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// seedStream is the second PCG word; any fixed value works as long as it never changes
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns a random source for the given seed along with the seed actually used.
// Numeric seeds are used as is, other strings are hashed. An empty seed picks a random one,
// which is returned so the run can be reproduced.
func NewRand(seed string) (*rand.Rand, uint64) {
	value := seedValue(seed)
	return rand.New(rand.NewPCG(value, seedStream)), value
}

func seedValue(seed string) uint64 {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return rand.Uint64()
	}
	if n, err := strconv.ParseUint(seed, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return h.Sum64()
}

// fullNames extracts display names from a list of people (useful for logging)
func fullNames(people []model.Person) []string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.FullName()
	}
	return names
}

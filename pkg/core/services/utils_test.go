package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRand_NumericSeed(t *testing.T) {
	a, seedA := NewRand("12345")
	b, seedB := NewRand(" 12345 ")

	assert.Equal(t, uint64(12345), seedA)
	assert.Equal(t, seedA, seedB)
	assert.Equal(t, a.Uint64(), b.Uint64())
}

func TestNewRand_TextSeed(t *testing.T) {
	_, first := NewRand("spring rota")
	_, second := NewRand("spring rota")
	_, other := NewRand("autumn rota")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestNewRand_EmptySeedIsReproducible(t *testing.T) {
	a, seed := NewRand("")
	b, _ := NewRand(fmt.Sprint(seed))

	assert.Equal(t, a.Uint64(), b.Uint64())
}

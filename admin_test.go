package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAdminToken(t *testing.T) {
	token := generateAdminToken()
	assert.Len(t, token, 64)
	assert.NotEqual(t, token, generateAdminToken())
}

func TestHashIPConsistentAndTruncated(t *testing.T) {
	hashingSalt = "test-salt"

	h := hashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, hashIP("203.0.113.7"), "same IP hashes the same")
	assert.NotEqual(t, h, hashIP("203.0.113.8"))
}

func TestHashIPDependsOnSalt(t *testing.T) {
	hashingSalt = "salt-one"
	first := hashIP("203.0.113.7")

	hashingSalt = "salt-two"
	assert.NotEqual(t, first, hashIP("203.0.113.7"))
}

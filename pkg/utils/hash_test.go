package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashString("abc"))
	assert.Equal(t, HashString("+31612345678"), HashString("+31612345678"))
	assert.NotEqual(t, HashString("+31612345678"), HashString("+31612345679"))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "ba7816bf8f01", ShortHash("abc"))
	assert.Equal(t, "", ShortHash(""))
}

func TestMaskSecrets(t *testing.T) {
	url := "https://vapi.example/validation?key=pub123&signature=abc"
	assert.Equal(t, "https://vapi.example/validation?key=***&signature=abc", MaskSecrets(url, "pub123", "", "priv"))
}

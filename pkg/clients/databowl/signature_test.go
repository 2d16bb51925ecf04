package databowl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureString(t *testing.T) {
	got := SignatureString(1700000000, "validate", "hlr", []Param{{Key: "mobile", Value: "+31612345678"}})
	assert.Equal(t, "timestamp=1700000000&service=validate&type=hlr&data[mobile]=%2B31612345678", got)

	got = SignatureString(1, "validate", "email", []Param{{"email", "jan@example.nl"}, {"extra", "a b"}})
	assert.Equal(t, "timestamp=1&service=validate&type=email&data[email]=jan%40example.nl&data[extra]=a+b", got)
}

func TestSign_MatchesHMAC(t *testing.T) {
	data := []Param{{Key: "mobile", Value: "+31612345678"}}
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(SignatureString(1700000000, "validate", "hlr", data)))

	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), Sign("secret", 1700000000, "validate", "hlr", data))
}

func TestSign_Deterministic(t *testing.T) {
	data := []Param{{Key: "mobile", Value: "+31612345678"}}
	first := Sign("secret", 1700000000, "validate", "hlr", data)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Sign("secret", 1700000000, "validate", "hlr", data))
	}
	assert.Len(t, first, 64)
}

func TestSign_SensitiveToEveryInput(t *testing.T) {
	base := Sign("secret", 1700000000, "validate", "hlr", []Param{{"mobile", "+31612345678"}})

	variants := map[string]string{
		"private key": Sign("other", 1700000000, "validate", "hlr", []Param{{"mobile", "+31612345678"}}),
		"timestamp":   Sign("secret", 1700000001, "validate", "hlr", []Param{{"mobile", "+31612345678"}}),
		"service":     Sign("secret", 1700000000, "lookup", "hlr", []Param{{"mobile", "+31612345678"}}),
		"type":        Sign("secret", 1700000000, "validate", "email", []Param{{"mobile", "+31612345678"}}),
		"data key":    Sign("secret", 1700000000, "validate", "hlr", []Param{{"phone", "+31612345678"}}),
		"data value":  Sign("secret", 1700000000, "validate", "hlr", []Param{{"mobile", "+31612345679"}}),
		"extra data":  Sign("secret", 1700000000, "validate", "hlr", []Param{{"mobile", "+31612345678"}, {"x", "y"}}),
	}
	for name, sig := range variants {
		assert.NotEqual(t, base, sig, name)
	}
}

func TestSign_DataOrderMatters(t *testing.T) {
	a := Sign("k", 1, "s", "t", []Param{{"a", "1"}, {"b", "2"}})
	b := Sign("k", 1, "s", "t", []Param{{"b", "2"}, {"a", "1"}})
	assert.NotEqual(t, a, b)
}

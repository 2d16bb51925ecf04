package databowl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

// Param is one data[...] entry. Order matters: it is signed in the order given.
type Param struct {
	Key   string
	Value string
}

// SignatureString builds
//
//	timestamp=<t>&service=<s>&type=<t>&data[<k>]=<v>...
//
// with data values query-escaped.
func SignatureString(timestamp int64, service, validationType string, data []Param) string {
	var b strings.Builder
	b.WriteString("timestamp=")
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteString("&service=")
	b.WriteString(service)
	b.WriteString("&type=")
	b.WriteString(validationType)
	for _, p := range data {
		b.WriteString("&data[")
		b.WriteString(p.Key)
		b.WriteString("]=")
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Sign returns the hex HMAC-SHA256 of the signature string keyed by privateKey.
func Sign(privateKey string, timestamp int64, service, validationType string, data []Param) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write([]byte(SignatureString(timestamp, service, validationType, data)))
	return hex.EncodeToString(mac.Sum(nil))
}

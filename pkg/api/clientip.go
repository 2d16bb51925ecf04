package api

import (
	"net"
	"net/http"
	"strings"
)

const unknownIP = "Unknown"

// ClientIP picks the caller address in the order Cloudflare, proxy chain,
// Client-IP header, connection. Headers are trusted as sent.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("Client-IP")); ip != "" {
		return ip
	}
	if r.RemoteAddr == "" {
		return unknownIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Yanu403/sunkong/internal/session"
)

// AuthMode selects which credential material authenticates a request.
type AuthMode int

const (
	// AuthNone attaches no credentials at all.
	AuthNone AuthMode = iota
	// AuthInitData authenticates with the signed session string.
	AuthInitData
	// AuthToken authenticates with the bearer token issued by login.
	AuthToken
)

const (
	defaultTokenScheme    = "Bearer "
	defaultInitDataScheme = "tma "

	// SchemeRaw is the sentinel scheme that places the credential in the
	// bare rawdata header instead of a prefixed Authorization header.
	SchemeRaw = "raw"
)

// Request describes one API call as a typed intent. Headers are derived from
// it in a single construction; nothing is merged in and later deleted.
type Request struct {
	Method string
	URL    string
	Auth   AuthMode
	// Scheme overrides the Authorization prefix. Empty picks the default
	// for the auth mode; for AuthInitData the sentinel SchemeRaw selects
	// the rawdata header instead.
	Scheme string
	Body   any
}

// staticHeaders is the fixed browser-impersonation set attached to every call.
var staticHeaders = map[string]string{
	"Content-Type":       "application/json",
	"scheme":             "https",
	"Priority":           "u=1, i",
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": "Windows",
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-site",
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
}

// BuildHeaders derives the complete header set for a request. At most one of
// rawdata / Authorization is ever present: exactly one in authenticated
// modes, neither for AuthNone.
func BuildHeaders(req Request, sess *session.Session) (http.Header, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parse request url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("request url %q has no origin", req.URL)
	}
	origin := u.Scheme + "://" + u.Host

	h := http.Header{}
	for k, v := range staticHeaders {
		h.Set(k, v)
	}
	h.Set("Origin", origin)
	h.Set("authority", origin)
	h.Set("path", u.RequestURI())
	h.Set("method", req.Method)

	switch req.Auth {
	case AuthNone:
		// no credential headers
	case AuthInitData:
		prof := sess.Profile()
		scheme := req.Scheme
		if scheme == "" {
			scheme = defaultInitDataScheme
		}
		if scheme == SchemeRaw {
			h.Set("rawdata", prof.Raw)
		} else {
			h.Set("Authorization", scheme+prof.Decoded)
		}
	case AuthToken:
		scheme := req.Scheme
		if scheme == "" {
			scheme = defaultTokenScheme
		}
		h.Set("Authorization", scheme+sess.Profile().Token())
	default:
		return nil, fmt.Errorf("unknown auth mode %d", req.Auth)
	}
	return h, nil
}

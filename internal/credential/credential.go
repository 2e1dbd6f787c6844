// Package credential turns the opaque signed-session strings issued by the
// source platform into structured records the workflows can authenticate with.
package credential

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Record is one account's session material. All fields except the token are
// fixed at decode time; the token is assigned by login and forgotten before
// the next scheduled cycle.
type Record struct {
	UserID   int64
	Username string

	// Raw is the credential exactly as supplied, used by the rawdata auth
	// mode. Decoded is the URL-decoded query-string form, used by the
	// prefixed-Authorization auth mode and as the login payload.
	Raw     string
	Decoded string

	AuthDate     string
	ChatInstance string
	ChatType     string
	StartParam   string
	Signature    string
	Hash         string

	token string
}

// Token returns the bearer token issued by login, empty until then.
func (r *Record) Token() string { return r.token }

// SetToken stores the access token for the remainder of the current pass.
func (r *Record) SetToken(t string) { r.token = t }

// ClearToken forgets the token so the next cycle starts with a fresh login.
func (r *Record) ClearToken() { r.token = "" }

type userInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Decode parses a raw session string. Strings already carrying the query-id
// or user marker are taken as-is; anything else is URL-unescaped once first.
func Decode(raw string) (*Record, error) {
	decoded := raw
	if !strings.HasPrefix(raw, "query_id=") && !strings.HasPrefix(raw, "user=") {
		var err error
		decoded, err = url.QueryUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("unescape credential: %w", err)
		}
	}

	values, err := url.ParseQuery(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse credential: %w", err)
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, fmt.Errorf("credential has no user field")
	}
	var u userInfo
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return nil, fmt.Errorf("parse user field: %w", err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("credential user has no id")
	}

	return &Record{
		UserID:       u.ID,
		Username:     u.Username,
		Raw:          raw,
		Decoded:      decoded,
		AuthDate:     values.Get("auth_date"),
		ChatInstance: values.Get("chat_instance"),
		ChatType:     values.Get("chat_type"),
		StartParam:   values.Get("start_param"),
		Signature:    values.Get("signature"),
		Hash:         values.Get("hash"),
	}, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Yanu403/sunkong/internal/models"
	"github.com/Yanu403/sunkong/internal/session"
)

// LoginResponse is the login endpoint's payload.
type LoginResponse struct {
	Token struct {
		AccessToken string `json:"access_token"`
	} `json:"token"`
	Point float64 `json:"point"`
}

// ReferralStatus reports how many referral points are waiting to be claimed.
type ReferralStatus struct {
	Claimable int `json:"claimable"`
}

// WithdrawResponse is the referral-withdraw payload. Point is a pointer so a
// response without the field is distinguishable from a zero balance.
type WithdrawResponse struct {
	Point *float64 `json:"point"`
}

// Login exchanges the account's session string for an access token. The call
// itself is unauthenticated; the credential travels in the body.
func (c *Client) Login(ctx context.Context, sess *session.Session) (*LoginResponse, bool) {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodPost,
		URL:    c.url("/login"),
		Auth:   AuthNone,
		Body:   map[string]string{"init_data": sess.Profile().Decoded},
	})
	if !res.OK() {
		return nil, false
	}
	var out LoginResponse
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		c.log.Error("decoding login response failed", "err", err)
		return nil, false
	}
	return &out, true
}

// Missions fetches the account's quest list.
func (c *Client) Missions(ctx context.Context, sess *session.Session) ([]models.Quest, bool) {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodGet,
		URL:    c.url("/missions"),
		Auth:   AuthToken,
	})
	if !res.OK() {
		return nil, false
	}
	var out []models.Quest
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		c.log.Error("decoding quest list failed", "err", err)
		return nil, false
	}
	return out, true
}

// CompleteMission registers quest progress; claiming is only valid after it.
func (c *Client) CompleteMission(ctx context.Context, sess *session.Session, id int64) bool {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodPost,
		URL:    c.url("/missions/complete/" + strconv.FormatInt(id, 10)),
		Auth:   AuthToken,
	})
	return res.OK()
}

// ClaimMission collects the reward for a completed quest.
func (c *Client) ClaimMission(ctx context.Context, sess *session.Session, id int64) bool {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodPost,
		URL:    c.url("/missions/claim/" + strconv.FormatInt(id, 10)),
		Auth:   AuthToken,
	})
	return res.OK()
}

// Referral fetches the account's referral status.
func (c *Client) Referral(ctx context.Context, sess *session.Session) (*ReferralStatus, bool) {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodGet,
		URL:    c.url("/referral"),
		Auth:   AuthToken,
	})
	if !res.OK() {
		return nil, false
	}
	var out ReferralStatus
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		c.log.Error("decoding referral status failed", "err", err)
		return nil, false
	}
	return &out, true
}

// Withdraw claims the pending referral points.
func (c *Client) Withdraw(ctx context.Context, sess *session.Session) (*WithdrawResponse, bool) {
	res := c.Do(ctx, sess, Request{
		Method: http.MethodPost,
		URL:    c.url("/referral/withdraw"),
		Auth:   AuthToken,
	})
	if !res.OK() {
		return nil, false
	}
	var out WithdrawResponse
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		c.log.Error("decoding withdraw response failed", "err", err)
		return nil, false
	}
	return &out, true
}

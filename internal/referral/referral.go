// Package referral checks and withdraws referral-reward points for the
// active account.
package referral

import (
	"context"

	"github.com/Yanu403/sunkong/internal/api"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/session"
)

type Service struct {
	api *api.Client
	log *logging.Logger
}

func New(client *api.Client, log *logging.Logger) *Service {
	return &Service{api: client, log: log.With("module", "referral")}
}

// CheckClaim reports how many referral points are claimable, zero when there
// is nothing to collect or the status could not be fetched. A non-zero return
// is the only thing that should trigger Claim.
func (s *Service) CheckClaim(ctx context.Context, sess *session.Session) int {
	log := logging.ForSession(s.log, sess.Project(), sess.Username())

	status, ok := s.api.Referral(ctx, sess)
	if !ok {
		log.Error("could not fetch referral status")
		return 0
	}
	if status.Claimable > 0 {
		log.Info("referral points waiting", "claimable", status.Claimable)
	}
	return status.Claimable
}

// Claim withdraws the pending referral points. Success requires the response
// to carry a point balance; anything else is a failed claim, not retried.
func (s *Service) Claim(ctx context.Context, sess *session.Session) bool {
	log := logging.ForSession(s.log, sess.Project(), sess.Username())

	res, ok := s.api.Withdraw(ctx, sess)
	if !ok {
		log.Error("referral withdraw failed")
		return false
	}
	if res.Point == nil {
		log.Warn("withdraw response carried no balance")
		return false
	}
	log.Info("referral points claimed", "balance", *res.Point)
	return true
}

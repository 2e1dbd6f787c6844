package scheduler

import (
	"context"

	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/models"
	"github.com/Yanu403/sunkong/internal/quest"
	"github.com/Yanu403/sunkong/internal/referral"
	"github.com/Yanu403/sunkong/internal/session"
)

// WorkflowRunner is the production AccountRunner: login, quests, then the
// referral gate. Each step absorbs its own failures, so a pass always
// completes and reports whatever it managed to do.
type WorkflowRunner struct {
	quest    *quest.Service
	referral *referral.Service
	log      *logging.Logger
}

func NewWorkflowRunner(q *quest.Service, r *referral.Service, log *logging.Logger) *WorkflowRunner {
	return &WorkflowRunner{quest: q, referral: r, log: log.With("module", "runner")}
}

func (w *WorkflowRunner) RunAccount(ctx context.Context, sess *session.Session) models.PassResult {
	log := logging.ForSession(w.log, sess.Project(), sess.Username())
	log.Info("account pass starting")

	res := models.PassResult{Project: sess.Project(), Username: sess.Username()}

	points, ok := w.quest.Login(ctx, sess)
	res.LoginOK = ok
	res.Points = points
	if !ok {
		log.Warn("account skipped, login failed")
		return res
	}

	res.QuestsCompleted, res.QuestsTotal = w.quest.DoQuests(ctx, sess)

	// withdraw only behind a truthy claimable gate, never speculatively
	if claimable := w.referral.CheckClaim(ctx, sess); claimable > 0 {
		res.ReferralClaimed = w.referral.Claim(ctx, sess)
	}

	log.Info("account pass finished",
		"quests_completed", res.QuestsCompleted,
		"quests_attempted", res.QuestsTotal,
		"referral_claimed", res.ReferralClaimed)
	return res
}

// Package quest drives one account through the login and quest-completion
// workflow. Every failure is absorbed into a log line and a false result; the
// scheduler always moves on to the next quest or account.
package quest

import (
	"context"

	"github.com/Yanu403/sunkong/internal/api"
	"github.com/Yanu403/sunkong/internal/config"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/models"
	"github.com/Yanu403/sunkong/internal/pacing"
	"github.com/Yanu403/sunkong/internal/session"
)

// excludedTypes lists quest types this workflow never touches. Referral
// quests are claimed through the referral workflow instead.
var excludedTypes = map[string]bool{
	"INVITE": true,
}

type Service struct {
	api   *api.Client
	cfg   *config.Config
	log   *logging.Logger
	sleep pacing.Sleeper
}

func New(client *api.Client, cfg *config.Config, log *logging.Logger) *Service {
	return &Service{api: client, cfg: cfg, log: log.With("module", "quest"), sleep: pacing.SleepRandom}
}

// Login authenticates the active account and stores the issued token in its
// credential record. Returns the reported point balance and whether the
// account may proceed; a failed login aborts the account for this pass.
func (s *Service) Login(ctx context.Context, sess *session.Session) (float64, bool) {
	log := logging.ForSession(s.log, sess.Project(), sess.Username())

	res, ok := s.api.Login(ctx, sess)
	if !ok {
		log.Error("login failed, session string may need re-issuing")
		return 0, false
	}
	if res.Token.AccessToken == "" {
		log.Error("login response carried no access token")
		return 0, false
	}
	sess.Profile().SetToken(res.Token.AccessToken)
	log.Info("logged in", "balance", res.Point)
	return res.Point, true
}

// DoQuests runs one pass over the account's unfinished quests, strictly in
// list order: register progress, pause, then claim. A quest whose progress
// call fails is skipped without a claim and retried only on a later cycle.
// Returns how many quests were claimed and how many were attempted.
func (s *Service) DoQuests(ctx context.Context, sess *session.Session) (completed, attempted int) {
	log := logging.ForSession(s.log, sess.Project(), sess.Username())

	quests, ok := s.api.Missions(ctx, sess)
	if !ok {
		log.Error("could not fetch quest list")
		return 0, 0
	}

	todo := Unfinished(quests)
	if len(todo) == 0 {
		log.Info("all quests already done")
		return 0, 0
	}
	log.Info("starting quests", "count", len(todo))

	for _, q := range todo {
		if ctx.Err() != nil {
			return completed, len(todo)
		}
		if !s.api.CompleteMission(ctx, sess, q.ID) {
			log.Warn("quest start failed", "id", q.ID, "title", q.Title)
			continue
		}
		s.sleep(ctx, s.cfg.Pacing.QuestDelayMinMs, s.cfg.Pacing.QuestDelayMaxMs)
		if s.api.ClaimMission(ctx, sess, q.ID) {
			completed++
			log.Info("quest claimed", "id", q.ID, "title", q.Title)
		} else {
			log.Warn("quest claim failed", "id", q.ID, "title", q.Title)
		}
	}
	log.Info("quest pass finished", "claimed", completed, "attempted", len(todo))
	return completed, len(todo)
}

// Unfinished filters a quest list down to the quests this workflow will
// attempt: not yet done and not of an excluded type. Order is preserved.
func Unfinished(quests []models.Quest) []models.Quest {
	var out []models.Quest
	for _, q := range quests {
		if q.IsDone || excludedTypes[q.Type] {
			continue
		}
		out = append(out, q)
	}
	return out
}

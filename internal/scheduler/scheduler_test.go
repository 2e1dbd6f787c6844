package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yanu403/sunkong/internal/config"
	"github.com/Yanu403/sunkong/internal/credential"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/models"
	"github.com/Yanu403/sunkong/internal/pacing"
	"github.com/Yanu403/sunkong/internal/profile"
	"github.com/Yanu403/sunkong/internal/session"
)

// recordingRunner notes every account it is handed, in order.
type recordingRunner struct {
	visits []string
}

func (r *recordingRunner) RunAccount(ctx context.Context, sess *session.Session) models.PassResult {
	r.visits = append(r.visits, sess.Project()+"/"+sess.Username())
	return models.PassResult{LoginOK: true}
}

func testRecord(t *testing.T, id, username string) *credential.Record {
	t.Helper()
	rec, err := credential.Decode("query_id=AAF" + id +
		"&user=%7B%22id%22%3A" + id + "%2C%22username%22%3A%22" + username + "%22%7D" +
		"&auth_date=1720000000&hash=abcd")
	require.NoError(t, err)
	return rec
}

func newTestScheduler(t *testing.T, dailyProjects []string, table *profile.Table) (*Scheduler, *recordingRunner) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Schedule.CycleIntervalHours = 24
	cfg.Schedule.DailyProjects = dailyProjects

	runner := &recordingRunner{}
	s := New(cfg, table, runner, nil, logging.New("error"))
	s.sleep = pacing.None
	s.wait = func(context.Context, time.Duration) {}
	return s, runner
}

func TestFirstCycleRunsEveryProject(t *testing.T) {
	table := profile.NewTable([]profile.Project{
		{Name: "sunkong", Accounts: []*credential.Record{testRecord(t, "11", "alice"), testRecord(t, "22", "bob")}},
		{Name: "oneshot", Accounts: []*credential.Record{testRecord(t, "33", "carol")}},
	})
	s, runner := newTestScheduler(t, []string{"sunkong"}, table)

	require.NoError(t, s.runCycle(context.Background(), 1))
	assert.Equal(t, []string{"sunkong/alice", "sunkong/bob", "oneshot/carol"}, runner.visits)
}

func TestLaterCyclesSkipUnlistedProjects(t *testing.T) {
	table := profile.NewTable([]profile.Project{
		{Name: "sunkong", Accounts: []*credential.Record{testRecord(t, "11", "alice")}},
		{Name: "oneshot", Accounts: []*credential.Record{testRecord(t, "33", "carol")}},
	})
	s, runner := newTestScheduler(t, []string{"sunkong"}, table)

	require.NoError(t, s.runCycle(context.Background(), 1))
	require.NoError(t, s.runCycle(context.Background(), 2))
	require.NoError(t, s.runCycle(context.Background(), 3))

	assert.Equal(t, []string{
		"sunkong/alice", "oneshot/carol", // cycle 1: everything
		"sunkong/alice", // cycle 2: allow-listed only
		"sunkong/alice", // cycle 3: allow-listed only
	}, runner.visits)
}

func TestCycleClearsTokens(t *testing.T) {
	rec := testRecord(t, "11", "alice")
	rec.SetToken("stale")
	table := profile.NewTable([]profile.Project{
		{Name: "sunkong", Accounts: []*credential.Record{rec}},
	})
	s, _ := newTestScheduler(t, []string{"sunkong"}, table)

	require.NoError(t, s.runCycle(context.Background(), 2))
	assert.Empty(t, rec.Token(), "a new cycle must start from a fresh login")
}

func TestRunStopsOnCancel(t *testing.T) {
	table := profile.NewTable([]profile.Project{
		{Name: "sunkong", Accounts: []*credential.Record{testRecord(t, "11", "alice")}},
	})
	s, runner := newTestScheduler(t, []string{"sunkong"}, table)

	ctx, cancel := context.WithCancel(context.Background())
	s.wait = func(context.Context, time.Duration) { cancel() }

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"sunkong/alice"}, runner.visits, "exactly one cycle before cancellation")
}

func TestRunOnceIsASingleFirstCycle(t *testing.T) {
	table := profile.NewTable([]profile.Project{
		{Name: "oneshot", Accounts: []*credential.Record{testRecord(t, "33", "carol")}},
	})
	s, runner := newTestScheduler(t, []string{"sunkong"}, table)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"oneshot/carol"}, runner.visits)
}

package referral

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yanu403/sunkong/internal/api"
	"github.com/Yanu403/sunkong/internal/credential"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/session"
)

const testInitData = "query_id=AAF7xQ4b" +
	"&user=%7B%22id%22%3A42%2C%22username%22%3A%22andi88%22%7D" +
	"&auth_date=1720000000&hash=abcd"

func newTestService(t *testing.T, referralBody, withdrawBody string) (*Service, *session.Session) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/referral":
			fmt.Fprint(w, referralBody)
		case "/v1/referral/withdraw":
			fmt.Fprint(w, withdrawBody)
		}
	}))
	t.Cleanup(ts.Close)

	log := logging.New("error")
	svc := New(api.NewClient(ts.URL+"/v1", 5*time.Second, log), log)

	rec, err := credential.Decode(testInitData)
	require.NoError(t, err)
	return svc, session.New("sunkong", rec)
}

func TestCheckClaimReportsClaimable(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 7}`, `{}`)
	assert.Equal(t, 7, svc.CheckClaim(context.Background(), sess))
}

func TestCheckClaimZeroWhenNothingPending(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 0}`, `{}`)
	assert.Zero(t, svc.CheckClaim(context.Background(), sess))
}

func TestCheckClaimZeroOnFailure(t *testing.T) {
	svc, sess := newTestService(t, ``, `{}`)
	assert.Zero(t, svc.CheckClaim(context.Background(), sess))
}

func TestClaimSucceedsOnPointBalance(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 7}`, `{"point": 340}`)
	assert.True(t, svc.Claim(context.Background(), sess))
}

func TestClaimZeroBalanceStillSucceeds(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 7}`, `{"point": 0}`)
	assert.True(t, svc.Claim(context.Background(), sess))
}

func TestClaimFailsWithoutPointField(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 7}`, `{"ok": true}`)
	assert.False(t, svc.Claim(context.Background(), sess))
}

func TestClaimFailsOnServerError(t *testing.T) {
	svc, sess := newTestService(t, `{"claimable": 7}`, `{"statusCode": 500, "message": "later"}`)
	assert.False(t, svc.Claim(context.Background(), sess))
}

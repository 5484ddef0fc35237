// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/erc20bank/api/events"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/test/testledger"
)

const limit = 5

func newServer(t *testing.T) (*testledger.Ledger, *httptest.Server) {
	tl, err := testledger.New()
	require.NoError(t, err)
	t.Cleanup(tl.Close)

	// deploy at t0, deposits at t0+10 and t0+20, withdraw after 2T
	tl.Clock.Advance(10 * time.Second)
	require.NoError(t, tl.Stake(tl.Accounts[0], 10))
	tl.Clock.Advance(10 * time.Second)
	require.NoError(t, tl.Stake(tl.Accounts[1], 30))
	tl.AdvancePeriods(2, 0)
	_, err = tl.Withdraw(tl.Accounts[0])
	require.NoError(t, err)

	router := mux.NewRouter()
	events.New(tl.Ledger, limit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return tl, ts
}

func query(t *testing.T, url string) ([]*events.Event, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if res.StatusCode != http.StatusOK {
		return nil, res.StatusCode
	}
	var evs []*events.Event
	require.NoError(t, json.Unmarshal(body, &evs))
	return evs, res.StatusCode
}

func kinds(evs []*events.Event) []logdb.Kind {
	out := make([]logdb.Kind, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func TestEvents(t *testing.T) {
	tl, ts := newServer(t)
	base := ts.URL + "/events"

	evs, code := query(t, base)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []logdb.Kind{logdb.KindDeploy, logdb.KindDeposit, logdb.KindDeposit, logdb.KindWithdraw}, kinds(evs))
	assert.Equal(t, tl.Owner, evs[0].Participant)

	evs, _ = query(t, base+"?order=desc&limit=1")
	assert.Equal(t, []logdb.Kind{logdb.KindWithdraw}, kinds(evs))
	assert.Equal(t, int64(10), (*big.Int)(evs[0].Amount).Int64())

	evs, _ = query(t, base+"?participant="+tl.Accounts[0].String())
	assert.Equal(t, []logdb.Kind{logdb.KindDeposit, logdb.KindWithdraw}, kinds(evs))

	evs, _ = query(t, base+"?kind=deposit&kind=withdraw&offset=1")
	assert.Equal(t, []logdb.Kind{logdb.KindDeposit, logdb.KindWithdraw}, kinds(evs))

	evs, _ = query(t, base+"?from=1700000010&to=1700000015")
	assert.Equal(t, []logdb.Kind{logdb.KindDeposit}, kinds(evs))

	evs, _ = query(t, base+"?from=1700000015")
	assert.Equal(t, []logdb.Kind{logdb.KindDeposit, logdb.KindWithdraw}, kinds(evs))
}

func TestEventsBadQuery(t *testing.T) {
	_, ts := newServer(t)
	base := ts.URL + "/events"

	for _, q := range []string{
		"?participant=0x1",
		"?kind=mint",
		"?from=abc",
		"?from=10&to=5",
		"?order=up",
		"?offset=-1",
	} {
		_, code := query(t, base+q)
		assert.Equal(t, http.StatusBadRequest, code, q)
	}

	_, code := query(t, base+"?limit=6")
	assert.Equal(t, http.StatusForbidden, code)
}

// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestAPILogs(t *testing.T) {
	var enabled atomic.Bool
	router := mux.NewRouter()
	New(&enabled).Mount(router, "/admin/apilogs")

	do := func(method, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, "/admin/apilogs", strings.NewReader(body)))
		return rr
	}

	rr := do(http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())

	rr = do(http.MethodPost, `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":true}`, rr.Body.String())
	assert.True(t, enabled.Load())

	rr = do(http.MethodPost, `{"enabled":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, enabled.Load())
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/api/utils"
	"github.com/vechain/erc20bank/health"
)

type API struct {
	health *health.Health
}

func NewAPI(h *health.Health) *API {
	return &API{health: h}
}

// handleGetHealth answers 503 when the node is unhealthy. The optional
// maxTimeSinceCommit query bounds the age of the last commit.
func (a *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	var maxSinceCommit time.Duration
	if v := r.URL.Query().Get("maxTimeSinceCommit"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "maxTimeSinceCommit"))
		}
		maxSinceCommit = d
	}

	status, err := a.health.Status(maxSinceCommit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", utils.JSONContentType)
	if status.Healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	root.PathPrefix(pathPrefix).Subrouter().
		Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetHealth))
}

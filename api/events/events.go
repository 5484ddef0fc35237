// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/api/utils"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/thor"
)

type Events struct {
	ledger *ledger.Ledger
	limit  uint64
}

func New(ledger *ledger.Ledger, limit uint64) *Events {
	return &Events{
		ledger,
		limit,
	}
}

func parseUint(query url.Values, name string) (*uint64, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return &v, nil
}

func parseRange(query url.Values) (*logdb.Range, error) {
	from, err := parseUint(query, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseUint(query, "to")
	if err != nil {
		return nil, err
	}
	r := &logdb.Range{}
	if from != nil {
		r.From = *from
	}
	if to == nil {
		if r.From == 0 {
			return nil, nil
		}
		// To below From leaves the range open ended
		r.To = r.From - 1
		return r, nil
	}
	if *to < r.From {
		return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
	}
	r.To = *to
	return r, nil
}

// parseFilter builds the filter from the query string:
// participant, kind (repeatable), from, to, order, offset and limit.
func (e *Events) parseFilter(query url.Values) (*logdb.EventFilter, error) {
	filter := &logdb.EventFilter{
		Options: &logdb.Options{Limit: e.limit},
	}

	if s := query.Get("participant"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "participant"))
		}
		filter.Participant = &addr
	}
	for _, k := range query["kind"] {
		kind := logdb.Kind(k)
		if !kind.Valid() {
			return nil, utils.BadRequest(fmt.Errorf("kind: unknown %q", k))
		}
		filter.Kinds = append(filter.Kinds, kind)
	}

	r, err := parseRange(query)
	if err != nil {
		return nil, err
	}
	filter.Range = r

	switch logdb.Order(query.Get("order")) {
	case "", logdb.ASC:
		filter.Order = logdb.ASC
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(errors.New("order: must be asc or desc"))
	}

	offset, err := parseUint(query, "offset")
	if err != nil {
		return nil, err
	}
	if offset != nil {
		filter.Options.Offset = *offset
	}
	limit, err := parseUint(query, "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil {
		if *limit > e.limit {
			return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
		}
		filter.Options.Limit = *limit
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	evs, err := e.ledger.Events(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ConvertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}

// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package utils holds the handler plumbing shared by the api packages.
package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vechain/erc20bank/builtin/reverts"
	"github.com/vechain/erc20bank/log"
)

var logger = log.WithContext("pkg", "api")

const JSONContentType = "application/json; charset=utf-8"

// M is a loosely typed JSON object.
type M map[string]any

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string { return e.cause.Error() }
func (e *httpError) Unwrap() error { return e.cause }

// HTTPError tags cause with the status it is answered with. A nil cause
// yields an empty body.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

func BadRequest(cause error) error { return HTTPError(cause, http.StatusBadRequest) }
func Forbidden(cause error) error  { return HTTPError(cause, http.StatusForbidden) }

// Reverted answers rejected operations with 400. Anything else is left
// untouched and becomes a 500.
func Reverted(err error) error {
	if reverts.IsRevertErr(err) {
		return BadRequest(err)
	}
	return err
}

// HandlerFunc is an http.HandlerFunc returning an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc answers the error returned by f, with its tagged status or
// 500 if it carries none.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		var he *httpError
		switch {
		case !errors.As(err, &he):
			logger.Debug("internal error", "uri", r.URL.String(), "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		case he.cause == nil:
			w.WriteHeader(he.status)
		default:
			http.Error(w, he.cause.Error(), he.status)
		}
	}
}

// ParseJSON decodes r into v, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

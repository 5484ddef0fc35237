// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the error a built-in returns when a call is rejected
// by its rules, as opposed to a storage failure.
package reverts

import "errors"

// ErrRevert rejects a call. State must be left as it was before the call.
type ErrRevert struct {
	message string
}

// New creates a revert error with the given reason.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err is, or wraps, a revert.
func IsRevertErr(err error) bool {
	var re *ErrRevert
	return errors.As(err, &re) && re != nil
}

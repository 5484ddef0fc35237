// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, slog.LevelError, FromLegacyLevel(LegacyLevelError))
	assert.Equal(t, slog.LevelWarn, FromLegacyLevel(LegacyLevelWarn))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, slog.LevelDebug, FromLegacyLevel(LegacyLevelDebug))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)

	l := NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false))
	l.Debug("hidden")
	l.Info("deposit accepted", "amount", big.NewInt(1_000_000))

	line := out.String()
	assert.NotContains(t, line, "hidden")
	assert.True(t, strings.HasPrefix(line, "INFO ["))
	assert.Contains(t, line, "deposit accepted")
	assert.Contains(t, line, "amount=1,000,000")
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out)).With("pkg", "bank")
	l.Warn("reclaim refused", "pool", big.NewInt(42))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "bank", rec["pkg"])
	assert.Equal(t, "42", rec["pool"])
	assert.Equal(t, "reclaim refused", rec["msg"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "test")

	prev := Root()
	defer SetDefault(prev)

	out := new(bytes.Buffer)
	SetDefault(NewLogger(JSONHandler(out)))

	pkgLogger.Info("hello", "k", "v")
	assert.Contains(t, out.String(), `"pkg":"test"`)
	assert.Contains(t, out.String(), `"k":"v"`)
}

func TestDiscardHandler(t *testing.T) {
	l := NewLogger(DiscardHandler())
	assert.False(t, l.Enabled(t.Context(), LevelCrit))
	l.Error("nothing")
}

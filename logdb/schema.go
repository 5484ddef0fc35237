// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	bank BLOB(20) NOT NULL,
	participant BLOB(20) NOT NULL,
	amount BLOB,
	reward BLOB,
	digest BLOB(32)
);

CREATE INDEX IF NOT EXISTS event_participant ON event(participant);
CREATE INDEX IF NOT EXISTS event_kind ON event(kind);
CREATE INDEX IF NOT EXISTS event_timestamp ON event(timestamp);
`

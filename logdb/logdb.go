// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb keeps the history of bank operations in sqlite.
package logdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/erc20bank/thor"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if path == ":memory:" {
		// every connection would open its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Prepare starts a batch of events to be committed together.
func (db *LogDB) Prepare() *Batch {
	return &Batch{db: db.db}
}

// Filter returns events matching filter, all events if filter is nil.
func (db *LogDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Participant != nil {
		args = append(args, filter.Participant.Bytes())
		stmt += " AND participant = ?"
	}
	if len(filter.Kinds) > 0 {
		stmt += " AND kind IN (?" + strings.Repeat(",?", len(filter.Kinds)-1) + ")"
		for _, k := range filter.Kinds {
			args = append(args, string(k))
		}
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND timestamp >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND timestamp <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq         uint64
			kind        string
			timestamp   uint64
			bank        []byte
			participant []byte
			amount      []byte
			reward      []byte
			digest      []byte
		)
		if err := rows.Scan(
			&seq,
			&kind,
			&timestamp,
			&bank,
			&participant,
			&amount,
			&reward,
			&digest,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:         seq,
			Kind:        Kind(kind),
			Timestamp:   timestamp,
			Bank:        thor.BytesToAddress(bank),
			Participant: thor.BytesToAddress(participant),
			Amount:      new(big.Int).SetBytes(amount),
			Reward:      new(big.Int).SetBytes(reward),
			Digest:      thor.BytesToBytes32(digest),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func bigBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}

// Batch collects events to be written in one transaction.
type Batch struct {
	db     *sql.DB
	events []*Event
}

// Insert appends an event.
func (b *Batch) Insert(ev *Event) *Batch {
	b.events = append(b.events, ev)
	return b
}

// Len returns count of pending events.
func (b *Batch) Len() int {
	return len(b.events)
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Commit writes all pending events. Seq of each event is filled in.
func (b *Batch) Commit() error {
	return b.execInTx(func(tx *sql.Tx) error {
		for _, ev := range b.events {
			res, err := tx.Exec("INSERT INTO event(kind, timestamp, bank, participant, amount, reward, digest) VALUES (?, ?, ?, ?, ?, ?, ?);",
				string(ev.Kind),
				ev.Timestamp,
				ev.Bank.Bytes(),
				ev.Participant.Bytes(),
				bigBytes(ev.Amount),
				bigBytes(ev.Reward),
				ev.Digest.Bytes(),
			)
			if err != nil {
				return errors.Wrapf(err, "insert %v event", ev.Kind)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ev.Seq = uint64(id)
			metricInsertCounter().AddWithLabel(1, map[string]string{"kind": string(ev.Kind)})
		}
		return nil
	})
}

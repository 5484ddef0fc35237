// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/erc20bank/api"
	"github.com/vechain/erc20bank/co"
	"github.com/vechain/erc20bank/genesis"
	"github.com/vechain/erc20bank/health"
	"github.com/vechain/erc20bank/ledger"
	"github.com/vechain/erc20bank/log"
	"github.com/vechain/erc20bank/logdb"
	"github.com/vechain/erc20bank/lvldb"
	"github.com/vechain/erc20bank/metrics"
	"github.com/vechain/erc20bank/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Bank",
		Usage:     "Time-gated ERC20 escrow bank",
		Copyright: "2018-2026 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			checkClockFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "address",
				Usage:  "print the address a bank deployed by owner at nonce will have",
				Flags:  []cli.Flag{ownerFlag, nonceFlag},
				Action: addressAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	verbosity, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	logLevel := initLogger(verbosity, ctx.Bool(jsonLogsFlag.Name))

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := api.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		logger.Info("metrics server started", "url", url)
	}

	gene, err := loadGenesis(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		logDB = openLogDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB, logDB = openMemDBs()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); logDB.Close() }()

	clock := clockwork.NewRealClock()
	l, err := ledger.Open(mainDB, logDB, clock, gene)
	if err != nil {
		return errors.Wrap(err, "open ledger")
	}

	healthStatus := health.New(clock, func() error {
		_, err := l.Info()
		return err
	})
	if ctx.Bool(checkClockFlag.Name) {
		healthStatus.ClockSyncStatus(checkClockOffset(time.Second))
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs, healthStatus)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		logger.Info("admin server started", "url", url)
	}

	eventsLimit := ctx.Uint64(apiEventsLimitFlag.Name)
	handler := api.New(l, api.Options{
		AllowedOrigins:       strings.TrimSpace(ctx.String(apiCorsFlag.Name)),
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		EventsLimit:          eventsLimit,
	})
	apiURL, stopAPI, err := api.StartAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	printStartupMessage(gene, l, instanceDir, apiURL)

	var goes co.Goes
	goes.Loop(exitSignal, l.NewCommitWaiter, func() {
		info, err := l.Info()
		if err != nil {
			logger.Warn("failed to read bank", "err", err)
			return
		}
		healthStatus.NewCommit(info.Phase.String())
		logger.Info("bank updated",
			"phase", info.Phase,
			"staked", info.TotalStaked,
			"participants", info.ParticipantCount,
			"settled", info.SettledCount,
			"reward-paid", info.RewardPaid,
			"cache-hit-rate", fmt.Sprintf("%.2f", l.CacheHitRate()),
		)
	})

	<-exitSignal.Done()
	goes.Wait()
	return nil
}

func addressAction(ctx *cli.Context) error {
	owner, err := thor.ParseAddress(ctx.String(ownerFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse owner")
	}
	fmt.Println(thor.CreateContractAddress(owner, ctx.Uint64(nonceFlag.Name)))
	return nil
}

func printStartupMessage(gene *genesis.Genesis, l *ledger.Ledger, dataDir, apiURL string) {
	info, err := l.Info()
	if err != nil {
		logger.Warn("failed to read bank", "err", err)
		return
	}
	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Bank         [ %v ]
    Token        [ %v ]
    Owner        [ %v ]
    Reward pool  [ %v ]
    Period       [ %vs since %v ]
    Phase        [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
`,
		"Bank",
		gene.ID(), gene.Name(),
		info.Address,
		l.TokenAddress(),
		info.Owner,
		info.RewardPool,
		info.Period, time.Unix(int64(info.CreatedAt), 0).UTC().Format(time.RFC3339), // #nosec G115
		info.Phase,
		dataDir,
		apiURL)
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"metarmap/internal/display"
	"metarmap/internal/metar"
	"metarmap/internal/noaa"
	"metarmap/internal/rules"
)

// observationFetcher yields the current parsed observation for a station.
type observationFetcher interface {
	Observation(ctx context.Context, station string) (*metar.Report, error)
}

// assignmentEmitter writes framed LED assignments for one tick.
type assignmentEmitter interface {
	Emit(display.Assignment) error
	Close() error
}

// Application represents the main application: the refresh cycle that
// fetches, classifies and pushes per-LED colors each tick.
type Application struct {
	config      Config
	logger      *logrus.Logger
	roster      Roster
	fetcher     observationFetcher
	openEmitter func() (assignmentEmitter, error)
	ctx         context.Context
	cancel      context.CancelFunc
}

// stationResult is one successfully classified station, ready to emit.
type stationResult struct {
	station    string
	assignment display.Assignment
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	app := &Application{
		config:  config,
		logger:  logger,
		roster:  DefaultRoster(),
		fetcher: noaa.NewClient(),
		ctx:     ctx,
		cancel:  cancel,
	}
	app.openEmitter = func() (assignmentEmitter, error) {
		return display.Open(config.SerialPort, config.BaudRate, config.SerialTimeout(), logger)
	}
	return app
}

// Start runs the refresh loop until a shutdown signal arrives. The first
// refresh fires immediately; later ones follow the configured interval.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting METAR map daemon")

	if err := app.roster.Validate(); err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}

	for _, entry := range app.roster.Entries() {
		app.logger.WithFields(logrus.Fields{
			"station": entry.Station,
			"led":     entry.Index,
		}).Info("Roster entry")
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(app.config.RefreshInterval())
	defer ticker.Stop()

	app.refresh()

	for {
		select {
		case <-sigChan:
			app.logger.Info("Received shutdown signal")
			app.shutdown()
			return nil
		case <-ticker.C:
			app.refresh()
		}
	}
}

// refresh runs one tick: fan out fetches, classify the results, then open
// the serial link and write every assignment. A station that fails to
// fetch or classify is skipped; a serial-open failure abandons the whole
// tick and the next tick retries from scratch.
func (app *Application) refresh() {
	app.logger.Info("Querying METARs and setting colors")

	results := app.collect()

	emitter, err := app.openEmitter()
	if err != nil {
		app.logger.WithError(err).Error("Failed to open serial device, skipping tick")
		return
	}
	defer emitter.Close()

	written := 0
	for _, result := range results {
		if err := emitter.Emit(result.assignment); err != nil {
			app.logger.WithError(err).WithField("station", result.station).Error("Failed to write assignment")
			continue
		}
		written++
	}

	app.logger.WithFields(logrus.Fields{
		"stations": len(app.roster),
		"written":  written,
	}).Info("Refresh complete")
}

// collect fetches every roster station concurrently and classifies each
// successful observation. Completion order is irrelevant: the protocol is
// idempotent per LED.
func (app *Application) collect() []stationResult {
	type outcome struct {
		station string
		index   uint16
		report  *metar.Report
		err     error
	}

	outcomes := make(chan outcome, len(app.roster))
	var wg sync.WaitGroup

	for station, index := range app.roster {
		wg.Add(1)
		go func(station string, index uint16) {
			defer wg.Done()
			report, err := app.fetcher.Observation(app.ctx, station)
			outcomes <- outcome{station: station, index: index, report: report, err: err}
		}(station, index)
	}

	wg.Wait()
	close(outcomes)

	var results []stationResult
	for out := range outcomes {
		if out.err != nil {
			app.logger.WithError(out.err).WithField("station", out.station).Warn("Fetch failed, skipping station this tick")
			continue
		}

		category, err := rules.Classify(out.report)
		if err != nil {
			app.logger.WithError(err).WithField("station", out.station).Warn("Classification failed, skipping station this tick")
			continue
		}

		app.logger.WithFields(logrus.Fields{
			"station": out.station,
			"rules":   category.String(),
			"color":   string(category.Color()),
		}).Debug("Classified station")

		results = append(results, stationResult{
			station: out.station,
			assignment: display.Assignment{
				Index: out.index,
				Color: category.Color(),
			},
		})
	}

	return results
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	app.logger.Info("Shutting down application")
	app.cancel()
}

// Package server initializes and runs the dashboard application: it opens
// the credential database, loads the indicator dataset, and starts the HTTP
// server, wiring graceful shutdown to OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/klimata/riskboard/internal/dbx"
	"github.com/klimata/riskboard/internal/logging"
	"github.com/klimata/riskboard/internal/server/config"
	"github.com/klimata/riskboard/internal/server/dataset"
	"github.com/klimata/riskboard/internal/server/httpserver"
	"github.com/klimata/riskboard/internal/server/repositories/repomanager"
	"github.com/klimata/riskboard/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials *services.Credentials
	data        *dataset.Dataset
}

// NewApp builds the application: logger, database with migrations applied,
// and the dataset loaded from the configured source. Errors here are fatal;
// the dashboard is useless without its dataset or its credential store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSON(c.LogDir)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := dbx.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	credentials := services.NewCredentials(db, repomanager.NewSQLiteRepositoryManager(), c.BcryptCost)
	if err := credentials.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	data, err := dataset.FromSource(ctx, datasetSource(c), c.DatasetEncoding)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("dataset load error: %w", err)
	}
	logger.Info(ctx, "Dataset loaded", "barangays", data.Len(), "source", c.DatasetSource)

	return &App{config: c, logger: logger, db: db, credentials: credentials, data: data}, nil
}

func datasetSource(c *config.Config) dataset.Source {
	if c.DatasetSource == "s3" {
		return dataset.S3Source{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Key:          c.DatasetPath,
		}
	}
	return dataset.FileSource{Path: c.DatasetPath}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := httpserver.New(app.config.EndpointAddrHTTP, app.logger, app.credentials, app.data, app.config.TopN)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

package integration_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/cinetixhq/booking-api/internal/app"
	"github.com/cinetixhq/booking-api/internal/mailer"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	mockMailer := mailer.NewMockMailer()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	application, err := app.New(cfg, app.WithMailer(mockMailer), app.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// A dedicated pool for asserting database state directly.
	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}

func (t *TestApp) Close() {
	if t.DB != nil {
		t.DB.Close()
	}
	if t.App != nil {
		t.App.Close()
	}
}

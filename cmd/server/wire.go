// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"toski_backend/internal/app"
	"toski_backend/internal/auth"
	"toski_backend/internal/config"
	"toski_backend/internal/jobs"
	"toski_backend/internal/match"
	"toski_backend/internal/moxfield"
	"toski_backend/internal/platform/cache"
	"toski_backend/internal/platform/metrics"
	"toski_backend/internal/profile"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	provideLogger,
	provideDatabase,
	metrics.NewRegistry,
	cache.NewRedisCache,
)

var moxfieldSet = wire.NewSet(
	moxfield.NewClient,
	wire.Bind(new(moxfield.Provider), new(*moxfield.Client)),
	moxfield.NewAccountValidator,
	moxfield.NewDeckResolver,
)

var profileSet = wire.NewSet(
	profile.NewGORMStore,
	wire.Bind(new(profile.AccountValidator), new(*moxfield.AccountValidator)),
	wire.Bind(new(profile.DeckResolver), new(*moxfield.DeckResolver)),
)

var auditSet = wire.NewSet(
	wire.Bind(new(jobs.ProfileLister), new(profile.Store)),
	wire.Bind(new(jobs.DeckConfirmer), new(*moxfield.DeckResolver)),
	jobs.NewDeckAuditJob,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		moxfieldSet,
		profileSet,
		auditSet,

		// Identity
		auth.NewDiscordClient,
		wire.Bind(new(auth.IdentityProvider), new(*auth.DiscordClient)),
		auth.NewVerifier,
		wire.Bind(new(auth.Verifier), new(*auth.DiscordVerifier)),

		// Handlers
		profile.NewService,
		profile.NewHandler,
		moxfield.NewHandler,
		match.NewGoogleFormsClient,
		wire.Bind(new(match.FormSubmitter), new(*match.GoogleFormsClient)),
		match.NewService,
		match.NewHandler,

		// Application Layer
		wire.Bind(new(app.HealthChecker), new(profile.Store)),
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeDeckAudit wires just enough to run one audit pass from the command line.
func initializeDeckAudit(cfg *config.Config) (*jobs.DeckAuditJob, func(), error) {
	wire.Build(
		platformSet,
		moxfieldSet,
		profileSet,
		auditSet,
	)
	return nil, nil, nil
}

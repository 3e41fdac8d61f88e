// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"converse_backend/internal/app"
	"converse_backend/internal/auth"
	"converse_backend/internal/config"
	"converse_backend/internal/graphql"
	"converse_backend/internal/identity"
	"converse_backend/internal/platform/database"
	"converse_backend/internal/platform/logger"
	"converse_backend/internal/session"
	"converse_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideRegistry,
		provideCollector,
		provideCleanup,

		// Collaborators
		session.NewManager,
		wire.Bind(new(auth.SessionBinder), new(*session.Manager)),
		identity.NewGoTrueProvider,

		// Core
		user.NewGORMRepository, // Provides user.Repository
		auth.NewService,

		// GraphQL Layer
		graphql.NewResolver,
		graphql.NewSchema,
		graphql.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package app wires the catalog repositories and services over one store.
//
// Both binaries (the HTTP API and the admin CLI) build their services here so
// that the same validation and constraint layers sit behind every entry point.
package app

import (
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/language"
	"github.com/taibuivan/locallibrary/internal/core/stats"
	"github.com/taibuivan/locallibrary/internal/platform/database"
)

// Services holds one service per catalog component.
type Services struct {
	Languages *language.Service
	Genres    *genre.Service
	Authors   *author.Service
	Books     *book.Service
	Instances *instance.Service
	Stats     *stats.Service
}

// NewServices builds every service on db. A nil feed disables the lending feed.
func NewServices(db *database.DB, feed instance.Feed, logger *slog.Logger) *Services {
	return &Services{
		Languages: language.NewService(language.NewSQLRepository(db), logger),
		Genres:    genre.NewService(genre.NewSQLRepository(db), logger),
		Authors:   author.NewService(author.NewSQLRepository(db), logger),
		Books:     book.NewService(book.NewSQLRepository(db), logger),
		Instances: instance.NewService(instance.NewSQLRepository(db), feed, logger),
		Stats:     stats.NewService(stats.NewSQLRepository(db)),
	}
}

// Handlers wraps every service in its HTTP handler. The health probes are
// left for the caller.
func (services *Services) Handlers() api.Handlers {
	return api.Handlers{
		Languages: language.NewHandler(services.Languages),
		Genres:    genre.NewHandler(services.Genres),
		Authors:   author.NewHandler(services.Authors),
		Books:     book.NewHandler(services.Books),
		Instances: instance.NewHandler(services.Instances),
		Stats:     stats.NewHandler(services.Stats),
	}
}

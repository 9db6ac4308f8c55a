// Package helper exposes the API server to binaries outside service-api, such as the standalone build.
package helper

import (
	"movies-api/pkg/config"
	"movies-api/service-api/internal/app"
)

func NewAppServer(
	cfg *config.Config,
) *app.AppServer {
	return app.NewAppServer(cfg)
}

package main

import (
	"movies-api/pkg/config"
	api "movies-api/service-api"
)

func startAPIService(cfg *config.Config) {
	app := api.NewAppServer(cfg)
	app.Serve()
}

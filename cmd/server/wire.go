//go:build wireinject

package main

import (
	"duochat-server/internal/domain"
	"duochat-server/internal/infrastructure"
	"duochat-server/internal/interfaces"
	"duochat-server/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

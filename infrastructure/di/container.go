package di

import (
	"go.uber.org/zap"

	"essay-backend/infrastructure/config"
	"essay-backend/interfaces/http/rest"
	"essay-backend/interfaces/queue"
)

// API holds the dependencies of the HTTP entry points
type API struct {
	Config *config.Config
	Logger *zap.Logger
	Router *rest.Router
}

// Worker holds the dependencies of the essay processing entry point
type Worker struct {
	Config  *config.Config
	Logger  *zap.Logger
	Handler *queue.Handler
}

//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	cmdhandlers "essay-backend/application/commands/handlers"
	queryhandlers "essay-backend/application/queries/handlers"
	"essay-backend/application/services"
	"essay-backend/infrastructure/config"
	"essay-backend/interfaces/http/rest"
	"essay-backend/interfaces/http/rest/handlers"
	"essay-backend/interfaces/queue"
)

// CoreSet holds what both entry points need
var CoreSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideCloudWatchClient,
	ProvideEventBridgeClient,
	ProvideStore,
	ProvideEssayRepository,
	ProvideStorage,
	ProvideBlobStorage,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideTracer,
	services.NewInstrumentation,
)

// APISet wires the HTTP API
var APISet = wire.NewSet(
	CoreSet,
	ProvideSQSClient,
	ProvideCognitoClient,
	ProvideUserRepository,
	ProvideQueue,
	ProvideIdentityProvider,
	ProvideUploadPolicy,
	ProvideGetEssayHandler,
	ProvideErrorHandler,
	ProvideRateLimiter,

	cmdhandlers.NewSignUpHandler,
	cmdhandlers.NewSignInHandler,
	cmdhandlers.NewConfirmSignUpHandler,
	cmdhandlers.NewRefreshTokenHandler,
	cmdhandlers.NewForgotPasswordHandler,
	cmdhandlers.NewConfirmForgotPasswordHandler,
	cmdhandlers.NewChangePasswordHandler,
	cmdhandlers.NewUpdateProfileHandler,
	cmdhandlers.NewCreateEssayHandler,
	cmdhandlers.NewDeleteEssayHandler,
	cmdhandlers.NewGetUploadURLHandler,
	queryhandlers.NewListEssaysHandler,
	queryhandlers.NewGetProfileHandler,

	services.NewAuthService,
	services.NewUserService,
	services.NewEssayService,
	wire.Bind(new(handlers.AuthUseCases), new(*services.AuthService)),
	wire.Bind(new(handlers.ProfileUseCases), new(*services.UserService)),
	wire.Bind(new(handlers.EssayUseCases), new(*services.EssayService)),

	handlers.NewAuthHandler,
	handlers.NewUserHandler,
	handlers.NewEssayHandler,
	rest.NewRouter,
	wire.Struct(new(API), "*"),
)

// WorkerSet wires the queue consumer
var WorkerSet = wire.NewSet(
	CoreSet,
	ProvideTextractClient,
	ProvideTextExtractor,
	ProvideGraderRegistry,
	cmdhandlers.NewProcessEssayHandler,
	services.NewProcessingService,
	wire.Bind(new(queue.EssayProcessor), new(*services.ProcessingService)),
	queue.NewHandler,
	wire.Struct(new(Worker), "*"),
)

// InitializeAPI creates the HTTP API container
func InitializeAPI(ctx context.Context, cfg *config.Config) (*API, error) {
	wire.Build(APISet)
	return nil, nil
}

// InitializeWorker creates the queue worker container
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, error) {
	wire.Build(WorkerSet)
	return nil, nil
}

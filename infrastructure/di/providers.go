package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	cmdhandlers "essay-backend/application/commands/handlers"
	"essay-backend/application/ports"
	queryhandlers "essay-backend/application/queries/handlers"
	"essay-backend/infrastructure/ai"
	"essay-backend/infrastructure/config"
	"essay-backend/infrastructure/extraction"
	"essay-backend/infrastructure/identity/cognito"
	"essay-backend/infrastructure/messaging/eventbridge"
	"essay-backend/infrastructure/messaging/sqs"
	"essay-backend/infrastructure/persistence/dynamodb"
	"essay-backend/infrastructure/storage/s3"
	"essay-backend/pkg/auth"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/observability"
)

const serviceName = "essay-backend"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig creates AWS configuration. With tracing on every SDK
// call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito user pool client
func ProvideCognitoClient(awsCfg aws.Config) *cognitoidentityprovider.Client {
	return cognitoidentityprovider.NewFromConfig(awsCfg)
}

// ProvideTextractClient creates a Textract client in TEXTRACT_REGION,
// which may differ from the main region.
func ProvideTextractClient(awsCfg aws.Config, cfg *config.Config) *textract.Client {
	return textract.NewFromConfig(awsCfg, func(o *textract.Options) {
		if cfg.TextractRegion != "" {
			o.Region = cfg.TextractRegion
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideStore creates the single table store
func ProvideStore(client *awsdynamodb.Client, cfg *config.Config) *dynamodb.Store {
	return dynamodb.NewStore(client, cfg.TableName)
}

// ProvideEssayRepository creates an essay repository
func ProvideEssayRepository(store *dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.EssayRepository {
	return dynamodb.NewEssayRepository(
		store,
		cfg.GSI1IndexName, // status projection
		cfg.GSI2IndexName, // owner projection
		logger,
	)
}

// ProvideUserRepository creates a user repository; emails are looked up
// on GSI1.
func ProvideUserRepository(store *dynamodb.Store, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(store, cfg.GSI1IndexName, logger)
}

// ProvideStorage creates the essay file bucket adapter
func ProvideStorage(client *awss3.Client, cfg *config.Config, logger *zap.Logger) *s3.Storage {
	return s3.NewStorage(client, awss3.NewPresignClient(client), cfg.BucketName, cfg.Upload.MaxFileSize, logger)
}

// ProvideBlobStorage exposes the bucket adapter to the use-cases
func ProvideBlobStorage(storage *s3.Storage) ports.BlobStorage {
	return storage
}

// ProvideQueue creates the processing queue adapter
func ProvideQueue(client *awssqs.Client, cfg *config.Config, logger *zap.Logger) ports.Queue {
	return sqs.NewQueue(client, cfg.ProcessingQueueURL, logger)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideIdentityProvider creates the Cognito adapter
func ProvideIdentityProvider(client *cognitoidentityprovider.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return cognito.NewProvider(client, cfg.UserPoolID, cfg.UserPoolClientID, logger)
}

// ProvideMetrics creates the CloudWatch recorder. Disabled metrics get no
// client and record nothing.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) ports.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideTextExtractor creates the file text extractor
func ProvideTextExtractor(storage *s3.Storage, client *textract.Client, logger *zap.Logger) ports.TextExtractor {
	return extraction.NewExtractor(storage, extraction.NewOCR(client, logger), logger)
}

// ProvideGraderRegistry registers a grader for every provider with an API
// key.
func ProvideGraderRegistry(cfg *config.Config, logger *zap.Logger) ports.GraderRegistry {
	var httpClient *http.Client
	if cfg.EnableTracing {
		httpClient = xray.Client(&http.Client{Timeout: cfg.AI.RequestTimeout})
	}

	var claude *ai.ClaudeGrader
	if cfg.AI.AnthropicAPIKey != "" {
		claude = ai.NewClaudeGrader(ai.ClientConfig{
			APIKey:     cfg.AI.AnthropicAPIKey,
			Model:      cfg.AI.ClaudeModel,
			URL:        cfg.AI.AnthropicURL,
			MaxTokens:  cfg.AI.MaxTokens,
			Timeout:    cfg.AI.RequestTimeout,
			HTTPClient: httpClient,
			Breaker:    ai.DefaultBreakerConfig(),
		}, logger)
	}

	var openai *ai.OpenAIGrader
	if cfg.AI.OpenAIAPIKey != "" {
		openai = ai.NewOpenAIGrader(ai.ClientConfig{
			APIKey:     cfg.AI.OpenAIAPIKey,
			Model:      cfg.AI.OpenAIModel,
			URL:        cfg.AI.OpenAIURL,
			MaxTokens:  cfg.AI.MaxTokens,
			Timeout:    cfg.AI.RequestTimeout,
			HTTPClient: httpClient,
			Breaker:    ai.DefaultBreakerConfig(),
		}, logger)
	}

	if claude == nil && openai == nil {
		logger.Warn("No AI provider configured, every grading run will fail")
	}
	return ai.NewRegistry(claude, openai)
}

// ProvideUploadPolicy derives upload limits from configuration
func ProvideUploadPolicy(cfg *config.Config) cmdhandlers.UploadPolicy {
	return cmdhandlers.UploadPolicy{
		MaxFileSize:  cfg.Upload.MaxFileSize,
		AllowedTypes: cfg.Upload.AllowedFileTypes,
		Expiry:       cfg.PresignExpiry(),
	}
}

// ProvideGetEssayHandler gives download links the upload link lifetime
func ProvideGetEssayHandler(essays ports.EssayRepository, storage ports.BlobStorage, cfg *config.Config, logger *zap.Logger) *queryhandlers.GetEssayHandler {
	return queryhandlers.NewGetEssayHandler(essays, storage, cfg.PresignExpiry(), logger)
}

// ProvideErrorHandler shows internal error details outside production
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideRateLimiter throttles the unauthenticated auth routes
func ProvideRateLimiter(client *awsdynamodb.Client, cfg *config.Config) *auth.RateLimiter {
	return auth.NewRateLimiter(client, cfg.TableName, cfg.AuthRateLimit, cfg.AuthRateWindow, "auth")
}

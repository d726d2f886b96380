package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"essay-backend/infrastructure/config"
	"essay-backend/infrastructure/di"
	"essay-backend/interfaces/http/rest/middleware"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.API

	coldStart     = true
	coldStartTime time.Time
)

func setup() {
	coldStartTime = time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateFor(config.ProfileAPI); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	container, err = di.InitializeAPI(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	chiRouter, ok := container.Router.Setup().(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
	)
}

// Handler copies the authorizer claims into the identity headers and
// proxies the request to the router.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req.Headers = withCallerHeaders(req.Headers, req.RequestContext)

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	if err != nil {
		container.Logger.Error("Failed to proxy request",
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Error(err),
		)
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}
	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	}
	return resp, nil
}

// withCallerHeaders drops client supplied identity and address headers and
// sets them from the request context: the JWT authorizer claims, when the
// route has an authorizer, and the gateway source address.
func withCallerHeaders(headers map[string]string, rc events.APIGatewayV2HTTPRequestContext) map[string]string {
	clean := make(map[string]string, len(headers)+3)
	for k, v := range headers {
		if untrustedHeader(k) {
			continue
		}
		clean[k] = v
	}

	if ip := rc.HTTP.SourceIP; ip != "" {
		clean[middleware.HeaderClientIP] = ip
	}

	authorizer := rc.Authorizer
	if authorizer == nil || authorizer.JWT == nil {
		return clean
	}
	if sub := authorizer.JWT.Claims["sub"]; sub != "" {
		clean[middleware.HeaderUserID] = sub
	}
	if email := authorizer.JWT.Claims["email"]; email != "" {
		clean[middleware.HeaderUserEmail] = email
	}
	return clean
}

func untrustedHeader(name string) bool {
	if strings.EqualFold(name, middleware.HeaderUserID) ||
		strings.EqualFold(name, middleware.HeaderUserEmail) ||
		strings.EqualFold(name, middleware.HeaderClientIP) {
		return true
	}
	for _, h := range middleware.ForwardingHeaders {
		if strings.EqualFold(name, h) {
			return true
		}
	}
	return false
}

func main() {
	setup()
	lambda.Start(Handler)
}

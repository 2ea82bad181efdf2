package main

import (
	"context"
	"log"
	"strings"

	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"
	"catalog-backend/interfaces/http/rest/middleware"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

// init runs during cold start
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := container.Router.Setup()
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)
}

// setIdentityHeaders drops every client-supplied copy of the identity
// headers and sets them from the authorizer claims. The gateway delivers
// header keys lowercased, so the strip must compare case-insensitively or a
// forged copy would survive and be canonicalized into the trusted form
// downstream.
func setIdentityHeaders(headers map[string]string, claims map[string]string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	for header := range headers {
		if strings.EqualFold(header, middleware.HeaderGatewayAuthorized) ||
			strings.EqualFold(header, middleware.HeaderUsername) ||
			strings.EqualFold(header, middleware.HeaderGroups) {
			delete(headers, header)
		}
	}

	if username := claims["cognito:username"]; username != "" {
		headers[middleware.HeaderGatewayAuthorized] = "true"
		headers[middleware.HeaderUsername] = username
		headers[middleware.HeaderGroups] = claims["cognito:groups"]
	}
	return headers
}

// Handler bridges API Gateway requests into the Chi router. The gateway's
// JWT authorizer has already validated the token; its claims are lifted into
// identity headers the auth middleware trusts.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var claims map[string]string
	if req.RequestContext.Authorizer != nil && req.RequestContext.Authorizer.JWT != nil {
		claims = req.RequestContext.Authorizer.JWT.Claims
	}
	req.Headers = setIdentityHeaders(req.Headers, claims)

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.StatusCode >= 500 {
		container.Logger.Error("Request failed",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Int("status", resp.StatusCode),
		)
	}
	return resp, err
}

func main() {
	lambda.Start(Handler)
}

package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"

	"databowl-gateway/pkg/app"
	"databowl-gateway/pkg/config"
	"databowl-gateway/pkg/lambdaproxy"
	"databowl-gateway/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	appLogger := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(gin.ReleaseMode)

	gateway, err := app.Build(cfg, appLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	lambda.Start(lambdaproxy.New(gateway.Router).Handle)
}

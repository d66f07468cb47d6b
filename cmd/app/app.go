package main

import (
	"os"

	"github.com/DRSN-tech/rawline/internal/app"
	config "github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

// @title           RAWLINE storefront API
// @version         1.0
// @description     Каталог, контент сайта, корзины сессий и админка магазина RAWLINE.
// @BasePath        /
// @securityDefinitions.apikey AdminToken
// @in              header
// @name            X-Admin-Token
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}

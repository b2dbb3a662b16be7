package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/lmittmann/tint"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/config"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/routes"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/utils"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	logger := slog.New(tint.NewHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	db, err := config.ConnectDB()
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	utils.InitRedis()

	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	routes.RegisterRoutes(e, store.NewMongo(db), logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Info("Home Hub server starting", "port", port)
	e.Logger.Fatal(e.Start(":" + port))
}

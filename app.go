package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/teamcipx/portofolio-sub000/commerce"
	"github.com/teamcipx/portofolio-sub000/middleware"
	"github.com/teamcipx/portofolio-sub000/provider"
	"github.com/teamcipx/portofolio-sub000/routes"
	"github.com/teamcipx/portofolio-sub000/shared/config"
	"github.com/teamcipx/portofolio-sub000/shared/email"
	"github.com/teamcipx/portofolio-sub000/shared/logger"
	"github.com/teamcipx/portofolio-sub000/shared/store"
	"github.com/teamcipx/portofolio-sub000/theme"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.App.Environment)
	for _, missing := range cfg.MissingCredentials() {
		appLog.Warnf("credential not configured: %s", missing)
	}

	tp := initTracer(appLog, cfg.App.Name)
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLog.WithError(err).Warn("error shutting down tracer provider")
			}
		}()
	}

	// The store is the only hard external dependency, and even it is not
	// fatal: without it the site serves default settings and empty content.
	var st store.Store
	mongoStore, err := store.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		appLog.WithError(err).Warn("mongodb unreachable, running on in-memory store")
		st = store.NewMemory()
	} else {
		st = mongoStore
	}

	engine := theme.NewEngine(st, appLog)
	defer engine.Close()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		engine.Load(ctx)
		appLog.Info("theme settings loaded")
	}()

	var chat provider.ChatProvider
	if cfg.Chat.APIKey != "" {
		openaiChat, err := provider.NewOpenAIProvider(cfg.Chat.APIKey, cfg.Chat.Model)
		if err != nil {
			appLog.WithError(err).Warn("chat provider disabled")
		} else {
			chat = openaiChat
		}
	}

	mailer := email.NewNotifier(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.SMTP.OwnerEmail, appLog,
	)
	carts := commerce.NewManager(st, appLog, time.Duration(cfg.Checkout.ProcessingDelayMS)*time.Millisecond)
	defer carts.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Prometheus())
	app.Use(fiberlogger.New())
	app.Use(middleware.Gate(engine, cfg.Secrets.PreviewToken))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.Register(app, routes.Deps{
		Engine:   engine,
		Store:    st,
		Commerce: carts,
		Chat:     chat,
		Mailer:   mailer,
		Cfg:      cfg,
		Log:      appLog,
	})

	appLog.Infof("starting %s on :%s", cfg.App.Name, cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		appLog.WithError(err).Fatal("server stopped")
	}
}

func initTracer(appLog *logrus.Logger, serviceName string) *sdktrace.TracerProvider {
	ctx := context.Background()

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithDialOption(grpc.WithUserAgent(serviceName)),
	)
	if err != nil {
		appLog.Warnf("failed to create OTLP exporter, tracing disabled: %v", err)
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		appLog.Warnf("failed to create tracing resource, tracing disabled: %v", err)
		return nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp
}

package router

import (
	"github.com/eventfeed/eventfeed-api/internal/application"
	"github.com/eventfeed/eventfeed-api/internal/container"
	pginfra "github.com/eventfeed/eventfeed-api/internal/infrastructure/postgres"
	handlers "github.com/eventfeed/eventfeed-api/internal/interface/http"
	"github.com/eventfeed/eventfeed-api/internal/router/modules"
)

// InitModules builds the auth and event modules from the container's
// singletons and registers them with the router registry. Called once
// during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	eventRepo := pginfra.NewEventRepository(container.GetPGPool())

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetLogger(), cfg.AvatarBaseURL)
	authSvc.Pub = container.GetRabbitPub()
	authSvc.MailEnabled = cfg.MailSendEnabled

	eventSvc := application.NewEventService(eventRepo, container.GetAssetStore(), container.GetLogger())
	eventSvc.ES = container.GetES()
	eventSvc.ESIndex = cfg.ESEventsIndex

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger())
	eventHandler := handlers.NewEventHandler(eventSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewEventModule(eventHandler, authSvc))
}

package internal

import (
	"net/http"

	"tickd/internal/controllers"
	"tickd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/api/tick", http.HandlerFunc(apiController.TickSync))
	routers.Post("/api/subscribe", http.HandlerFunc(apiController.Subscribe))
	routers.Get("/api/cron/notify", http.HandlerFunc(apiController.CronNotify))
	routers.Get("/api/state", http.HandlerFunc(apiController.GetState))
	routers.Post("/api/state/tick", http.HandlerFunc(apiController.Tick))
	routers.Post("/api/mode", http.HandlerFunc(apiController.SwitchMode))
	routers.Post("/api/reset", http.HandlerFunc(apiController.Reset))
	return routers
}

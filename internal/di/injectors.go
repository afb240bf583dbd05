//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"tickd/internal"
	"tickd/internal/controllers"
	"tickd/internal/providers"
	"tickd/internal/services"
	"tickd/internal/structures"
	"tickd/internal/tracker"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewStoreProvider,
		providers.NewPushProvider,

		tracker.NewZstdCompressor,
		services.NewTrackerService,
		tracker.NewFileManager,
		tracker.NewArchive,
		tracker.NewIshaClient,
		tracker.NewNotifyJob,
		tracker.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

package main

import (
	"go.uber.org/fx"

	"github.com/quytt2702/authapi/internal/components/auth"
	"github.com/quytt2702/authapi/internal/components/user"
	"github.com/quytt2702/authapi/internal/server"
	"github.com/quytt2702/authapi/internal/shared/cache"
	"github.com/quytt2702/authapi/internal/shared/config"
	"github.com/quytt2702/authapi/internal/shared/database"
	"github.com/quytt2702/authapi/internal/shared/logging"
	"github.com/quytt2702/authapi/internal/shared/respond"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			database.NewPgxPool,
			cache.NewRedisClient,
			respond.NewResponder,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			server.NewServer,
			user.NewRepository,
			auth.NewTokenManager,
			auth.NewDenylist,
			auth.NewService,
			fx.Annotate(auth.NewRouter, fx.ResultTags(`name:"authRouter"`)),
		),
		fx.Invoke(server.Register),
	).Run()
}

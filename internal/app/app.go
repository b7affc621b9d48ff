package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/boardswap/core/internal/config"
	http_game "github.com/boardswap/core/internal/delivery/http/game"
	http_init "github.com/boardswap/core/internal/delivery/http/init"
	http_access_middleware "github.com/boardswap/core/internal/delivery/http/middleware/access"
	http_hostauth_middleware "github.com/boardswap/core/internal/delivery/http/middleware/hostauth"
	http_preference "github.com/boardswap/core/internal/delivery/http/preference"
	http_recommend "github.com/boardswap/core/internal/delivery/http/recommend"
	http_session "github.com/boardswap/core/internal/delivery/http/session"
	http_snapshot "github.com/boardswap/core/internal/delivery/http/snapshot"
	http_swagger "github.com/boardswap/core/internal/delivery/http/swagger"
	ws_session "github.com/boardswap/core/internal/delivery/ws/session"
	infra_postgres_game "github.com/boardswap/core/internal/infra/postgres/game"
	infra_pg_init "github.com/boardswap/core/internal/infra/postgres/init"
	infra_postgres_preference "github.com/boardswap/core/internal/infra/postgres/preference"
	infra_postgres_session "github.com/boardswap/core/internal/infra/postgres/session"
	infra_postgres_snapshot "github.com/boardswap/core/internal/infra/postgres/snapshot"
	infra_redis_coordination "github.com/boardswap/core/internal/infra/redis/coordination"
	infra_redis_init "github.com/boardswap/core/internal/infra/redis/init"
	infra_redis_tokencache "github.com/boardswap/core/internal/infra/redis/tokencache"
	service_host_auth "github.com/boardswap/core/internal/service/hostauth"
	usecase_preference "github.com/boardswap/core/internal/usecase/preference"
	usecase_ready "github.com/boardswap/core/internal/usecase/ready"
	usecase_recommend "github.com/boardswap/core/internal/usecase/recommend"
	usecase_session "github.com/boardswap/core/internal/usecase/session"
	usecase_snapshot "github.com/boardswap/core/internal/usecase/snapshot"
	usecase_syncstate "github.com/boardswap/core/internal/usecase/syncstate"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	sessionRepo := infra_postgres_session.New(pgConn)
	preferenceRepo := infra_postgres_preference.New(pgConn)
	gameCatalog := infra_postgres_game.New(pgConn)
	snapshotRepo := infra_postgres_snapshot.New(pgConn)

	coordination := infra_redis_coordination.New(redisConn, cfg.Coordination.SessionTTL)
	tokenCache := infra_redis_tokencache.New(redisConn, "host_token")

	hostAuth := service_host_auth.New(tokenCache, nil)
	hostMW := http_hostauth_middleware.New(hostAuth)

	sessionUC := usecase_session.New(sessionRepo, coordination, 20 /* orphan cleanups on every _ open */)
	preferenceUC := usecase_preference.New(preferenceRepo)
	recommendUC := usecase_recommend.New(gameCatalog, preferenceUC, coordination, cfg.Recommend.AlternativesBound)
	snapshotUC := usecase_snapshot.New(snapshotRepo)
	readyService := usecase_ready.NewService(coordination, sessionRepo)

	tracker := usecase_syncstate.New(coordination)
	poller := usecase_syncstate.NewPoller(coordination, tracker, cfg.Poll.Interval)
	go poller.Run(context.Background())

	hub := ws_session.New(slog.Default())

	controllerPool := http_init.NewControllerPool(
		http_access_middleware.ReadOnlyBadGatewayMiddleware(os.Getenv("INSTANCE_MODE")),
	)
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_session.New(sessionUC, hostAuth, hostMW, hub))
	controllerPool.Add(http_preference.New(preferenceUC, sessionUC))
	controllerPool.Add(http_preference.NewSyncController(tracker, preferenceUC, sessionUC, readyService, hub))
	controllerPool.Add(http_recommend.New(recommendUC, sessionUC))
	controllerPool.Add(http_snapshot.New(snapshotUC))
	controllerPool.Add(http_game.New(gameCatalog))
	controllerPool.Add(ws_session.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/events"
	adapterHTTP "github.com/comitanigiacomo/kanso-study-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-study-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-study-engine/internal/config"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-study-engine/internal/core/workers"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

type storage struct {
	catalog     repository.CatalogSeeder
	memberships domain.MembershipRepository
	tracks      domain.TrackRepository
	completions domain.CompletionRepository
	records     domain.ProgressRecordRepository
	logins      domain.LoginDayRepository
	votes       domain.VoteRepository
	users       domain.UserRepository
}

type app struct {
	router *gin.Engine
	worker *workers.ProgressWorker
	tokens *services.TokenService
	db     *sqlx.DB
	redis  *redis.Client
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func newStorage(cfg *config.Config, db *sqlx.DB) storage {
	if cfg.StorageDriver == config.StorageMemory || db == nil {
		catalog := repository.NewInMemoryCatalog()
		progress := repository.NewInMemoryProgressRepository()
		return storage{
			catalog:     catalog,
			memberships: catalog,
			tracks:      catalog,
			completions: progress,
			records:     progress,
			logins:      repository.NewInMemoryLoginDayRepository(),
			votes:       repository.NewInMemoryVoteRepository(),
			users:       repository.NewInMemoryUserRepository(),
		}
	}

	catalog := repository.NewPostgresCatalogRepository(db)
	progress := repository.NewPostgresProgressRepository(db)
	return storage{
		catalog:     catalog,
		memberships: catalog,
		tracks:      catalog,
		completions: progress,
		records:     progress,
		logins:      repository.NewPostgresLoginDayRepository(db),
		votes:       repository.NewPostgresVoteRepository(db),
		users:       repository.NewPostgresUserRepository(db),
	}
}

// newApp wires every component. The returned worker is not started.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger, now func() time.Time) (*app, error) {
	a := &app{}

	if cfg.StorageDriver == config.StoragePostgres {
		log.Info("connecting to database", "host", cfg.DBHost, "name", cfg.DBName)
		db, err := repository.OpenPostgres(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		a.db = db
		if err := repository.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
		log.Info("database connected")
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// Redis only backs the cache, rate limiter and cross-instance events.
			log.Warn("redis unavailable, continuing without it", "error", err)
		} else {
			a.redis = rdb
			log.Info("redis connected", "host", cfg.RedisHost)
		}
	}

	store := newStorage(cfg, a.db)

	memberships := store.memberships
	var cached *cache.CachedMembershipRepository
	if a.redis != nil {
		cached = cache.NewCachedMembershipRepository(memberships, a.redis, cfg.MembershipCacheTTL, log)
		memberships = cached
	}

	if cfg.CatalogFile != "" {
		file, err := repository.LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := repository.SeedCatalog(ctx, store.catalog, file); err != nil {
			a.Close()
			return nil, err
		}
		if cached != nil {
			seeded := make([]string, 0, len(file.Modules))
			for moduleID := range file.Modules {
				seeded = append(seeded, moduleID)
			}
			cached.Invalidate(ctx, seeded...)
		}
		log.Info("catalog seeded", "modules", len(file.Modules), "tracks", len(file.Tracks))
	}

	var (
		notifier   domain.ProgressNotifier
		subscriber domain.ProgressSubscriber
	)
	if a.redis != nil {
		redisEvents := cache.NewRedisProgressNotifier(a.redis, log)
		notifier, subscriber = redisEvents, redisEvents
	} else {
		broadcaster := events.NewBroadcaster()
		notifier, subscriber = broadcaster, broadcaster
	}

	a.worker = workers.NewProgressWorker(workers.ProgressWorkerDeps{
		Memberships: memberships,
		Completions: store.completions,
		Records:     store.records,
		Tracks:      store.tracks,
		Notifier:    notifier,
		Logger:      log,
		QueueSize:   cfg.WorkerQueueSize,
	})

	a.tokens = services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, store.users)
	progressSvc := services.NewProgressService(memberships, store.completions, a.worker)
	loginSvc := services.NewLoginService(store.logins, cfg.StreakLookbackDays)
	statsSvc := services.NewStatsService(store.records, store.completions, store.logins, cfg.StreakLookbackDays)
	voteSvc := services.NewVoteService(store.votes, memberships)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		ProgressHandler: adapterHTTP.NewProgressHandler(progressSvc, subscriber, log),
		LoginHandler:    adapterHTTP.NewLoginHandler(loginSvc, log, now),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsSvc, log, now),
		VoteHandler:     adapterHTTP.NewVoteHandler(voteSvc, log),
		Tokens:          a.tokens,
		Logger:          log,
		DB:              a.db,
		Redis:           a.redis,
		ServiceName:     cfg.ServiceName,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		StartTime:       time.Now(),
	})
	return a, nil
}

package main

import (
	"context"
	"database/sql"
	"time"

	config "github.com/ugelhub/convocatorias/internal/config"
	convApp "github.com/ugelhub/convocatorias/internal/convocatoria/application"
	convHttp "github.com/ugelhub/convocatorias/internal/convocatoria/infra/inbound/http"
	convRepo "github.com/ugelhub/convocatorias/internal/convocatoria/infra/outbound/db/postgres"
	orgApp "github.com/ugelhub/convocatorias/internal/organizacion/application"
	orgHttp "github.com/ugelhub/convocatorias/internal/organizacion/infra/inbound/http"
	orgRepo "github.com/ugelhub/convocatorias/internal/organizacion/infra/outbound/db/postgres"
	postApp "github.com/ugelhub/convocatorias/internal/postulacion/application"
	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
	postHttp "github.com/ugelhub/convocatorias/internal/postulacion/infra/inbound/http"
	postClick "github.com/ugelhub/convocatorias/internal/postulacion/infra/outbound/analytics/clickhouse"
	postMongo "github.com/ugelhub/convocatorias/internal/postulacion/infra/outbound/db/mongodb"
	postRepo "github.com/ugelhub/convocatorias/internal/postulacion/infra/outbound/db/postgres"
	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
	sharedPostgres "github.com/ugelhub/convocatorias/internal/shared/infra/db/postgres"
	sharedSQLite "github.com/ugelhub/convocatorias/internal/shared/infra/db/sqlite"
	infraEvents "github.com/ugelhub/convocatorias/internal/shared/infra/events"
	infraRelayer "github.com/ugelhub/convocatorias/internal/shared/infra/relayer"
	sharedUtils "github.com/ugelhub/convocatorias/internal/shared/infra/utils"
	sharedBus "github.com/ugelhub/convocatorias/internal/shared/platform/bus"
	sharedCache "github.com/ugelhub/convocatorias/internal/shared/platform/cache"
	usuarioApp "github.com/ugelhub/convocatorias/internal/usuario/application"
	usuarioDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
	usuarioEvents "github.com/ugelhub/convocatorias/internal/usuario/infra/inbound/events"
	usuarioHttp "github.com/ugelhub/convocatorias/internal/usuario/infra/inbound/http"
	usuarioPgRepo "github.com/ugelhub/convocatorias/internal/usuario/infra/outbound/db/postgres"
	usuarioRepo "github.com/ugelhub/convocatorias/internal/usuario/infra/outbound/db/sqlite"

	"github.com/ugelhub/convocatorias/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- DB ----------------
	var db *sql.DB
	var err error
	if cfg.LocalDeployment {
		db, err = sql.Open("sqlite", cfg.SQLitePath)
	} else {
		db, err = sql.Open("pgx", cfg.PostgresDSN)
	}
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	// El orden respeta las referencias entre contextos: organización,
	// convocatorias, usuarios y por último postulaciones y el outbox.
	for _, init := range []func(*sql.DB) error{
		orgRepo.InitPostgres,
		convRepo.InitPostgres,
	} {
		if err := init(db); err != nil {
			log.Fatal("failed to initialize schema", zap.Error(err))
		}
	}
	if cfg.LocalDeployment {
		if err := usuarioRepo.InitSQLite(db); err != nil {
			log.Fatal("failed to initialize SQLite", zap.Error(err))
		}
	} else {
		if err := usuarioPgRepo.InitPostgres(db); err != nil {
			log.Fatal("failed to initialize schema", zap.Error(err))
		}
	}
	if err := postRepo.InitPostgres(db); err != nil {
		log.Fatal("failed to initialize schema", zap.Error(err))
	}
	if cfg.LocalDeployment {
		err = sharedSQLite.InitOutbox(db)
	} else {
		err = sharedPostgres.InitOutbox(db)
	}
	if err != nil {
		log.Fatal("failed to initialize outbox", zap.Error(err))
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}
	cacheTTL := int(cfg.CacheTTL.Seconds())

	// ---------------- Repos ----------------
	regionRepo := orgRepo.NewRegionRepoPostgres(db)
	ugelRepo := orgRepo.NewUgelRepoPostgres(db)
	distritoRepo := orgRepo.NewDistritoRepoPostgres(db)
	institucionRepo := orgRepo.NewInstitucionRepoPostgres(db)

	convocatoriaRepo := convRepo.NewConvocatoriaRepoPostgres(db)
	plazaRepo := convRepo.NewPlazaRepoPostgres(db)
	orgDirectory := convRepo.NewOrganizacionDirectory(db)

	var (
		usuarios       usuarioDomain.UsuarioRepository
		perfiles       usuarioDomain.PerfilRepository
		notificaciones usuarioDomain.NotificacionRepository
	)
	if cfg.LocalDeployment {
		usuarios = usuarioRepo.NewUsuarioRepoSQLite(db)
		perfiles = usuarioRepo.NewPerfilRepoSQLite(db)
		notificaciones = usuarioRepo.NewNotificacionRepoSQLite(db)
	} else {
		usuarios = usuarioPgRepo.NewUsuarioRepoPostgres(db)
		perfiles = usuarioPgRepo.NewPerfilRepoPostgres(db)
		notificaciones = usuarioPgRepo.NewNotificacionRepoPostgres(db)
	}

	postulacionRepo := postRepo.NewPostulacionRepoPostgres(db)
	evaluacionRepo := postRepo.NewEvaluacionRepoPostgres(db)
	recomendacionRepo := postRepo.NewRecomendacionRepoPostgres(db)
	convDirectory := postRepo.NewConvocatoriaDirectoryPostgres(db)

	var documentos postDomain.DocumentoRepository
	if cfg.UseMongo {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		documentos, err = postMongo.NewDocumentoRepoMongoDB(ctx, mongoClient, cfg.MongoDB)
		if err != nil {
			log.Fatal("failed to initialize MongoDB repo", zap.Error(err))
		}
		log.Info("✅ MongoDB conectado para documentos")
	} else {
		documentos = postRepo.NewDocumentoRepoPostgres(db)
	}

	var analytics postDomain.AnalyticsRepository
	if cfg.UseClick {
		// ClickHouse suele tardar más en levantar que el resto del stack.
		var clickRepo *postClick.AnalyticsRepo
		err := sharedUtils.Retry(ctx, 3, 2*time.Second, func() error {
			var errConn error
			clickRepo, errConn = postClick.NewAnalyticsRepo(cfg.ClickAddr, cfg.ClickDB)
			return errConn
		})
		if err != nil {
			log.Fatal("failed to connect to ClickHouse", zap.Error(err))
		}
		if err := clickRepo.InitSchema(); err != nil {
			log.Fatal("failed to initialize ClickHouse schema", zap.Error(err))
		}
		analytics = clickRepo
		log.Info("✅ ClickHouse conectado para analítica")
	}

	// --------------- Servicios -------------
	orgService := orgApp.NewOrganizacionService(regionRepo, ugelRepo, distritoRepo, institucionRepo, log)
	convService := convApp.NewConvocatoriaService(convocatoriaRepo, plazaRepo, orgDirectory, orgDirectory, cacheInstance, cacheTTL, log)
	usuarioService := usuarioApp.NewUsuarioService(usuarios, perfiles, notificaciones, cacheInstance, cacheTTL, log)
	postService := postApp.NewPostulacionService(postulacionRepo, evaluacionRepo, documentos, recomendacionRepo,
		convDirectory, convDirectory, analytics, log)

	// ---------------- Events ---------------
	var publisher sharedBus.EventPublisher
	notificacionConsumer := usuarioEvents.NewNotificacionConsumer(usuarioService, log)

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   sharedEvents.TopicPostulaciones,
		})
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    sharedEvents.TopicPostulaciones,
			GroupID:  "convocatorias-notificaciones",
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer reader.Close()

		infraEvents.NewConsumerAdapter(reader, notificacionConsumer, log).Start(ctx)
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")

		inMemoryBus := infraEvents.NewInMemoryEventBus(sharedEvents.TopicPostulaciones)
		publisher = inMemoryBus

		log.Info("🎧 Iniciando listener en memoria para notificaciones")
		infraEvents.BackgroundConsumerChan(ctx, inMemoryBus.Subscribe(10), notificacionConsumer)
	}

	// ------------ Outbox Worker ------------
	// Se podría ejecutar externamente
	var outboxWorker *infraRelayer.Worker
	if cfg.LocalDeployment {
		outboxWorker = infraRelayer.NewOutboxWorker(sharedSQLite.NewOutboxRepoSQLite(db), publisher,
			postDomain.NewEventRegistry(), cfg.OutboxPeriod, cfg.OutboxLimit, log)
	} else {
		outboxWorker = infraRelayer.NewOutboxWorker(sharedPostgres.NewOutboxRepoPostgres(db), publisher,
			postDomain.NewEventRegistry(), cfg.OutboxPeriod, cfg.OutboxLimit, log)
	}
	outboxWorker.Start(ctx)

	// ---------------- HTTP ----------------
	router := gin.Default()

	orgHttp.RegisterOrganizacionRoutes(router,
		orgHttp.NewRegionHandler(orgService),
		orgHttp.NewUgelHandler(orgService),
		orgHttp.NewDistritoHandler(orgService),
		orgHttp.NewInstitucionHandler(orgService))

	convHttp.RegisterConvocatoriaRoutes(router,
		convHttp.NewConvocatoriaHandler(convService, orgService),
		convHttp.NewPlazaHandler(convService, orgService))

	usuarioHttp.RegisterUsuarioRoutes(router,
		usuarioHttp.NewUsuarioHandler(usuarioService),
		usuarioHttp.NewNotificacionHandler(usuarioService))

	postHttp.RegisterPostulacionRoutes(router,
		postHttp.NewPostulacionHandler(postService),
		postHttp.NewEvaluacionHandler(postService),
		postHttp.NewDocumentoHandler(postService),
		postHttp.NewRecomendacionHandler(postService),
		postHttp.NewAnaliticaHandler(postService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

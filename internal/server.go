package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitstats/internal/config"
	"github.com/2beens/fitstats/internal/db"
	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/exercises"
	"github.com/2beens/fitstats/internal/gymstats/habits"
	gymstatsmcp "github.com/2beens/fitstats/internal/gymstats/mcp"
	"github.com/2beens/fitstats/internal/gymstats/session"
	"github.com/2beens/fitstats/internal/gymstats/workouts"
	"github.com/2beens/fitstats/internal/middleware"
	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const idleSessionsSweepInterval = 30 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	mcpSecret         string // X-MCP-Secret header value required on /mcp

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessionManager *session.Manager
	sessionService *session.Service
	e1rmService    *e1rm.Service
	workoutsRepo   *workouts.Repo
	exercisesRepo  *exercises.Repo
	habitsService  *habits.Service
	mcpServer      *mcp.Server

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	MCPSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	}
	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.RunMigrations {
		if err := db.Migrate(dbParams.ConnString("pgx5")); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown := func() {}
	if params.HoneycombTracingEnabled {
		otelShutdown, err = tracing.HoneycombSetup("fitstats-backend")
		if err != nil {
			return nil, err
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,
		mcpSecret:   params.MCPSecret,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.setupGymstats()

	return s, nil
}

// setupGymstats wires the gymstats services. The session service reads the
// catalog and history from postgres and invalidates cached e1RM charts on save.
func (s *Server) setupGymstats() {
	s.workoutsRepo = workouts.NewRepo(s.dbPool)
	s.exercisesRepo = exercises.NewRepo(s.dbPool)
	s.habitsService = habits.NewService(habits.NewRepo(s.dbPool), s.metricsManager)
	s.e1rmService = e1rm.NewService(
		s.workoutsRepo,
		s.config.E1RMCacheSizeBytes,
		s.config.E1RMCacheExpireSec,
		s.metricsManager,
	)

	var snapshotStore session.SnapshotStore
	if s.redisClient != nil {
		snapshotStore = session.NewRedisStore(
			s.redisClient,
			time.Duration(s.config.SessionSnapshotTTLMinutes)*time.Minute,
		)
	}
	s.sessionManager = session.NewManager(snapshotStore, session.DefaultEnv(), s.metricsManager)
	s.sessionService = session.NewService(session.NewServiceParams{
		Manager:        s.sessionManager,
		Catalog:        s.exercisesRepo,
		History:        s.workoutsRepo,
		Saver:          s.workoutsRepo,
		Bodyweight:     s.habitsService,
		ChartCache:     s.e1rmService,
		MetricsManager: s.metricsManager,
	})

	if s.config.MCPEnabled {
		s.mcpServer = gymstatsmcp.NewServer(gymstatsmcp.ServiceDeps{
			Schema:    gymstatsmcp.NewPoolSchemaRepo(s.dbPool),
			Sessions:  s.sessionManager,
			Charts:    s.e1rmService,
			Habits:    s.habitsService,
			Exercises: s.exercisesRepo,
			Workouts:  s.workoutsRepo,
		}, s.versionInfo)
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	limited := func(routerName string, h http.HandlerFunc) http.Handler {
		if rateLimiter == nil {
			return h
		}
		return middleware.RateLimit(
			rateLimiter,
			s.metricsManager,
			routerName,
			s.config.RateLimitAllowedPerMin,
		)(h)
	}

	sessionHandler := session.NewHandler(s.sessionService)
	r.HandleFunc("/gymstats/session/{user}", sessionHandler.HandleGet).Methods("GET", "OPTIONS").Name("session-get")
	r.Handle("/gymstats/session/{user}/start", limited("session", sessionHandler.HandleStart)).Methods("POST", "OPTIONS").Name("session-start")
	r.Handle("/gymstats/session/{user}/end", limited("session", sessionHandler.HandleEnd)).Methods("POST", "OPTIONS").Name("session-end")
	r.Handle("/gymstats/session/{user}/save", limited("session", sessionHandler.HandleSave)).Methods("POST", "OPTIONS").Name("session-save")
	r.Handle("/gymstats/session/{user}", limited("session", sessionHandler.HandleClear)).Methods("DELETE", "OPTIONS").Name("session-clear")
	r.Handle("/gymstats/session/{user}/commands", limited("session", sessionHandler.HandleCommand)).Methods("POST", "OPTIONS").Name("session-command")
	r.Handle("/gymstats/session/{user}/exercises", limited("session", sessionHandler.HandleAddExercise)).Methods("POST", "OPTIONS").Name("session-add-exercise")
	r.Handle("/gymstats/session/{user}/exercises/{we}/sets", limited("session", sessionHandler.HandleAddSet)).Methods("POST", "OPTIONS").Name("session-add-set")
	r.Handle("/gymstats/session/{user}/exercises/{we}/sets/{set}/complete", limited("session", sessionHandler.HandleCompleteSet)).Methods("PUT", "OPTIONS").Name("session-complete-set")

	e1rmHandler := e1rm.NewHandler(s.e1rmService)
	r.HandleFunc("/gymstats/e1rm/{user}/exercise/{ex}", e1rmHandler.HandleChart).Methods("GET", "OPTIONS").Name("e1rm-chart")

	workoutsHandler := workouts.NewHandler(s.workoutsRepo, s.e1rmService)
	r.HandleFunc("/gymstats/workouts/{user}/list/page/{page}/size/{size}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.Handle("/gymstats/workouts/{user}/{id}", limited("workouts", workoutsHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-workout")

	exercisesHandler := exercises.NewHandler(s.exercisesRepo)
	r.Handle("/gymstats/exercises/{user}", limited("exercises", exercisesHandler.HandleAdd)).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/gymstats/exercises/{user}/list", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/gymstats/exercises/{user}/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.Handle("/gymstats/exercises/{user}/{id}", limited("exercises", exercisesHandler.HandleDelete)).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	habitsHandler := habits.NewHandler(s.habitsService)
	r.Handle("/gymstats/habits/{user}", limited("habits", habitsHandler.HandleAdd)).Methods("POST", "OPTIONS").Name("new-habit-log")
	r.HandleFunc("/gymstats/habits/{user}/list", habitsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-habit-logs")
	r.HandleFunc("/gymstats/habits/{user}/streak/{type}", habitsHandler.HandleStreak).Methods("GET", "OPTIONS").Name("habit-streak")

	if s.mcpServer != nil {
		mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.mcpServer
		}, nil)
		r.PathPrefix("/mcp").Handler(
			middleware.RequireSecret("X-MCP-Secret", s.mcpSecret)(otelhttp.NewHandler(mcpHandler, "mcp")),
		).Name("mcp")
	}

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.sweepIdleSessions(ctx, idleSessionsSweepInterval)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// sweepIdleSessions keeps the in-memory session map from growing with users
// that only looked at their (empty) session.
func (s *Server) sweepIdleSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := s.sessionManager.ForgetIdle(); dropped > 0 {
				log.Debugf("dropped %d idle sessions", dropped)
			}
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what the handlers use
	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("http server: %w", err))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf(" >>> graceful shutdown: %s", err)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

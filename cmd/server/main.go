package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"campusgo-backend/cache"
	"campusgo-backend/config"
	"campusgo-backend/handlers"
	"campusgo-backend/repository"
	"campusgo-backend/services"
	"campusgo-backend/ws"
)

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Sec-WebSocket-Protocol, Sec-WebSocket-Extensions, Sec-WebSocket-Key, Sec-WebSocket-Version, Upgrade, Connection")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	log.Info().Str("port", cfg.Port).Msg("starting campusgo server")

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}

	userRepo := repository.NewGormUserRepo(db)
	tripRepo := repository.NewGormTripRepo(db)
	bookingRepo := repository.NewGormBookingRepo(db)
	messageRepo := repository.NewGormMessageRepo(db)
	reputationRepo := repository.NewGormReputationRepo(db)
	itemRepo := repository.NewGormSecondHandRepo(db)
	errandRepo := repository.NewGormErrandRepo(db)
	adminRepo := repository.NewGormAdminRepo(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, response caching disabled")
		rdb = nil
	}
	respCache := cache.New(rdb, "campusgo:")

	registry := ws.NewRegistry()

	authSvc := services.NewAuthService(userRepo, &cfg)
	chatSvc := services.NewChatService(messageRepo, tripRepo, bookingRepo, userRepo, registry, &cfg)
	tripSvc := services.NewTripService(tripRepo)
	bookingSvc := services.NewBookingService(bookingRepo, tripRepo)
	reputationSvc := services.NewReputationService(reputationRepo, userRepo)
	itemSvc := services.NewSecondHandService(itemRepo, userRepo)
	errandSvc := services.NewErrandService(errandRepo, userRepo)
	adminSvc := services.NewAdminService(adminRepo, userRepo, tripRepo, bookingRepo, itemRepo, errandRepo, &cfg)

	created, err := adminSvc.EnsureDefaultAdmin()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}
	if created {
		log.Warn().Str("username", cfg.AdminUsername).Msg("created default admin account, change ADMIN_PASSWORD before exposing this server")
	}

	authH := handlers.NewAuthHandler(authSvc)
	tripH := handlers.NewTripHandler(tripSvc, respCache)
	bookingH := handlers.NewBookingHandler(bookingSvc, respCache)
	chatH := handlers.NewChatHandler(registry, chatSvc, authSvc)
	reputationH := handlers.NewReputationHandler(reputationSvc)
	itemH := handlers.NewSecondHandHandler(itemSvc)
	errandH := handlers.NewErrandHandler(errandSvc)
	adminH := handlers.NewAdminHandler(adminSvc, respCache)

	auth := func(fn http.HandlerFunc) http.HandlerFunc { return handlers.RequireAuth(authSvc, fn) }
	admin := func(fn http.HandlerFunc) http.HandlerFunc { return handlers.RequireAdmin(adminSvc, fn) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	mux.HandleFunc("POST /api/v1/auth/register", authH.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authH.Refresh)
	mux.HandleFunc("GET /api/v1/auth/me", auth(authH.Me))
	mux.HandleFunc("GET /api/v1/users/{id}", auth(authH.GetByID))

	mux.HandleFunc("POST /api/v1/trips", auth(tripH.Create))
	mux.HandleFunc("GET /api/v1/trips", tripH.List)
	mux.HandleFunc("GET /api/v1/trips/mine", auth(tripH.Mine))
	mux.HandleFunc("GET /api/v1/trips/{id}", auth(tripH.Get))

	mux.HandleFunc("POST /api/v1/bookings", auth(bookingH.Create))
	mux.HandleFunc("GET /api/v1/bookings", auth(bookingH.Mine))
	mux.HandleFunc("GET /api/v1/bookings/{id}", auth(bookingH.Get))
	mux.HandleFunc("DELETE /api/v1/bookings/{id}", auth(bookingH.Cancel))

	mux.HandleFunc("GET /api/v1/trips/{id}/messages", auth(chatH.History))
	mux.HandleFunc("POST /api/v1/trips/{id}/messages", auth(chatH.Post))
	mux.HandleFunc("GET /ws/trips/{id}", chatH.WS)

	mux.HandleFunc("POST /api/v1/reputation", auth(reputationH.Apply))
	mux.HandleFunc("GET /api/v1/reputation/me", auth(reputationH.Records))
	mux.HandleFunc("GET /api/v1/reputation/{id}", auth(reputationH.Score))

	mux.HandleFunc("POST /api/v1/secondhand", auth(itemH.Create))
	mux.HandleFunc("GET /api/v1/secondhand", itemH.List)
	mux.HandleFunc("GET /api/v1/secondhand/mine", auth(itemH.Mine))
	mux.HandleFunc("GET /api/v1/secondhand/{id}", itemH.Get)
	mux.HandleFunc("PUT /api/v1/secondhand/{id}", auth(itemH.Update))
	mux.HandleFunc("DELETE /api/v1/secondhand/{id}", auth(itemH.Delete))

	mux.HandleFunc("POST /api/v1/errands", auth(errandH.Create))
	mux.HandleFunc("GET /api/v1/errands", errandH.List)
	mux.HandleFunc("GET /api/v1/errands/mine", auth(errandH.Mine))
	mux.HandleFunc("GET /api/v1/errands/assigned", auth(errandH.Assigned))
	mux.HandleFunc("GET /api/v1/errands/{id}", errandH.Get)
	mux.HandleFunc("PUT /api/v1/errands/{id}", auth(errandH.Update))
	mux.HandleFunc("DELETE /api/v1/errands/{id}", auth(errandH.Cancel))
	mux.HandleFunc("POST /api/v1/errands/{id}/responses", auth(errandH.Respond))
	mux.HandleFunc("GET /api/v1/errands/{id}/responses", auth(errandH.Responses))
	mux.HandleFunc("POST /api/v1/errands/{id}/responses/{responseId}/accept", auth(errandH.Accept))
	mux.HandleFunc("POST /api/v1/errands/{id}/complete", auth(errandH.Complete))

	mux.HandleFunc("POST /api/v1/admin/login", adminH.Login)
	mux.HandleFunc("GET /api/v1/admin/me", admin(adminH.Me))
	mux.HandleFunc("GET /api/v1/admin/users", admin(adminH.Users))
	mux.HandleFunc("GET /api/v1/admin/trips", admin(adminH.Trips))
	mux.HandleFunc("GET /api/v1/admin/bookings", admin(adminH.Bookings))
	mux.HandleFunc("GET /api/v1/admin/secondhand", admin(adminH.Items))
	mux.HandleFunc("GET /api/v1/admin/errands", admin(adminH.Errands))
	mux.HandleFunc("GET /api/v1/admin/stats/overview", admin(adminH.Overview))
	mux.HandleFunc("GET /api/v1/admin/stats/booking-trends", admin(adminH.BookingTrends))
	mux.HandleFunc("GET /api/v1/admin/stats/user-growth", admin(adminH.UserGrowth))

	handler := withCORS(loggingMiddleware(mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}

// server runs the organization registry HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgsphere/backend/internal/config"
	"orgsphere/backend/internal/db"
	"orgsphere/backend/internal/logger"
	"orgsphere/backend/internal/security"
	"orgsphere/backend/internal/server"

	adminrepo "orgsphere/backend/internal/admin/repository"
	identityhandler "orgsphere/backend/internal/identity/handler"
	identityservice "orgsphere/backend/internal/identity/service"
	orgrepo "orgsphere/backend/internal/organization/repository"
	"orgsphere/backend/internal/partition"
	tenanthandler "orgsphere/backend/internal/tenant/handler"
	tenantservice "orgsphere/backend/internal/tenant/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Setup(cfg.Env == "development")

	priv, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT_PRIVATE_KEY")
	}
	pub, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT_PUBLIC_KEY")
	}
	if alg := security.KeyAlg(pub); alg == "" {
		log.Fatal().Msg("JWT keys must be RSA or ECDSA P-256")
	}

	// The server starts even when the database is down so /health can report
	// the outage instead of the process crash-looping.
	dbConn, err := db.OpenLazy(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer dbConn.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := dbConn.PingContext(pingCtx); err != nil {
		log.Warn().Err(err).Msg("database unreachable at startup; continuing")
	} else {
		log.Info().Msg("database connection established")
	}
	cancel()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider(priv, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	orgs := orgrepo.NewPostgresRepository(dbConn)
	admins := adminrepo.NewPostgresRepository(dbConn)
	partitions := partition.NewPostgresStore(dbConn)

	lifecycle := tenantservice.NewLifecycleService(orgs, admins, partitions, hasher)
	auth := identityservice.NewAuthService(admins, orgs, hasher, tokens)

	router := server.NewRouter(server.Deps{
		Tenant:       tenanthandler.NewHandler(lifecycle),
		Identity:     identityhandler.NewHandler(auth),
		Tokens:       tokens,
		HealthPinger: dbConn,
		CORSOrigins:  cfg.CORSOrigins(),
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

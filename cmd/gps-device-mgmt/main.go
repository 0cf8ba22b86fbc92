package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/handshake"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/ingest"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/watchdog"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/metrics"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/router"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/presentation/api"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/presentation/api/auth"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v2"
)

const serviceName string = "gps-device-mgmt"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort

	policiesFile
	configurationFile
	accountsFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",

		policiesFile:      "/opt/opentracker/config/authz.rego",
		configurationFile: "/opt/opentracker/config/config.yaml",
		accountsFile:      "/opt/opentracker/config/accounts.yaml",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "opentracker",
		dbSSLMode:  "disable",
	}
}

type appConfig struct {
	Ingest struct {
		ClusterDistance      float64 `yaml:"cluster_distance"`
		ClusterWindowSeconds int     `yaml:"cluster_window_seconds"`
	} `yaml:"ingest"`

	TokenTTLSeconds         int `yaml:"token_ttl_seconds"`
	WatchdogIntervalSeconds int `yaml:"watchdog_interval_seconds"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := parseExternalConfigFile(cfgFile)
	exitIf(err, logger, "could not parse configuration file")

	regCfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	regCfg, err := registry.NewConfig(regCfgFile)
	exitIf(err, logger, "could not create registry config")

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")
	defer policies.Close()

	accountsFd, err := os.Open(flags[accountsFile])
	exitIf(err, logger, "unable to open accounts file")

	accounts, err := auth.NewAccountStore(accountsFd)
	exitIf(err, logger, "unable to load owner accounts")

	s, err := storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword],
		flags[dbPort], flags[dbName], flags[dbSSLMode],
	))
	exitIf(err, logger, "could not connect to database")
	defer s.Close()

	err = s.Initialize(ctx)
	exitIf(err, logger, "failed to initialize database")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, logger))
	exitIf(err, logger, "failed to init messenger")
	messenger.Start()
	defer messenger.Close()

	devices := registry.New(s, messenger, regCfg)
	coordinator := handshake.New(s, devices, messenger, time.Duration(cfg.TokenTTLSeconds)*time.Second)
	locations := ingest.New(s, devices, messenger, ingest.Config{
		ClusterDistance: cfg.Ingest.ClusterDistance,
		ClusterWindow:   time.Duration(cfg.Ingest.ClusterWindowSeconds) * time.Second,
	})

	wd := watchdog.New(coordinator, s, logger, time.Duration(cfg.WatchdogIntervalSeconds)*time.Second)
	wd.Start()
	defer wd.Stop()

	r := router.New(serviceName, cfg.AllowedOrigins...)
	_, err = api.RegisterHandlers(ctx, r, policies, accounts, devices, coordinator, locations)
	exitIf(err, logger, "failed to register handlers")

	metrics.Register()

	apiServer := &http.Server{
		Addr:         flags[listenAddress] + ":" + flags[servicePort],
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	controlMux := http.NewServeMux()
	controlMux.Handle("/metrics", promhttp.Handler())
	controlMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	controlServer := &http.Server{
		Addr:    flags[listenAddress] + ":" + flags[controlPort],
		Handler: controlMux,
	}

	serve := func(server *http.Server, name string) {
		logger.Info("starting http server", "name", name, "address", server.Addr)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "name", name, "err", err.Error())
			os.Exit(1)
		}
	}

	go serve(apiServer, "public")
	go serve(controlServer, "control")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = apiServer.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("server shutdown failed", "err", err.Error())
	}

	err = controlServer.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("control server shutdown failed", "err", err.Error())
	}
}

func parseExternalConfigFile(cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefaultAs[string]

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[accountsFile] = envOrDef(ctx, "ACCOUNTS_FILE", flags[accountsFile])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("accounts", "an owner accounts file", apply(accountsFile))
	flag.Func("config", "service configuration file", apply(configurationFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}

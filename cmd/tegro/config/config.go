package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go-tegro/internal/tegro"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data/database"
	"go-tegro/internal/tegro/ordersmonitor"
	"go-tegro/pkg/logging"
	"go.uber.org/zap/zapcore"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
	apiURLFlag                = "u"
	apiURLEnv                 = "TEGRO_MONEY_API_URL"
	shopIDEnv                 = "TEGRO_MONEY_SHOP_ID"
	apiKeyEnv                 = "TEGRO_MONEY_API_KEY"
	timeoutEnv                = "TEGRO_MONEY_TIMEOUT"
	maxRetriesEnv             = "TEGRO_MONEY_MAX_RETRIES"
	retryDelayEnv             = "TEGRO_MONEY_RETRY_DELAY"
	logRequestsEnv            = "TEGRO_MONEY_LOG_REQUESTS"
	checkPeriodEnv            = "TEGRO_MONEY_CHECK_PERIOD"
	checkPeriodDefault        = 60
	logLevelEnv               = "LOG_LEVEL"
	logLevelDefault           = "info"
)

type Config struct {
	Server          tegro.Config
	DB              database.Config
	API             apiclient.Config
	Monitor         ordersmonitor.Config
	LogLevel        zapcore.Level
	ShutdownTimeout time.Duration
}

// MonitorEnabled reports whether pending orders should be polled.
func (c *Config) MonitorEnabled() bool {
	return c.Monitor.TickPeriod > 0
}

type values struct {
	ServerAddress      string `validate:"required"`
	DBConnectionString string `validate:"required"`
	APIURL             string `validate:"required,url"`
	ShopID             string `validate:"required"`
	APIKey             string `validate:"required"`
	TimeoutSeconds     int    `validate:"gt=0"`
	MaxRetries         int    `validate:"gte=0"`
	RetryDelaySeconds  int    `validate:"gte=0"`
	CheckPeriodSeconds int    `validate:"gte=0"`
	LogRequests        bool
	LogLevel           string `validate:"required"`
}

// Load reads a .env file if there is one, then the command line and the
// environment. Environment variables take precedence over flags.
func Load() (*Config, error) {
	return load(os.Args[0], os.Args[1:], os.LookupEnv)
}

func load(name string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return parse(name, args, lookupEnv)
}

func parse(name string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	serverAddress := flags.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	dbConnectionString := flags.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string",
	)

	apiURL := flags.String(
		apiURLFlag,
		apiclient.DefaultBaseURL,
		"Tegro.Money API base URL",
	)

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := values{
		ServerAddress:      *serverAddress,
		DBConnectionString: *dbConnectionString,
		APIURL:             *apiURL,
		TimeoutSeconds:     int(apiclient.DefaultTimeout / time.Second),
		MaxRetries:         apiclient.DefaultMaxRetries,
		RetryDelaySeconds:  int(apiclient.DefaultRetryDelay / time.Second),
		CheckPeriodSeconds: checkPeriodDefault,
		LogLevel:           logLevelDefault,
	}

	if valStr, ok := lookupEnv(serverAddressEnv); ok {
		v.ServerAddress = valStr
	}
	if valStr, ok := lookupEnv(dbConnectionStringEnv); ok {
		v.DBConnectionString = valStr
	}
	if valStr, ok := lookupEnv(apiURLEnv); ok {
		v.APIURL = valStr
	}
	if valStr, ok := lookupEnv(shopIDEnv); ok {
		v.ShopID = valStr
	}
	if valStr, ok := lookupEnv(apiKeyEnv); ok {
		v.APIKey = valStr
	}
	if valStr, ok := lookupEnv(logLevelEnv); ok {
		v.LogLevel = valStr
	}

	intVars := []struct {
		env  string
		dest *int
	}{
		{timeoutEnv, &v.TimeoutSeconds},
		{maxRetriesEnv, &v.MaxRetries},
		{retryDelayEnv, &v.RetryDelaySeconds},
		{checkPeriodEnv, &v.CheckPeriodSeconds},
	}
	for _, iv := range intVars {
		valStr, ok := lookupEnv(iv.env)
		if !ok {
			continue
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", iv.env, valStr, err)
		}
		*iv.dest = val
	}

	if valStr, ok := lookupEnv(logRequestsEnv); ok {
		val, err := strconv.ParseBool(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", logRequestsEnv, valStr, err)
		}
		v.LogRequests = val
	}

	if err := validator.New().Struct(v); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logLevel, err := logging.ParseLevel(v.LogLevel)
	if err != nil {
		return nil, err //nolint:wrapcheck // unnecessary
	}

	return &Config{
		Server: tegro.Config{
			ServerAddress:   v.ServerAddress,
			ShutdownTimeout: time.Second * 5,
		},
		DB: database.Config{
			ConnectionString:   v.DBConnectionString,
			RetryAttemptDelays: []time.Duration{time.Second, 3 * time.Second, 5 * time.Second, 0},
		},
		API: apiclient.Config{
			BaseURL:     v.APIURL,
			ShopID:      v.ShopID,
			SecretKey:   v.APIKey,
			Timeout:     time.Duration(v.TimeoutSeconds) * time.Second,
			MaxRetries:  v.MaxRetries,
			RetryDelay:  time.Duration(v.RetryDelaySeconds) * time.Second,
			LogRequests: v.LogRequests,
		},
		Monitor: ordersmonitor.Config{
			ShopID:            v.ShopID,
			TickPeriod:        time.Duration(v.CheckPeriodSeconds) * time.Second,
			WorkersCount:      4,
			TasksBufferLength: 32,
		},
		LogLevel:        logLevel,
		ShutdownTimeout: time.Second * 5,
	}, nil
}

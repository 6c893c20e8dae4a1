package config

import (
	"flag"
	"os"
	"strconv"
	"sync"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultLogLevel      = "debug"
	defaultSMTPHost      = "localhost"
	defaultSMTPPort      = 25
	defaultSMTPFrom      = "noreply@innocent.team"
)

type Config struct {
	ServerAddr   string
	DatabaseDSN  string
	LogLevel     string
	TokenKey     string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "restaurant server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "restaurant database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.StringVar(&cfg.TokenKey, "k", "", "auth token signing key (hex)")
		flag.StringVar(&cfg.SMTPHost, "smtp-host", defaultSMTPHost, "smtp server host")
		flag.IntVar(&cfg.SMTPPort, "smtp-port", defaultSMTPPort, "smtp server port")
		flag.StringVar(&cfg.SMTPUser, "smtp-user", "", "smtp user")
		flag.StringVar(&cfg.SMTPPassword, "smtp-password", "", "smtp password")
		flag.StringVar(&cfg.SMTPFrom, "smtp-from", defaultSMTPFrom, "smtp sender address")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		if tokenKeyEnv := os.Getenv("TOKEN_KEY"); tokenKeyEnv != "" {
			cfg.TokenKey = tokenKeyEnv
		}
		if smtpHostEnv := os.Getenv("SMTP_HOST"); smtpHostEnv != "" {
			cfg.SMTPHost = smtpHostEnv
		}
		if smtpPortEnv := os.Getenv("SMTP_PORT"); smtpPortEnv != "" {
			if port, err := strconv.Atoi(smtpPortEnv); err == nil {
				cfg.SMTPPort = port
			}
		}
		if smtpUserEnv := os.Getenv("SMTP_USER"); smtpUserEnv != "" {
			cfg.SMTPUser = smtpUserEnv
		}
		if smtpPasswordEnv := os.Getenv("SMTP_PASSWORD"); smtpPasswordEnv != "" {
			cfg.SMTPPassword = smtpPasswordEnv
		}
		if smtpFromEnv := os.Getenv("SMTP_FROM"); smtpFromEnv != "" {
			cfg.SMTPFrom = smtpFromEnv
		}

		singleton = &cfg
	})

	return singleton, nil
}

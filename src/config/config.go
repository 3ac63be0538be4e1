package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta             = "beta"
	Dev              = "dev"
)

type TCNConfig struct {
	Env      Environment
	Addr     string
	BaseUrl  string
	LogLevel zerolog.Level

	Postgres PostgresConfig
	Auth     AuthConfig
	Email    EmailConfig
	Forum    ForumConfig
}

type PostgresConfig struct {
	User     string
	Password string
	Hostname string
	Port     int
	DbName   string
	LogLevel string
	MinConn  int32
	MaxConn  int32
}

func (info PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s", info.User, info.Password, info.Hostname, info.Port, info.DbName)
}

type AuthConfig struct {
	CookieDomain string
	CookieSecure bool
}

type EmailConfig struct {
	ServerAddress    string
	ServerPort       int
	FromAddress      string
	FromName         string
	MailerUsername   string
	MailerPassword   string
	SupportRecipient string
	ForceToAddress   string // easier testing; all mail goes here if set
}

type ForumConfig struct {
	ThreadsPerPage int
	PostsPerPage   int
}

var Config = TCNConfig{
	Env:      Dev,
	Addr:     "localhost:9001",
	BaseUrl:  "http://localhost:9001",
	LogLevel: zerolog.InfoLevel,

	Postgres: PostgresConfig{
		User:     "tcn",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "tcn",
		LogLevel: "warn",
		MinConn:  2,
		MaxConn:  10,
	},
	Auth: AuthConfig{
		CookieDomain: "localhost",
		CookieSecure: false,
	},
	Email: EmailConfig{
		ServerPort: 25,
		FromName:   "Team Core",
	},
	Forum: ForumConfig{
		ThreadsPerPage: 20,
		PostsPerPage:   10,
	},
}

func init() {
	// A missing .env is fine; the defaults above are enough for local dev.
	godotenv.Load()

	applyString("TCN_ADDR", &Config.Addr)
	applyString("TCN_BASE_URL", &Config.BaseUrl)
	if env, ok := os.LookupEnv("TCN_ENV"); ok {
		Config.Env = Environment(env)
	}
	if level, ok := os.LookupEnv("TCN_LOG_LEVEL"); ok {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			Config.LogLevel = parsed
		}
	}

	applyString("TCN_POSTGRES_USER", &Config.Postgres.User)
	applyString("TCN_POSTGRES_PASSWORD", &Config.Postgres.Password)
	applyString("TCN_POSTGRES_HOSTNAME", &Config.Postgres.Hostname)
	applyInt("TCN_POSTGRES_PORT", &Config.Postgres.Port)
	applyString("TCN_POSTGRES_DBNAME", &Config.Postgres.DbName)

	applyString("TCN_COOKIE_DOMAIN", &Config.Auth.CookieDomain)

	applyString("TCN_MAIL_SERVER", &Config.Email.ServerAddress)
	applyInt("TCN_MAIL_PORT", &Config.Email.ServerPort)
	applyString("TCN_MAIL_USERNAME", &Config.Email.MailerUsername)
	applyString("TCN_MAIL_PASSWORD", &Config.Email.MailerPassword)
	applyString("TCN_MAIL_FROM", &Config.Email.FromAddress)
	applyString("TCN_SUPPORT_RECIPIENT", &Config.Email.SupportRecipient)

	applyInt("TCN_THREADS_PER_PAGE", &Config.Forum.ThreadsPerPage)
	applyInt("TCN_POSTS_PER_PAGE", &Config.Forum.PostsPerPage)
}

func applyString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func applyInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

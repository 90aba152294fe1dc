package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the application configuration, loaded once at startup.
var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string

		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		// MonthlyFeeAmount is the only amount accepted when recording a fee payment.
		MonthlyFeeAmount float64

		Server  ServerConfig
		Storage StorageConfig
	}

	ServerConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
	}

	StorageConfig struct {
		// Backend selects the document store: inmem | file | postgres | mongo
		Backend  string
		FilePath string

		Database DatabaseConfig

		MongoURI      string
		MongoDatabase string
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       string
		DisableTLS bool
	}
)

func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "GestionEcole")
	v.SetDefault("secretKey", "q2f&8f1#kq7d-3s)x9!0m&yv5^ujz@4c$(p6r+wg8e_h%tbn2a")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("monthlyFeeAmount", 150000)
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("storageBackend", "file")
	v.SetDefault("storageFilePath", "ecole.json")
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "ecole")
	v.SetDefault("dbUser", "postgres")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", "5432")
	v.SetDefault("dbDisableTLS", true)
	v.SetDefault("mongoURI", "mongodb://localhost:27017")
	v.SetDefault("mongoDatabase", "ecole")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storageBackend", "inmem")
	}
	v.SetEnvPrefix(env)

	// load config/.env.<env> if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		MonthlyFeeAmount: v.GetFloat64("monthlyFeeAmount"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetString("serverPort"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Storage: StorageConfig{
			Backend:  v.GetString("storageBackend"),
			FilePath: v.GetString("storageFilePath"),
			Database: DatabaseConfig{
				Engine:     v.GetString("dbEngine"),
				Name:       v.GetString("dbName"),
				User:       v.GetString("dbUser"),
				Password:   v.GetString("dbPassword"),
				Host:       v.GetString("dbHost"),
				Port:       v.GetString("dbPort"),
				DisableTLS: v.GetBool("dbDisableTLS"),
			},
			MongoURI:      v.GetString("mongoURI"),
			MongoDatabase: v.GetString("mongoDatabase"),
		},
	}
}

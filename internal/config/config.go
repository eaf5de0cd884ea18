package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/kurirapp/courier-api/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every runtime setting of the service. Only this struct must
// be used to read configuration values, no direct access to env, ini or any
// other config source should be made.
type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	AppName  string `env:"APP_NAME,default=courier_api"`
	AppDebug bool   `env:"APP_DEBUG,default=true"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR,default=:8080"`

	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDatabase string `env:"POSTGRES_DBNAME"`

	MigrationsDir string `env:"MIGRATIONS_DIR,default=./migrations"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=1h"`

	UploadDir        string `env:"UPLOAD_DIR,default=./uploads"`
	UploadPublicPath string `env:"UPLOAD_PUBLIC_PATH,default=/uploads"`

	PromNamespace string `env:"PROM_NAMESPACE"`
	MetricsAddr   string `env:"METRICS_ADDR"`
	MetricsURI    string `env:"METRICS_URI,default=/metrics"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

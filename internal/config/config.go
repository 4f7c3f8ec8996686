package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	DSN      string         `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	HTTP     HTTPConfig     `yaml:"http"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConf      `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Counter  CounterConfig  `yaml:"counter"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host" env:"HTTP_HOST"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"30s"`
}

type SupabaseConfig struct {
	URL        string `yaml:"url" env:"SUPABASE_URL" env-required:"true"`
	ServiceKey string `yaml:"service_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	JWTSecret  string `yaml:"jwt_secret" env:"SUPABASE_JWT_SECRET"`
}

// StorageConfig выбор реализации хранилища объектов: supabase или local
type StorageConfig struct {
	Driver  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"supabase"`
	BaseDir string `yaml:"base_dir" env:"STORAGE_BASE_DIR" env-default:"./uploads"`
	// PublicURL базовый адрес публичных ссылок для local
	PublicURL string `yaml:"public_url" env:"STORAGE_PUBLIC_URL" env-default:"http://localhost:8080"`
}

type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	GalleryTTL    time.Duration `yaml:"gallery_ttl" env-default:"5m"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"edge.events"`
}

type CounterConfig struct {
	MaxAttempts int `yaml:"max_attempts" env-default:"5"`
}

func MustLoad() *Config {
	// .env не обязателен
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/RyoWakabayashi/pm-study/pkg/validator"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	SourceHTTP = "http"
	SourceFile = "file"
)

type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Bot      BotConfig      `mapstructure:"bot" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	ExamData ExamDataConfig `mapstructure:"exam_data" validate:"required"`
	DB       DBConfig       `mapstructure:"db" validate:"-"`
	Redis    RedisConfig    `mapstructure:"redis" validate:"-"`
	Env      string         `mapstructure:"env" validate:"oneof=development production staging"`
}

type AppConfig struct {
	Timeout          time.Duration `mapstructure:"timeout" validate:"min=1"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval" validate:"min=1"`
}

type BotConfig struct {
	Token   string `mapstructure:"token" validate:"required"`
	OwnerID int64  `mapstructure:"owner_id" validate:"required"`
}

type StorageConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=memory postgres redis"`
	Key      string `mapstructure:"key" validate:"required"`
	MaxBytes int    `mapstructure:"max_bytes" validate:"min=0"`
}

type ExamDataConfig struct {
	Source       string        `mapstructure:"source" validate:"oneof=http file"`
	BaseURL      string        `mapstructure:"base_url" validate:"required_if=Source http"`
	Dir          string        `mapstructure:"dir" validate:"required_if=Source file"`
	JSONPath     string        `mapstructure:"json_path"`
	ImagePath    string        `mapstructure:"image_path" validate:"required"`
	ExamIDs      []string      `mapstructure:"exam_ids" validate:"min=1,dive,required"`
	MaxRetries   int           `mapstructure:"max_retries" validate:"min=1,max=10"`
	RetryBase    time.Duration `mapstructure:"retry_base" validate:"min=0"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"min=1"`
}

type DBConfig struct {
	Conn DBConn `mapstructure:"conn"`
	Cfg  DBCfg  `mapstructure:"cfg"`
}

type DBConn struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	SSL      string `mapstructure:"ssl" validate:"oneof=disable require verify-full"`
}

type DBCfg struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1,max=1000"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0,max=100"`
	ConnMaxLifeTime time.Duration `mapstructure:"conn_max_life_time" validate:"min=0"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"min=0"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	Prefix   string `mapstructure:"prefix"`
}

var envBindings = map[string]string{
	"bot.token":          "BOT_TOKEN",
	"bot.owner_id":       "OWNER_ID",
	"db.conn.host":       "DB_HOST",
	"db.conn.port":       "DB_PORT",
	"db.conn.user":       "DB_USER",
	"db.conn.password":   "DB_PASSWORD",
	"db.conn.name":       "DB_NAME",
	"db.conn.ssl":        "DB_SSL",
	"redis.addr":         "REDIS_ADDR",
	"redis.password":     "REDIS_PASSWORD",
	"storage.driver":     "STORAGE_DRIVER",
	"exam_data.base_url": "EXAM_DATA_URL",
}

func Init() (*Config, error) {
	return Load("configs")
}

func Load(dir string) (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	setDefaults(v)

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}

	v.AddConfigPath(dir)
	v.SetConfigName(configName)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case DriverPostgres:
		if err := validator.ValidateStruct(cfg.DB); err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
	case DriverRedis:
		if err := validator.ValidateStruct(cfg.Redis); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("app.timeout", 10*time.Second)
	v.SetDefault("app.autosave_interval", 30*time.Second)
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.key", "pm-exam-quiz-progress")
	v.SetDefault("exam_data.source", SourceFile)
	v.SetDefault("exam_data.dir", "exam_data")
	v.SetDefault("exam_data.json_path", "json")
	v.SetDefault("exam_data.image_path", "images")
	v.SetDefault("exam_data.max_retries", 3)
	v.SetDefault("exam_data.retry_base", 500*time.Millisecond)
	v.SetDefault("exam_data.probe_timeout", 5*time.Second)
	v.SetDefault("db.cfg.max_open_conns", 5)
	v.SetDefault("db.cfg.max_idle_conns", 2)
	v.SetDefault("db.conn.ssl", "disable")
	v.SetDefault("redis.prefix", "pm-study:")
}

// Package config loads the sync engine configuration from a YAML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/iudanet/possync/internal/models"
	"github.com/iudanet/possync/internal/validation"
)

// EnvPrefix is the prefix for environment variables (POSSYNC_REMOTE_URL, ...)
const EnvPrefix = "POSSYNC"

// Endpoint drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

// Cursor store drivers
const (
	CursorDriverBolt   = "bolt"
	CursorDriverSQLite = "sqlite"
	CursorDriverFile   = "file"
)

// Defaults
const (
	DefaultIntervalMinutes = 5
	DefaultWorkers         = 1
	DefaultConnectTimeout  = 10 * time.Second
	DefaultCallTimeout     = 30 * time.Second
	DefaultCycleTimeout    = 10 * time.Minute
	DefaultCursorMode      = "cycle_start"
	DefaultCursorPath      = "possync-cursors.db"
	DefaultLogFile         = "sync.log"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxAgeDays   = 7
	DefaultServerAddress   = ":8080"
)

// legacyEnv maps config keys to environment variable names of the previous
// sync service. The POSSYNC_ variable wins when both are set.
var legacyEnv = map[string]string{
	"local.url":             "LOCAL_SUPABASE_URL",
	"local.key":             "LOCAL_SUPABASE_KEY",
	"remote.url":            "REMOTE_SUPABASE_URL",
	"remote.key":            "REMOTE_SUPABASE_KEY",
	"sync.interval_minutes": "SYNC_INTERVAL_MINUTES",
	"log.file":              "SYNC_LOG_FILE",
}

// ErrNoTables returned when the table list is empty
var ErrNoTables = errors.New("at least one table must be configured")

// Config корневая конфигурация
type Config struct {
	Local   EndpointConfig `mapstructure:"local" validate:"required"`
	Remote  EndpointConfig `mapstructure:"remote" validate:"required"`
	Cursor  CursorConfig   `mapstructure:"cursor"`
	Log     LogConfig      `mapstructure:"log"`
	Server  ServerConfig   `mapstructure:"server"`
	Columns ColumnsConfig  `mapstructure:"columns"`
	Sync    SyncConfig     `mapstructure:"sync"`
}

// EndpointConfig адрес и ключ одной реплики.
// URL is a file path for sqlite, a DSN for postgres and a base URL for rest.
type EndpointConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres rest"`
	URL    string `mapstructure:"url" validate:"required"`
	Key    string `mapstructure:"key"`
}

// SyncConfig параметры цикла синхронизации
type SyncConfig struct {
	CursorMode      string        `mapstructure:"cursor_mode" validate:"required,oneof=cycle_start max_row"`
	Tables          []TableConfig `mapstructure:"tables" validate:"required,min=1,dive"`
	IntervalMinutes int           `mapstructure:"interval_minutes" validate:"required,min=1"`
	Workers         int           `mapstructure:"workers" validate:"min=1,max=64"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout" validate:"required,min=1s"`
	CallTimeout     time.Duration `mapstructure:"call_timeout" validate:"required,min=1s"`
	CycleTimeout    time.Duration `mapstructure:"cycle_timeout" validate:"min=0"`
}

// TableConfig одна синхронизируемая таблица. Пустые колонки берутся из columns.*
type TableConfig struct {
	Name          string `mapstructure:"name" validate:"required"`
	IDColumn      string `mapstructure:"id_column"`
	SyncedColumn  string `mapstructure:"synced_column"`
	UpdatedColumn string `mapstructure:"updated_column"`
}

// ColumnsConfig default column names shared by all tables
type ColumnsConfig struct {
	ID      string `mapstructure:"id" validate:"required"`
	Synced  string `mapstructure:"synced" validate:"required"`
	Updated string `mapstructure:"updated_at" validate:"required"`
}

// CursorConfig хранилище курсоров
type CursorConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=bolt sqlite file"`
	Path   string `mapstructure:"path" validate:"required"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"required,oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
}

// ServerConfig read-only status server
type ServerConfig struct {
	Address    string `mapstructure:"address" validate:"required_if=Enabled true"`
	AuthSecret string `mapstructure:"auth_secret"`
	Enabled    bool   `mapstructure:"enabled"`
}

// Interval returns the scheduler interval
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Sync.IntervalMinutes) * time.Minute
}

// Tables resolves table descriptors in configured order, applying the
// default column names where a table has no override.
func (c *Config) Tables() []models.Table {
	tables := make([]models.Table, 0, len(c.Sync.Tables))
	for _, tc := range c.Sync.Tables {
		t := models.Table{
			Name:          tc.Name,
			IDColumn:      firstNonEmpty(tc.IDColumn, c.Columns.ID),
			SyncedColumn:  firstNonEmpty(tc.SyncedColumn, c.Columns.Synced),
			UpdatedColumn: firstNonEmpty(tc.UpdatedColumn, c.Columns.Updated),
		}
		tables = append(tables, t.WithDefaults())
	}
	return tables
}

// SetDefaults registers defaults for every key, which also makes the keys
// visible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("local.driver", DriverSQLite)
	v.SetDefault("local.url", "")
	v.SetDefault("local.key", "")
	v.SetDefault("remote.driver", DriverREST)
	v.SetDefault("remote.url", "")
	v.SetDefault("remote.key", "")

	v.SetDefault("sync.interval_minutes", DefaultIntervalMinutes)
	v.SetDefault("sync.tables", []string{})
	v.SetDefault("sync.workers", DefaultWorkers)
	v.SetDefault("sync.connect_timeout", DefaultConnectTimeout)
	v.SetDefault("sync.call_timeout", DefaultCallTimeout)
	v.SetDefault("sync.cycle_timeout", DefaultCycleTimeout)
	v.SetDefault("sync.cursor_mode", DefaultCursorMode)

	v.SetDefault("columns.id", models.DefaultIDColumn)
	v.SetDefault("columns.synced", models.DefaultSyncedColumn)
	v.SetDefault("columns.updated_at", models.DefaultUpdatedColumn)

	v.SetDefault("cursor.driver", CursorDriverBolt)
	v.SetDefault("cursor.path", DefaultCursorPath)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("log.max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("log.max_age_days", DefaultLogMaxAgeDays)
	v.SetDefault("log.max_backups", 0)

	v.SetDefault("server.enabled", false)
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.auth_secret", "")
}

// Load reads configuration from path (optional) and the environment.
// An empty path means environment and defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates configuration from an already prepared viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	applyLegacyEnv(v)

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		tableListHook(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct rules and SQL identifiers
func (c *Config) Validate() error {
	if len(c.Sync.Tables) == 0 {
		return ErrNoTables
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, col := range []string{c.Columns.ID, c.Columns.Synced, c.Columns.Updated} {
		if err := validation.ValidateColumnName(col); err != nil {
			return fmt.Errorf("invalid default column: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(c.Sync.Tables))
	for _, t := range c.Tables() {
		if err := validation.ValidateTableName(t.Name); err != nil {
			return fmt.Errorf("invalid table: %w", err)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("invalid table: %q listed twice", t.Name)
		}
		seen[t.Name] = struct{}{}

		for _, col := range []string{t.IDColumn, t.SyncedColumn, t.UpdatedColumn} {
			if err := validation.ValidateColumnName(col); err != nil {
				return fmt.Errorf("invalid column for table %s: %w", t.Name, err)
			}
		}
	}

	return nil
}

// applyLegacyEnv binds every key to its POSSYNC_ name first and the name
// used by the previous sync service second.
func applyLegacyEnv(v *viper.Viper) {
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
}

// tableListHook accepts sync.tables as a comma separated string (from env),
// a list of names or a list of objects.
func tableListHook() mapstructure.DecodeHookFuncType {
	tableType := reflect.TypeOf(TableConfig{})
	listType := reflect.TypeOf([]TableConfig{})

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		s, _ := data.(string)

		switch to {
		case tableType:
			return TableConfig{Name: strings.TrimSpace(s)}, nil
		case listType:
			var tables []TableConfig
			for _, name := range strings.Split(s, ",") {
				if name = strings.TrimSpace(name); name != "" {
					tables = append(tables, TableConfig{Name: name})
				}
			}
			return tables, nil
		}
		return data, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

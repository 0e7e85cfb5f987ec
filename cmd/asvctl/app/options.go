package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billionvectors/asimplevectors-go/v1/archive"
	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
	"github.com/billionvectors/asimplevectors-go/v1/logger"
	"github.com/billionvectors/asimplevectors-go/v1/metrics"
	"github.com/billionvectors/asimplevectors-go/v1/tracer"
)

// Options is the merged asvctl configuration. Values come from flags,
// then ASV_* environment variables, then the config file.
type Options struct {
	Host    string        `mapstructure:"host"`
	Port    int           `mapstructure:"port"`
	UseSSL  bool          `mapstructure:"use_ssl"`
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`

	Log     LogOptions     `mapstructure:"log"`
	Trace   TraceOptions   `mapstructure:"trace"`
	Metrics MetricsOptions `mapstructure:"metrics"`
	Archive ArchiveOptions `mapstructure:"archive"`
}

type LogOptions struct {
	Level string `mapstructure:"level"`
}

type TraceOptions struct {
	EnableExport bool   `mapstructure:"enable_export"`
	Endpoint     string `mapstructure:"endpoint"`
	Insecure     bool   `mapstructure:"insecure"`
}

// MetricsOptions exposes /metrics while a command runs, which is mostly
// useful for long snapshot transfers.
type MetricsOptions struct {
	Address string `mapstructure:"address"`
}

type ArchiveOptions struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Prefix          string `mapstructure:"prefix"`
	PartSize        uint64 `mapstructure:"part_size"`
}

func setDefaults(v *viper.Viper) {
	cfg := asimplevectors.DefaultConfig()
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("use_ssl", false)
	v.SetDefault("base_url", "")
	v.SetDefault("token", "")
	v.SetDefault("timeout", cfg.Timeout)

	v.SetDefault("log.level", logger.Warning)

	v.SetDefault("trace.enable_export", false)
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.insecure", false)

	v.SetDefault("metrics.address", "")

	arch := archive.DefaultConfig()
	v.SetDefault("archive.endpoint", arch.Endpoint)
	v.SetDefault("archive.access_key_id", "")
	v.SetDefault("archive.secret_access_key", "")
	v.SetDefault("archive.use_ssl", false)
	v.SetDefault("archive.bucket", arch.Bucket)
	v.SetDefault("archive.region", "")
	v.SetDefault("archive.prefix", arch.Prefix)
	v.SetDefault("archive.part_size", arch.PartSize)
}

func addGlobalFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringP("config", "c", "", "Path to config file (default ./asvctl.yaml or ~/.asvctl/asvctl.yaml)")
	fs.String("host", "", "Server host")
	fs.Int("port", 0, "Server port")
	fs.Bool("ssl", false, "Use https")
	fs.String("base-url", "", "Full server URL, overrides host, port and ssl")
	fs.String("token", "", "Bearer token")
	fs.Duration("timeout", 0, "Request timeout")
	fs.String("log-level", "", "Log level: debug, info, warning, error")
}

var flagKeys = map[string]string{
	"host":      "host",
	"port":      "port",
	"ssl":       "use_ssl",
	"base-url":  "base_url",
	"token":     "token",
	"timeout":   "timeout",
	"log-level": "log.level",
}

// loadOptions reads the config file, binds environment and flags and
// decodes the result.
func loadOptions(v *viper.Viper, cmd *cobra.Command) (*Options, error) {
	setDefaults(v)

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+Name))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("ASV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The tracer package reads ASV_TRACE_EXPORT.
	if err := v.BindEnv("trace.enable_export", "ASV_TRACE_EXPORT", "ASV_TRACE_ENABLE_EXPORT"); err != nil {
		return nil, err
	}

	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return opts, nil
}

func (o *Options) clientConfig() (*asimplevectors.Config, error) {
	cfg := asimplevectors.DefaultConfig()
	cfg.Host = o.Host
	cfg.Port = o.Port
	cfg.UseSSL = o.UseSSL
	cfg.BaseURL = o.BaseURL
	cfg.Token = o.Token
	cfg.Timeout = o.Timeout
	cfg.UserAgent = Name
	return cfg, cfg.Validate()
}

func (o *Options) archiveConfig() archive.Config {
	return archive.Config{
		Endpoint:        o.Archive.Endpoint,
		AccessKeyID:     o.Archive.AccessKeyID,
		SecretAccessKey: o.Archive.SecretAccessKey,
		UseSSL:          o.Archive.UseSSL,
		Bucket:          o.Archive.Bucket,
		Region:          o.Archive.Region,
		Prefix:          o.Archive.Prefix,
		PartSize:        o.Archive.PartSize,
	}
}

func (o *Options) loggerConfig() logger.Config {
	return logger.Config{Level: o.Log.Level, ServiceName: Name, EnableTracing: o.Trace.EnableExport}
}

func (o *Options) tracerConfig() tracer.Config {
	return tracer.Config{
		ServiceName:  Name,
		EnableExport: o.Trace.EnableExport,
		Endpoint:     o.Trace.Endpoint,
		Insecure:     o.Trace.Insecure,
	}
}

func (o *Options) metricsConfig() metrics.Config {
	return metrics.Config{Address: o.Metrics.Address, ServiceName: Name}
}

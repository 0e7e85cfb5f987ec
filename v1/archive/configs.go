package archive

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

const (
	// DefaultPrefix is the key prefix archived snapshots are stored under.
	DefaultPrefix = "snapshots/"

	// DefaultPartSize is the multipart part size used for uploads. The
	// archive size is unknown up front, so every upload is multipart.
	DefaultPartSize uint64 = 16 * 1024 * 1024

	minPartSize uint64 = 5 * 1024 * 1024
)

// Config describes the S3-compatible bucket snapshots are archived into.
type Config struct {
	Endpoint        string `yaml:"endpoint" env:"ASV_ARCHIVE_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"ASV_ARCHIVE_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"ASV_ARCHIVE_SECRET_ACCESS_KEY"`
	UseSSL          bool   `yaml:"use_ssl" env:"ASV_ARCHIVE_USE_SSL"`
	Bucket          string `yaml:"bucket" env:"ASV_ARCHIVE_BUCKET"`
	Region          string `yaml:"region" env:"ASV_ARCHIVE_REGION"`

	// Prefix is prepended to every object key. A missing trailing slash is
	// added.
	Prefix string `yaml:"prefix" env:"ASV_ARCHIVE_PREFIX"`

	PartSize uint64 `yaml:"part_size" env:"ASV_ARCHIVE_PART_SIZE"`
}

// DefaultConfig returns a config for a local MinIO on port 9000.
func DefaultConfig() Config {
	return Config{
		Endpoint: "localhost:9000",
		Bucket:   "asimplevectors-snapshots",
		Prefix:   DefaultPrefix,
		PartSize: DefaultPartSize,
	}
}

// NewConfigFromEnv overlays ASV_ARCHIVE_* variables on DefaultConfig and
// validates the result.
func NewConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ASV_ARCHIVE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ASV_ARCHIVE_ACCESS_KEY_ID"); v != "" {
		cfg.AccessKeyID = v
	}
	if v := os.Getenv("ASV_ARCHIVE_SECRET_ACCESS_KEY"); v != "" {
		cfg.SecretAccessKey = v
	}
	if v := os.Getenv("ASV_ARCHIVE_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid ASV_ARCHIVE_USE_SSL %q: %w", v, err)
		}
		cfg.UseSSL = useSSL
	}
	if v := os.Getenv("ASV_ARCHIVE_BUCKET"); v != "" {
		cfg.Bucket = v
	}
	if v := os.Getenv("ASV_ARCHIVE_REGION"); v != "" {
		cfg.Region = v
	}
	if v, ok := os.LookupEnv("ASV_ARCHIVE_PREFIX"); ok {
		cfg.Prefix = v
	}
	if v := os.Getenv("ASV_ARCHIVE_PART_SIZE"); v != "" {
		size, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid ASV_ARCHIVE_PART_SIZE %q: %w", v, err)
		}
		cfg.PartSize = size
	}

	return cfg, cfg.Validate()
}

// Validate reports the first problem with the config.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: endpoint cannot be empty", ErrInvalidConfig)
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("%w: endpoint %q must be host:port without a scheme", ErrInvalidConfig, c.Endpoint)
	}
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket cannot be empty", ErrInvalidConfig)
	}
	if c.PartSize != 0 && c.PartSize < minPartSize {
		return fmt.Errorf("%w: part size %d is below the 5 MiB minimum", ErrInvalidConfig, c.PartSize)
	}
	return nil
}

// ObjectKey returns the key the snapshot for date is archived under.
func (c Config) ObjectKey(date string) string {
	return c.prefix() + asimplevectors.SnapshotFileName(date)
}

func (c Config) prefix() string {
	if c.Prefix == "" || strings.HasSuffix(c.Prefix, "/") {
		return c.Prefix
	}
	return c.Prefix + "/"
}

func (c Config) partSize() uint64 {
	if c.PartSize == 0 {
		return DefaultPartSize
	}
	return c.PartSize
}

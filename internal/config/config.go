package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 20 GiB: стриминговая загрузка должна принимать очень большие тела.
const defaultMaxBodyBytes = int64(20) << 30

type Config struct {
	ListenAddr    string        `yaml:"listen_addr" json:"listen_addr"`
	ArchiveDir    string        `yaml:"archive_dir" json:"archive_dir"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	StatsInterval time.Duration `yaml:"stats_interval" json:"stats_interval"`
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствующий config.yaml не ошибка — тогда работают значения по умолчанию.
func Load() (*Config, error) {
	// .env подхватывается до чтения ENV; его отсутствие тоже допустимо.
	_ = godotenv.Load()

	c := &Config{
		ListenAddr:   ":8080",
		ArchiveDir:   "./archive",
		MaxBodyBytes: defaultMaxBodyBytes,
	}

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ARCHIVE_DIR"); v != "" {
		c.ArchiveDir = v
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("STATS_INTERVAL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.StatsInterval = time.Duration(n) * time.Minute
		}
	}

	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}

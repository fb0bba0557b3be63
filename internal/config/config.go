package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
)

type Config struct {
	Env       string
	LogLevel  string
	Port      string
	DBType    string
	DBDSN     string
	DataDir   string
	Latitude  float64
	Longitude float64
	// Default prayer schedule served by the fixed time provider.
	FajrTime    string
	SunriseTime string
	DhuhrTime   string
	AsrTime     string
	MaghribTime string
	IshaTime    string
	// Optional YAML file overriding the point weights.
	WeightsFile string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Port:        getEnv("PORT", "8088"),
			DBType:      getEnv("STORAGE_BACKEND", "file"),
			DBDSN:       getEnv("POSTGRES_DSN", ""),
			DataDir:     getEnv("DATA_DIR", "data"),
			Latitude:    getEnvFloat("LATITUDE", 21.4225), // Mecca
			Longitude:   getEnvFloat("LONGITUDE", 39.8262),
			FajrTime:    getEnv("FAJR_TIME", "05:00"),
			SunriseTime: getEnv("SUNRISE_TIME", "06:15"),
			DhuhrTime:   getEnv("DHUHR_TIME", "12:00"),
			AsrTime:     getEnv("ASR_TIME", "15:30"),
			MaghribTime: getEnv("MAGHRIB_TIME", "18:00"),
			IshaTime:    getEnv("ISHA_TIME", "19:30"),
			WeightsFile: getEnv("WEIGHTS_FILE", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.DataDir == "" {
		return errors.New("File storage requires DATA_DIR to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/etnz/folio/quotes"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the fol configuration, read from a TOML file.
type Config struct {
	BaseCurrency string             `toml:"base_currency"`
	Holdings     string             `toml:"holdings"`     // JSONL holdings file
	Prices       string             `toml:"prices"`       // JSON prices file, symbol -> quote
	RatesFile    string             `toml:"rates_file"`   // JSON rates file, optional
	Rates        map[string]float64 `toml:"rates"`        // live rates, override the rates file
	Lots         string             `toml:"lots"`         // JSONL lots file
	Transactions string             `toml:"transactions"` // JSONL transactions file
	Quotes       QuotesConfig       `toml:"quotes"`
	Logging      LoggingConfig      `toml:"logging"`
}

// QuotesConfig configures the quotes snapshot.
type QuotesConfig struct {
	// MaxAge is the duration a quote of the prices file stays fresh.
	MaxAge string `toml:"max_age"`

	// Document is a provider JSON document to refresh stale quotes from.
	Document string `toml:"document"`

	// URL of a provider returning one JSON document per symbol, "{symbol}"
	// is replaced by the symbol. Ignored when Document is set.
	URL string `toml:"url"`

	// Currency of the quotes found in Document, when Paths.Currency finds none.
	Currency string       `toml:"currency"`
	Paths    quotes.Paths `toml:"paths"`
	Parallel int          `toml:"parallel"`
}

// GetMaxAge parses and returns the quotes max age.
func (c *QuotesConfig) GetMaxAge() time.Duration {
	d, err := time.ParseDuration(c.MaxAge)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		BaseCurrency: "USD",
		Holdings:     "holdings.jsonl",
		Prices:       "prices.json",
		Lots:         "lots.jsonl",
		Transactions: "transactions.jsonl",
		Quotes: QuotesConfig{
			MaxAge:   "24h",
			Parallel: 4,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadConfig reads the configuration file at path over the defaults. A
// missing file is not an error unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(config)
	config.BaseCurrency = strings.ToUpper(strings.TrimSpace(config.BaseCurrency))
	if config.BaseCurrency == "" {
		config.BaseCurrency = "USD"
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("FOLIO_BASE_CURRENCY"); v != "" {
		config.BaseCurrency = v
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("FOLIO_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	if v := os.Getenv("FOLIO_QUOTES_URL"); v != "" {
		config.Quotes.URL = v
	}
}

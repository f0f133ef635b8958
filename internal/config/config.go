package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"masarif/internal/core"
	"masarif/internal/normalize"
)

// Source backends.
const (
	SourceMemory = "memory"
	SourceSheets = "sheets"
	SourceCSV    = "csv"
)

type Config struct {
	// HTTP server
	Port string

	// Data source selection
	Source string

	// Google Sheets source
	SpreadsheetID   string
	ExpensesTab     string
	IncomeTab       string
	CredentialsFile string
	CredentialsJSON string

	// CSV source
	ExpensesCSV string
	IncomeCSV   string

	// Fetch cache
	CacheTTL             time.Duration
	CacheSize            int
	CacheCleanupInterval time.Duration

	// Normalization
	MinYear        int
	AmountFallback int
	DateFallback   int

	// Default grouping column per role
	ExpensesCategoryColumn string
	IncomeCategoryColumn   string
}

func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8081"),
		Source: getEnv("DATA_SOURCE", SourceMemory),

		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		ExpensesTab:     getEnv("EXPENSES_TAB", "المصروفات"),
		IncomeTab:       getEnv("INCOME_TAB", "الإيرادات"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		ExpensesCSV: getEnv("EXPENSES_CSV", ""),
		IncomeCSV:   getEnv("INCOME_CSV", ""),

		CacheTTL:             getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheSize:            getEnvInt("CACHE_SIZE", 16),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 10*time.Minute),

		MinYear:        getEnvInt("MIN_YEAR", 0),
		AmountFallback: getEnvInt("AMOUNT_FALLBACK_INDEX", normalize.NoFallback),
		DateFallback:   getEnvInt("DATE_FALLBACK_INDEX", normalize.NoFallback),

		ExpensesCategoryColumn: getEnv("EXPENSES_CATEGORY_COLUMN", "البند"),
		IncomeCategoryColumn:   getEnv("INCOME_CATEGORY_COLUMN", "المصدر"),
	}
}

// Validate checks the configuration, collecting every problem into one
// error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Source {
	case SourceMemory:
	case SourceSheets:
		if c.SpreadsheetID == "" {
			problems = append(problems, "SPREADSHEET_ID is required for the sheets source")
		}
		if c.ExpensesTab == "" || c.IncomeTab == "" {
			problems = append(problems, "both EXPENSES_TAB and INCOME_TAB are required for the sheets source")
		}
		if c.CredentialsFile != "" {
			if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf("credentials file does not exist: %s", c.CredentialsFile))
			}
		}
	case SourceCSV:
		if c.ExpensesCSV == "" || c.IncomeCSV == "" {
			problems = append(problems, "both EXPENSES_CSV and INCOME_CSV are required for the csv source")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of [%s %s %s]",
			c.Source, SourceMemory, SourceSheets, SourceCSV))
	}

	if c.CacheTTL < time.Second {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}
	if c.CacheSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.MinYear < 0 {
		problems = append(problems, fmt.Sprintf("invalid minimum year %d", c.MinYear))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Tabs returns the sheet tab per role.
func (c *Config) Tabs() map[core.Role]string {
	return map[core.Role]string{
		core.Expenses: c.ExpensesTab,
		core.Income:   c.IncomeTab,
	}
}

// CSVPaths returns the CSV path per role.
func (c *Config) CSVPaths() map[core.Role]string {
	return map[core.Role]string{
		core.Expenses: c.ExpensesCSV,
		core.Income:   c.IncomeCSV,
	}
}

// CategoryColumns returns the default grouping column per role.
func (c *Config) CategoryColumns() map[core.Role]string {
	return map[core.Role]string{
		core.Expenses: c.ExpensesCategoryColumn,
		core.Income:   c.IncomeCategoryColumn,
	}
}

// NormalizeOptions builds the normalizer options from the configured
// cutoff and fallback indices. The same fallbacks apply to both roles.
func (c *Config) NormalizeOptions() normalize.Options {
	fb := normalize.Fallbacks{Amount: c.AmountFallback, Date: c.DateFallback}
	return normalize.Options{
		MinYear: c.MinYear,
		Fallbacks: map[core.Role]normalize.Fallbacks{
			core.Expenses: fb,
			core.Income:   fb,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

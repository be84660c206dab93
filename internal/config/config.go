package config

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Invoice   InvoiceConfig
	Catalog   CatalogConfig
	Printer   PrinterConfig
	Receipt   ReceiptConfig
	Report    ReportConfig
}

type AppConfig struct {
	Name string
	Env  string
	Host string
	Port string
}

// Addr is the listen address. Host defaults to loopback so only the shop
// machine reaches the API.
func (a AppConfig) Addr() string {
	return net.JoinHostPort(a.Host, a.Port)
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogLevel string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// InvoiceConfig controls invoice number layout, e.g. INV-0000001.
type InvoiceConfig struct {
	Prefix string
	Width  int
}

type CatalogConfig struct {
	SimilarityThreshold float64
}

// PrinterConfig selects the receipt printer transport: queue, usb, network or none.
type PrinterConfig struct {
	Type      string
	Name      string
	USBPath   string
	Address   string
	CharWidth int
}

type ReceiptConfig struct {
	StoreName string
	Tagline   string
}

type ReportConfig struct {
	OutputDir string
	Currency  string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	viper.SetDefault("APP_NAME", "galleauto-billing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_HOST", "127.0.0.1")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "galleauto")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Colombo")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("INVOICE_PREFIX", "INV-")
	viper.SetDefault("INVOICE_NUMBER_WIDTH", 7)
	viper.SetDefault("SIMILARITY_THRESHOLD", 75.0)
	viper.SetDefault("PRINTER_TYPE", "queue")
	viper.SetDefault("PRINTER_NAME", "")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("RECEIPT_STORE_NAME", "GALLEAUTO SERVICE")
	viper.SetDefault("RECEIPT_TAGLINE", "Vehicle Service Center")
	viper.SetDefault("REPORT_OUTPUT_DIR", defaultReportDir())
	viper.SetDefault("REPORT_CURRENCY", "LKR")

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
			Host: viper.GetString("APP_HOST"),
			Port: viper.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			LogLevel: viper.GetString("DB_LOG_LEVEL"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Invoice: InvoiceConfig{
			Prefix: viper.GetString("INVOICE_PREFIX"),
			Width:  viper.GetInt("INVOICE_NUMBER_WIDTH"),
		},
		Catalog: CatalogConfig{
			SimilarityThreshold: viper.GetFloat64("SIMILARITY_THRESHOLD"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			Name:      viper.GetString("PRINTER_NAME"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Receipt: ReceiptConfig{
			StoreName: viper.GetString("RECEIPT_STORE_NAME"),
			Tagline:   viper.GetString("RECEIPT_TAGLINE"),
		},
		Report: ReportConfig{
			OutputDir: expandHome(viper.GetString("REPORT_OUTPUT_DIR")),
			Currency:  viper.GetString("REPORT_CURRENCY"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func defaultReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Excel   ExcelConfig
	PDF     PDFConfig
	Ingest  IngestConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
	TessdataDir   string
}

// ExcelConfig holds spreadsheet-related configuration
type ExcelConfig struct {
	XLSConverter string // binary used to convert legacy .xls -> .xlsx
	WorkDir      string // scratch area for conversion output
}

// PDFConfig holds PDF sub-pipeline configuration
type PDFConfig struct {
	TextLayerMinWords int // word count on the first two pages that marks a text-native PDF
}

// IngestConfig holds drop-folder watcher configuration
type IngestConfig struct {
	Debounce time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		Excel: ExcelConfig{
			XLSConverter: getEnv("XLS_CONVERTER", "libreoffice"),
			WorkDir:      getEnv("IMPORT_WORK_DIR", os.TempDir()),
		},
		PDF: PDFConfig{
			TextLayerMinWords: getEnvAsInt("PDF_TEXT_MIN_WORDS", 30),
		},
		Ingest: IngestConfig{
			Debounce: getEnvAsDuration("INGEST_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

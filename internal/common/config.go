package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	OCR        OCRConfig
	Heuristics HeuristicsConfig
	Store      StoreConfig
}

// OCRConfig holds the external tool settings for the text-layer and OCR
// collaborators.
type OCRConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string // --tessdata-dir override; empty uses the system default
	DPI           int    // rasterization DPI for scanned PDFs, default 200
	MaxPages      int    // OCR page cap, default 20; 0 = no limit
	Timeout       time.Duration
}

// HeuristicsConfig lifts the extraction core's tuned constants into
// configuration. The defaults reproduce the source system's behavior; none
// of them is known to be optimal.
type HeuristicsConfig struct {
	// Redaction detector.
	RedactionMinChars        int     // below this, too short to judge (100)
	RedactionMarkerCount     int     // marker matches needed (2)
	RedactionMaxTokens       int     // marker path only fires under this many tokens (200)
	RedactionPlaceholderFrac float64 // fraction of 000-111 tokens that forces redacted (0.5)

	// Quality assessor.
	QualityMinChars      int     // below this, low quality (50)
	QualityShortLineFrac float64 // fraction of <10-char lines (0.8)
	QualitySuspectFrac   float64 // fraction of suspicious tokens (0.3)

	// Interpretation engine.
	BiomarkerThreshold float64 // percent cutoff for a positive call (75.0)
}

// StoreConfig holds the extract-job store settings.
type StoreConfig struct {
	Path string // sqlite file; empty disables job tracking
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_DIR", ""),
			DPI:           getEnvAsInt("OCR_DPI", 200),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 20),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 5*time.Minute),
		},
		Heuristics: HeuristicsConfig{
			RedactionMinChars:        getEnvAsInt("REDACTION_MIN_CHARS", 100),
			RedactionMarkerCount:     getEnvAsInt("REDACTION_MARKER_COUNT", 2),
			RedactionMaxTokens:       getEnvAsInt("REDACTION_MAX_TOKENS", 200),
			RedactionPlaceholderFrac: getEnvAsFloat("REDACTION_PLACEHOLDER_FRAC", 0.5),
			QualityMinChars:          getEnvAsInt("QUALITY_MIN_CHARS", 50),
			QualityShortLineFrac:     getEnvAsFloat("QUALITY_SHORT_LINE_FRAC", 0.8),
			QualitySuspectFrac:       getEnvAsFloat("QUALITY_SUSPECT_FRAC", 0.3),
			BiomarkerThreshold:       getEnvAsFloat("BIOMARKER_THRESHOLD", 75.0),
		},
		Store: StoreConfig{
			Path: getEnv("JOB_STORE_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing.
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

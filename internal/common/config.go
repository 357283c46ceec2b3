package common

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Folders  FoldersConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
	Log      LogConfig
}

// FoldersConfig names the directories the pipeline moves files through.
type FoldersConfig struct {
	Inbox      string // new packages arrive here
	OCRWork    string // transient merged + recognized PDFs
	DoneJSON   string // final report JSON
	DoneTXT    string // final report plaintext mirror
	Quarantine string // packages past the retry ceiling
	History    string // archived recognized PDFs
	Logs       string // processing log
}

// OCRConfig holds settings for the external recognition binaries.
type OCRConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Languages string // tesseract language spec, default "spa+eng"
	DPI       int    // rasterization DPI, default 300
}

// PipelineConfig holds the state-machine knobs.
type PipelineConfig struct {
	MaxErrors int           // retry ceiling before quarantine
	OrphanTmp time.Duration // age past which stray .tmp files are deleted
	SkipOCR   bool          // reuse existing recognized PDFs
}

// LogConfig selects the processing-log backend.
type LogConfig struct {
	Backend  string // "csv" | "sqlite"
	FileName string // log file name inside Folders.Logs
}

// LoadConfig loads configuration from environment variables.
// baseDir roots the folder tree; empty means the current directory.
func LoadConfig(baseDir string) *Config {
	if baseDir == "" {
		baseDir = "."
	}
	sub := func(name string) string { return filepath.Join(baseDir, name) }
	return &Config{
		Folders: FoldersConfig{
			Inbox:      getEnv("QV_INBOX_DIR", sub("inbox")),
			OCRWork:    getEnv("QV_OCR_DIR", sub("ocr-work")),
			DoneJSON:   getEnv("QV_DONE_JSON_DIR", sub("done-json")),
			DoneTXT:    getEnv("QV_DONE_TXT_DIR", sub("done-txt")),
			Quarantine: getEnv("QV_QUARANTINE_DIR", sub("quarantine")),
			History:    getEnv("QV_HISTORY_DIR", sub("history")),
			Logs:       getEnv("QV_LOGS_DIR", sub("logs")),
		},
		OCR: OCRConfig{
			Pdftoppm:  getEnv("QV_PDFTOPPM", "pdftoppm"),
			Pdftotext: getEnv("QV_PDFTOTEXT", "pdftotext"),
			Tesseract: getEnv("QV_TESSERACT", "tesseract"),
			Languages: getEnv("QV_OCR_LANGS", "spa+eng"),
			DPI:       getEnvAsInt("QV_OCR_DPI", 300),
		},
		Pipeline: PipelineConfig{
			MaxErrors: getEnvAsInt("QV_MAX_ERRORS", 3),
			OrphanTmp: getEnvAsDuration("QV_ORPHAN_TMP_AGE", time.Hour),
		},
		Log: LogConfig{
			Backend:  getEnv("QV_LOG_BACKEND", "csv"),
			FileName: getEnv("QV_LOG_FILE", "processing_log.csv"),
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

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Pipeline.MaxErrors < 1 {
		return NewAppError("CONFIG_ERROR", "QV_MAX_ERRORS must be at least 1", ErrInvalidInput)
	}
	if c.OCR.DPI < 72 {
		return NewAppError("CONFIG_ERROR", "QV_OCR_DPI must be at least 72", ErrInvalidInput)
	}
	switch c.Log.Backend {
	case "csv", "sqlite":
	default:
		return NewAppError("CONFIG_ERROR", "QV_LOG_BACKEND must be csv or sqlite", ErrInvalidInput)
	}
	return nil
}

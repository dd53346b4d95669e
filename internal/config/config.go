package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the reporting service
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GA4     GA4Config     `yaml:"ga4"`
	Bedrock BedrockConfig `yaml:"bedrock"`
	SES     SESConfig     `yaml:"ses"`
	Storage StorageConfig `yaml:"storage"`
	Report  ReportConfig  `yaml:"report"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GA4Config holds settings for the GA4 HTTP bridge
type GA4Config struct {
	BaseURL        string `yaml:"base_url"`
	PropertyID     string `yaml:"property_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BedrockConfig holds AWS Bedrock settings for narrative generation
type BedrockConfig struct {
	ModelID   string `yaml:"model_id"`
	Region    string `yaml:"region"`
	MaxTokens int    `yaml:"max_tokens"`
}

// SESConfig holds AWS SES delivery settings
type SESConfig struct {
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// StorageConfig holds S3 snapshot storage settings
type StorageConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// ReportConfig holds the reporting deployment constants: who receives
// the report, how they are greeted, and which tracked event counts as
// a conversion.
type ReportConfig struct {
	Recipients      []string          `yaml:"recipients"`
	RecipientNames  map[string]string `yaml:"recipient_names"`
	Language        string            `yaml:"language"`
	SubjectPrefix   string            `yaml:"subject_prefix"`
	ConversionEvent string            `yaml:"conversion_event"`
	SiteName        string            `yaml:"site_name"`
	LogoBase64      string            `yaml:"logo_base64"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.GA4.BaseURL == "" {
		cfg.GA4.BaseURL = "http://localhost:8080"
	}
	if cfg.GA4.TimeoutSeconds == 0 {
		cfg.GA4.TimeoutSeconds = 30
	}
	if cfg.Bedrock.ModelID == "" {
		cfg.Bedrock.ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if cfg.Bedrock.Region == "" {
		cfg.Bedrock.Region = "eu-west-1"
	}
	if cfg.Bedrock.MaxTokens == 0 {
		cfg.Bedrock.MaxTokens = 2000
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "eu-west-1"
	}
	if cfg.SES.FromEmail == "" {
		cfg.SES.FromEmail = "noreply@avisia.fr"
	}
	if cfg.SES.FromName == "" {
		cfg.SES.FromName = "La Practice Digitale"
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = "analytics_reports"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = cfg.SES.Region
	}
	if cfg.Report.Language == "" {
		cfg.Report.Language = "fr"
	}
	if cfg.Report.SubjectPrefix == "" {
		cfg.Report.SubjectPrefix = "Monthly Analytics Report"
	}
	if cfg.Report.ConversionEvent == "" {
		cfg.Report.ConversionEvent = "contact-request-form"
	}
	if cfg.Report.SiteName == "" {
		cfg.Report.SiteName = "Avisia.fr"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env
// vars, so secrets can live in .env locally and in real env vars in
// the deployment environment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if baseURL := os.Getenv("GA4_API_URL"); baseURL != "" {
		cfg.GA4.BaseURL = baseURL
	}
	if propertyID := os.Getenv("GA4_PROPERTY_ID"); propertyID != "" {
		cfg.GA4.PropertyID = propertyID
	}
	if modelID := os.Getenv("BEDROCK_MODEL_ID"); modelID != "" {
		cfg.Bedrock.ModelID = modelID
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Bedrock.Region = region
		cfg.SES.Region = region
		cfg.Storage.Region = region
	}
	if accessKey := os.Getenv("SES_ACCESS_KEY"); accessKey != "" {
		cfg.SES.AccessKey = accessKey
	}
	if secretKey := os.Getenv("SES_SECRET_KEY"); secretKey != "" {
		cfg.SES.SecretKey = secretKey
	}
	if sender := os.Getenv("SENDER_EMAIL"); sender != "" {
		cfg.SES.FromEmail = sender
	}
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if recipients := os.Getenv("REPORT_RECIPIENTS"); recipients != "" {
		cfg.Report.Recipients = splitAndTrim(recipients)
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DB_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Merge environment-specific config on top of the base file.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	// Try multiple paths (for running from different directories)
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Mail.AWS.FromEmail == "" {
		if val := os.Getenv("MAIL_FROM_EMAIL"); val != "" {
			cfg.Mail.AWS.FromEmail = val
		}
	}
	if cfg.Alerts.Email.To == "" {
		if val := os.Getenv("ALERTS_EMAIL_TO"); val != "" {
			cfg.Alerts.Email.To = val
		}
	}
	if cfg.APIs.CompanySearch.APIKey == "" {
		if val := os.Getenv("COMPANY_SEARCH_API_KEY"); val != "" {
			cfg.APIs.CompanySearch.APIKey = val
		}
	}
	if cfg.APIs.CompanySearch.EngineID == "" {
		if val := os.Getenv("COMPANY_SEARCH_ENGINE_ID"); val != "" {
			cfg.APIs.CompanySearch.EngineID = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "leadflow-workers"
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.LeadsIndex == "" {
		cfg.Database.Elasticsearch.LeadsIndex = "leads"
	}

	// Pipeline defaults mirror the operator console expectations:
	// qualified at 70+, hot lead alerting at 90+.
	if cfg.Outreach.QualifiedThreshold == 0 {
		cfg.Outreach.QualifiedThreshold = 70
	}
	if cfg.Outreach.HotLeadThreshold == 0 {
		cfg.Outreach.HotLeadThreshold = 90
	}

	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "ses"
	}
	if cfg.Mail.DailySendLimit == 0 {
		cfg.Mail.DailySendLimit = 50
	}

	if cfg.Knowledge.PackPath == "" {
		cfg.Knowledge.PackPath = "configs/knowledge_pack.json"
	}
	if cfg.Knowledge.PlaybookPath == "" {
		cfg.Knowledge.PlaybookPath = "configs/response_playbook.json"
	}

	if cfg.APIs.CompanySearch.Timeout == 0 {
		cfg.APIs.CompanySearch.Timeout = 10000
	}
	if cfg.APIs.CompanySearch.CacheTTL == 0 {
		cfg.APIs.CompanySearch.CacheTTL = 86400
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	if cfg.Mail.Provider != "ses" && cfg.Mail.Provider != "smtp" {
		return fmt.Errorf("mail.provider must be \"ses\" or \"smtp\", got %q", cfg.Mail.Provider)
	}
	if cfg.Mail.DailySendLimit < 0 {
		return fmt.Errorf("mail.daily_send_limit must not be negative")
	}
	if cfg.Outreach.QualifiedThreshold > cfg.Outreach.HotLeadThreshold {
		return fmt.Errorf("outreach.qualified_threshold must not exceed outreach.hot_lead_threshold")
	}
	return nil
}

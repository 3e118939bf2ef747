package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-stopwatch/internal/jira"

	"github.com/charmbracelet/huh"
	"github.com/zalando/go-keyring"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultJQL         = `assignee = currentUser() AND resolution = Unresolved ORDER BY updated DESC`

	keyringService  = "go-stopwatch"
	geminiKeyringID = "gemini-api-key"
)

type Config struct {
	JiraURL             string `json:"jira_url"`
	JiraUsername        string `json:"jira_username"`
	AllowUntrustedCerts bool   `json:"allow_untrusted_certs"`
	DefaultJQL          string `json:"default_jql"`
	EstimateAdjustment  string `json:"estimate_adjustment"`
	GeminiModel         string `json:"gemini_model"`

	// Kept in the OS keychain, never written to config.json.
	JiraAPIToken string `json:"-"`
	GeminiAPIKey string `json:"-"`

	// KeychainErr is set when the keychain could not be read. The secrets are
	// then empty and the session asks for the Jira token instead.
	KeychainErr error `json:"-"`
}

func GeminiModelOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Gemini 2.5 Flash", "gemini-2.5-flash"),
		huh.NewOption("Gemini 2.5 Flash Lite", "gemini-2.5-flash-lite"),
		huh.NewOption("Gemini 3 Flash", "gemini-3-flash-preview"),
	}
}

func EstimateOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Adjust automatically", "auto"),
		huh.NewOption("Leave estimate unchanged", "leave"),
		huh.NewOption("Set estimate to...", "new"),
		huh.NewOption("Reduce estimate by...", "manual"),
	}
}

func configDir() string {
	if dir := os.Getenv("STOPWATCH_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".stopwatch")
}

func configPath() string {
	return filepath.Join(configDir(), "config.json")
}

func Exists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}

func LoadFromFile() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JiraAPIToken, err = loadSecret(cfg.JiraUsername); err != nil {
		cfg.KeychainErr = fmt.Errorf("read jira token from keychain: %w", err)
		return &cfg, nil
	}
	if cfg.GeminiAPIKey, err = loadSecret(geminiKeyringID); err != nil {
		cfg.KeychainErr = fmt.Errorf("read gemini key from keychain: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.JiraURL = strings.TrimRight(c.JiraURL, "/")
	if c.DefaultJQL == "" {
		c.DefaultJQL = DefaultJQL
	}
	if c.EstimateAdjustment == "" {
		c.EstimateAdjustment = "auto"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = DefaultGeminiModel
	}
}

func (c *Config) Validate() error {
	if err := validateURL(c.JiraURL); err != nil {
		return fmt.Errorf("jira_url: %w", err)
	}
	if strings.TrimSpace(c.JiraUsername) == "" {
		return errors.New("jira_username: must not be empty")
	}
	if _, err := jira.ParseEstimateMethod(c.EstimateAdjustment); err != nil {
		return fmt.Errorf("estimate_adjustment: %w", err)
	}
	return nil
}

// Estimate returns the configured worklog estimate policy. value is used for "new" and "manual".
func (c *Config) Estimate(value string) jira.EstimateAdjustment {
	method, err := jira.ParseEstimateMethod(c.EstimateAdjustment)
	if err != nil {
		method = jira.EstimateAuto
	}
	return jira.EstimateAdjustment{Method: method, Value: value}
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(configDir(), 0700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath(), data, 0600); err != nil {
		return err
	}

	if err := storeSecret(cfg.JiraUsername, cfg.JiraAPIToken); err != nil {
		return fmt.Errorf("store jira token in keychain: %w", err)
	}
	if err := storeSecret(geminiKeyringID, cfg.GeminiAPIKey); err != nil {
		return fmt.Errorf("store gemini key in keychain: %w", err)
	}
	return nil
}

// SaveToken replaces the keychain entry for username, e.g. after re-authentication.
func SaveToken(username, token string) error {
	return storeSecret(username, token)
}

func loadSecret(account string) (string, error) {
	secret, err := keyring.Get(keyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return secret, err
}

func storeSecret(account, secret string) error {
	if secret == "" {
		err := keyring.Delete(keyringService, account)
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	return keyring.Set(keyringService, account, secret)
}

func validateURL(s string) error {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

func RunSetup() (*Config, error) {
	var existing Config
	if cfg, err := LoadFromFile(); err == nil {
		existing = *cfg
	}
	existing.applyDefaults()

	cfg := existing

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira URL").
				Placeholder("https://your-org.atlassian.net").
				Value(&cfg.JiraURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Jira Username").
				Description("Email for Jira Cloud, login name for Data Center").
				Value(&cfg.JiraUsername).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Jira API Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.JiraAPIToken),
			huh.NewConfirm().
				Title("Allow untrusted TLS certificates?").
				Value(&cfg.AllowUntrustedCerts),
		).Title("Jira Connection"),

		huh.NewGroup(
			huh.NewText().
				Title("Default issue search (JQL)").
				Value(&cfg.DefaultJQL),
			huh.NewSelect[string]().
				Title("Remaining estimate when logging work").
				Options(EstimateOptions()...).
				Value(&cfg.EstimateAdjustment),
		).Title("Worklogs"),

		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API Key (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.GeminiAPIKey),
			huh.NewSelect[string]().
				Title("Gemini Model").
				Options(GeminiModelOptions()...).
				Value(&cfg.GeminiModel),
		).Title("AI Drafting"),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := Save(&cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\nConfig saved to %s\n", configPath())
	return &cfg, nil
}

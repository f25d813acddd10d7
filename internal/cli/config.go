package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"   mapstructure:"listen_addr"`
	DataDir    string `yaml:"data_dir"      mapstructure:"data_dir"`
	UsersFile  string `yaml:"users_file"    mapstructure:"users_file"`

	AuthzMode string `yaml:"authz_mode"    mapstructure:"authz_mode"` // fga|mock

	FGAAPIURL       string `yaml:"fga_api_url"       mapstructure:"fga_api_url"`
	FGAStoreID      string `yaml:"fga_store_id"      mapstructure:"fga_store_id"`
	FGAModelID      string `yaml:"fga_model_id"      mapstructure:"fga_model_id"`
	FGAAPIToken     string `yaml:"fga_api_token"     mapstructure:"fga_api_token"`
	FGATokenIssuer  string `yaml:"fga_token_issuer"  mapstructure:"fga_token_issuer"`
	FGAAudience     string `yaml:"fga_audience"      mapstructure:"fga_audience"`
	FGAClientID     string `yaml:"fga_client_id"     mapstructure:"fga_client_id"`
	FGAClientSecret string `yaml:"fga_client_secret" mapstructure:"fga_client_secret"`
}

func ensureDir(p string) error { return os.MkdirAll(p, 0o755) }

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".filehub"), nil
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("listen_addr", ":8090")
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("users_file", "")
	v.SetDefault("authz_mode", "mock")
	v.SetDefault("fga_api_url", "http://localhost:8080")
	v.SetDefault("fga_store_id", "")
	v.SetDefault("fga_model_id", "")
	v.SetDefault("fga_api_token", "")
	v.SetDefault("fga_token_issuer", "")
	v.SetDefault("fga_audience", "")
	v.SetDefault("fga_client_id", "")
	v.SetDefault("fga_client_secret", "")

	// Env overrides: FILEHUB_LISTEN_ADDR, FILEHUB_FGA_STORE_ID, etc.
	v.SetEnvPrefix("FILEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read file if it exists, otherwise return defaults without error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func saveConfig(path string, c *Config) error {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("listen_addr", c.ListenAddr)
	v.Set("data_dir", c.DataDir)
	v.Set("users_file", c.UsersFile)
	v.Set("authz_mode", c.AuthzMode)
	v.Set("fga_api_url", c.FGAAPIURL)
	v.Set("fga_store_id", c.FGAStoreID)
	v.Set("fga_model_id", c.FGAModelID)

	// Credentials stay out of the config file unless explicitly set;
	// they are usually injected via FILEHUB_/FGA_ env at deploy time.
	if c.FGAAPIToken != "" {
		v.Set("fga_api_token", c.FGAAPIToken)
	}
	if c.FGAClientID != "" {
		v.Set("fga_token_issuer", c.FGATokenIssuer)
		v.Set("fga_audience", c.FGAAudience)
		v.Set("fga_client_id", c.FGAClientID)
		v.Set("fga_client_secret", c.FGAClientSecret)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return err
	}

	// Restrict perms to owner
	_ = os.Chmod(path, 0o600)
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filehub-data"
	}
	return filepath.Join(home, ".filehub", "data")
}

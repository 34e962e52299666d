package checkout

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a configuration for the payment API application
type Config struct {
	HTTPAddr string        `yaml:"http_addr"`
	Gateway  GatewayConfig `yaml:"gateway"`
	// MetricsEnabled mounts the Prometheus handler on /metrics.
	MetricsEnabled bool `yaml:"metrics_enabled"`
}

// GatewayConfig holds the 2Checkout seller credentials. They are handed to the
// gateway client once, when the app starts.
type GatewayConfig struct {
	SellerID   string `yaml:"seller_id"`
	PrivateKey string `yaml:"private_key"`
	Sandbox    bool   `yaml:"sandbox"`
	// BaseURL overrides the sandbox/live endpoint, e.g. for a local stub.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: "localhost:4567",
		Gateway: GatewayConfig{
			SellerID:   "sandbox-seller-id",
			PrivateKey: "sandbox-private-key",
			Sandbox:    true,
			Timeout:    30 * time.Second,
		},
		MetricsEnabled: true,
	}
}

// LoadConfig builds a Config from defaults, an optional YAML file and
// environment overrides, in that order.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Gateway.SellerID = getenv("TWOCHECKOUT_SELLER_ID", cfg.Gateway.SellerID)
	cfg.Gateway.PrivateKey = getenv("TWOCHECKOUT_PRIVATE_KEY", cfg.Gateway.PrivateKey)
	cfg.Gateway.BaseURL = getenv("TWOCHECKOUT_BASE_URL", cfg.Gateway.BaseURL)

	var err error
	if cfg.Gateway.Sandbox, err = getenvBool("TWOCHECKOUT_SANDBOX", cfg.Gateway.Sandbox); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = getenvBool("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return nil, err
	}
	if v := getenv("GATEWAY_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GATEWAY_TIMEOUT: %w", err)
		}
		cfg.Gateway.Timeout = d
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is required")
	}
	if c.Gateway.SellerID == "" {
		return fmt.Errorf("gateway seller id is required")
	}
	if c.Gateway.PrivateKey == "" {
		return fmt.Errorf("gateway private key is required")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}

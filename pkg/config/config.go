package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"MacroCast/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"production" validate:"required"`
	Logging     struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"logging"`
	FRED struct {
		APIKey           string        `yaml:"api_key" validate:"required"`
		BaseURL          string        `yaml:"base_url" default:"https://api.stlouisfed.org/fred" validate:"required,url"`
		Series           []string      `yaml:"series" default:"[\"PCEPI\",\"UNRATE\",\"EXPINF1YR\",\"MICH\",\"INDPRO\"]" validate:"required,len=5,unique,dive,oneof=PCEPI UNRATE EXPINF1YR MICH INDPRO"`
		ObservationStart string        `yaml:"observation_start" default:"1985-01" validate:"required"`
		ObservationEnd   string        `yaml:"observation_end"`
		Timeout          time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"fred"`
	Sample struct {
		TrainEnd string `yaml:"train_end" default:"2019-12" validate:"required"`
	} `yaml:"sample"`
	Output struct {
		ReportPath string `yaml:"report_path" default:"report.json"`
	} `yaml:"output"`
}

var validate = validator.New()

// Load reads a YAML configuration file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := os.Getenv("FRED_SERIES"); v != "" {
		c.FRED.Series = strings.Split(v, ",")
	}
	if v := os.Getenv("TRAIN_END"); v != "" {
		c.Sample.TrainEnd = v
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// Validate checks struct tags plus the month fields validator cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed rule %q", fe.Namespace(), fe.Tag())
		}
		return err
	}

	start, err := util.ParseMonth(c.FRED.ObservationStart)
	if err != nil {
		return fmt.Errorf("fred.observation_start: %w", err)
	}
	cutoff, err := util.ParseMonth(c.Sample.TrainEnd)
	if err != nil {
		return fmt.Errorf("sample.train_end: %w", err)
	}
	if !start.Before(cutoff) {
		return fmt.Errorf("sample.train_end %s must be after fred.observation_start %s", cutoff, start)
	}
	if c.FRED.ObservationEnd != "" {
		end, err := util.ParseMonth(c.FRED.ObservationEnd)
		if err != nil {
			return fmt.Errorf("fred.observation_end: %w", err)
		}
		if !cutoff.Before(end) {
			return fmt.Errorf("fred.observation_end %s must be after sample.train_end %s", end, cutoff)
		}
	}
	return nil
}

// StartMonth returns the parsed observation start. Call after Validate.
func (c *Config) StartMonth() util.Month {
	m, _ := util.ParseMonth(c.FRED.ObservationStart)
	return m
}

// EndMonth returns the parsed observation end and whether one was set.
func (c *Config) EndMonth() (util.Month, bool) {
	if c.FRED.ObservationEnd == "" {
		return 0, false
	}
	m, _ := util.ParseMonth(c.FRED.ObservationEnd)
	return m, true
}

// Cutoff returns the parsed train/test cutoff month. Call after Validate.
func (c *Config) Cutoff() util.Month {
	m, _ := util.ParseMonth(c.Sample.TrainEnd)
	return m
}

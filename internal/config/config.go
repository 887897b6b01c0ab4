// Package config loads ggdlinker settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/goldenagents/ggdlinker/internal/graph"
	"github.com/goldenagents/ggdlinker/internal/identity"
	"github.com/goldenagents/ggdlinker/internal/names"
)

// Config holds the settings of a conversion run.
type Config struct {
	// BaseIRI is the namespace of books and minted identifiers.
	BaseIRI string `yaml:"base_iri" env:"GGD_BASE_IRI" env-default:"http://data.bibliotheken.nl/id/dataset/ggd/"`

	// PrimaryAuthorityPatterns are regular expressions for authority URIs
	// that become identifiers outright. Empty means the built-in KB and VIAF
	// patterns.
	PrimaryAuthorityPatterns []string `yaml:"primary_authority_patterns" env:"GGD_PRIMARY_PATTERNS" env-separator:";"`

	// ExcludedRoles are person roles that are never resolved.
	ExcludedRoles []string `yaml:"excluded_roles" env:"GGD_EXCLUDED_ROLES" env-separator:";"`

	PrinterRole string `yaml:"printer_role" env:"GGD_PRINTER_ROLE" env-default:"Drukker/uitgever"`

	// Reproducible makes every minted identifier hash-backed.
	Reproducible bool `yaml:"reproducible" env:"GGD_REPRODUCIBLE" env-default:"false"`

	LinksPath     string `yaml:"links" env:"GGD_LINKS"`
	CrossRefsPath string `yaml:"crossrefs" env:"GGD_CROSSREFS"`
	HintsPath     string `yaml:"hints" env:"GGD_HINTS"`
	RulesPath     string `yaml:"name_rules" env:"GGD_NAME_RULES"`

	Format string `yaml:"format" env:"GGD_FORMAT" env-default:"turtle"`
}

// Load reads path, if given, and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	if len(cfg.ExcludedRoles) == 0 {
		cfg.ExcludedRoles = identity.DefaultExcludedRoles
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks patterns and the output format.
func (c *Config) Validate() error {
	if _, err := identity.CompilePatterns(c.PrimaryAuthorityPatterns); err != nil {
		return fmt.Errorf("invalid primary authority pattern: %w", err)
	}
	if _, err := graph.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.BaseIRI == "" {
		return errors.New("base IRI is empty")
	}
	return nil
}

// OutputFormat returns the configured graph format.
func (c *Config) OutputFormat() graph.Format {
	f, err := graph.ParseFormat(c.Format)
	if err != nil {
		return graph.Turtle
	}
	return f
}

// Parser returns the name parser for the configured rules file.
func (c *Config) Parser() (*names.Parser, error) {
	if c.RulesPath == "" {
		return names.NewParser(names.DefaultRules()), nil
	}
	rules, err := names.LoadRules(c.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load name rules: %w", err)
	}
	return names.NewParser(rules), nil
}

// ResolverOptions translates the config into resolver options.
func (c *Config) ResolverOptions() ([]identity.Option, error) {
	parser, err := c.Parser()
	if err != nil {
		return nil, err
	}

	opts := []identity.Option{
		identity.WithBaseIRI(c.BaseIRI),
		identity.WithExcludedRoles(c.ExcludedRoles),
		identity.WithParser(parser),
		identity.WithContentHashOnly(c.Reproducible),
	}

	if len(c.PrimaryAuthorityPatterns) > 0 {
		patterns, err := identity.CompilePatterns(c.PrimaryAuthorityPatterns)
		if err != nil {
			return nil, err
		}
		opts = append(opts, identity.WithPrimaryPatterns(patterns))
	}
	return opts, nil
}

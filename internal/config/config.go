// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for tabelaprice.
type Configuration struct {
	Loans   []Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds the HTTP API configuration options
type ServerConfig struct {
	Address      string `yaml:"address,omitempty"`
	CacheAddress string `yaml:"cacheAddress,omitempty"` // optional Redis address
	DatabasePath string `yaml:"databasePath,omitempty"` // optional SQLite history path
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration checks the loaded configuration for problems that do
// not prevent running and returns them as warning strings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Loans) == 0 {
		warnings = append(warnings, "no loans configured; nothing to compute")
	}

	for i := range conf.Loans {
		loan := &conf.Loans[i]
		if loan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("loan %d has no name", i+1))
		}
		if loan.TermMonths == 0 {
			warnings = append(warnings, fmt.Sprintf("loan %s has no term; defaulting to %d months",
				loan.Name, constants.DefaultTermMonths))
			loan.TermMonths = constants.DefaultTermMonths
		}
		if loan.InterestRate > 30 {
			warnings = append(warnings, fmt.Sprintf("loan %s has a monthly rate of %.2f%%; check the unit",
				loan.Name, loan.InterestRate))
		}
	}

	return warnings
}

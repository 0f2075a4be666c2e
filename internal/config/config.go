package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const FileName = "validator.json"

type Config struct {
	Directory       string `mapstructure:"directory" validate:"required"`
	InstancePattern string `mapstructure:"instancePattern" validate:"required,contains=%"`
	SolutionPattern string `mapstructure:"solutionPattern" validate:"required,contains=%"`
	First           int    `mapstructure:"first" validate:"min=1"`
	Last            int    `mapstructure:"last" validate:"gtefield=First"`
	Strict          bool   `mapstructure:"strict"`
}

func Default() Config {
	return Config{
		Directory:       ".",
		InstancePattern: "instance%02d.txt",
		SolutionPattern: "solution%02d.txt",
		First:           1,
		Last:            99,
	}
}

// InstanceFile returns the displayed name and the path of the i-th instance file
func (config Config) InstanceFile(i int) (name, path string) {
	name = fmt.Sprintf(config.InstancePattern, i)
	return name, filepath.Join(config.Directory, name)
}

// SolutionFile returns the displayed name and the path of the i-th solution file
func (config Config) SolutionFile(i int) (name, path string) {
	name = fmt.Sprintf(config.SolutionPattern, i)
	return name, filepath.Join(config.Directory, name)
}

func (config Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(config)
}

// Load overlays the JSON file onto the defaults. A missing file is not an error, found reports whether it existed.
func Load(file string) (config Config, found bool, err error) {
	config = Default()

	bytes, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return config, false, nil
	} else if err != nil {
		return Config{}, false, fmt.Errorf("cannot read config file: %w", err)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, true, fmt.Errorf("cannot parse config file: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, true, err
	}
	if err := decoder.Decode(configJson); err != nil {
		return Config{}, true, fmt.Errorf("cannot decode config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, true, fmt.Errorf("invalid config file: %w", err)
	}
	return config, true, nil
}

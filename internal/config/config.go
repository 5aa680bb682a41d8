package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game   `yaml:"game"`
	Shell    Shell  `yaml:"shell"`
}

type Game struct {
	// Markers holds both symbols in play order, e.g. "XO".
	Markers       string `yaml:"markers" env:"GAME_MARKERS" env-default:"XO"`
	ComputerFirst bool   `yaml:"computer-first" env:"GAME_COMPUTER_FIRST"`
}

type Shell struct {
	Prompt      string `yaml:"prompt" env-default:"tictactoe> "`
	HistoryFile string `yaml:"history-file" env-default:"/tmp/tictactoe.history"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// HumanMarker returns the marker of the human player for the configured turn order.
func (that *Game) HumanMarker() string {
	runes := []rune(that.Markers)
	if len(runes) != 2 {
		return that.Markers
	}

	if that.ComputerFirst {
		return string(runes[1])
	}
	return string(runes[0])
}

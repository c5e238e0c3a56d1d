// Package config holds the root command line of deviser. Every field can also be
// set from a JSON, YAML or TOML configuration file.
package config

import "github.com/sbmlteam/deviser/internal/cmd"

type Log struct {
	Level        string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,warning,error" env:"DEVISER_LOG_LEVEL"`
	File         string `help:"Write logs to this file instead of the console" env:"DEVISER_LOG_FILE"`
	ArtifactFile string `help:"Append one line per generated file to this file" env:"DEVISER_LOG_ARTIFACT_FILE"`
}

type CLI struct {
	ConfigFile string `name:"config" help:"Configuration file (JSON, YAML or TOML by extension)" env:"DEVISER_CONFIG" type:"path"`
	Log        Log    `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate package sources from a schema"`
	Validate cmd.Validate      `cmd:"" help:"Validate package documents against a schema"`
	Inspect  cmd.Inspect       `cmd:"" help:"Print the resolved classes and error codes of a schema"`
	Config   cmd.ConfigCommand `cmd:"" help:"Manage configuration files"`
	Version  cmd.Version       `cmd:"" help:"Print the deviser version"`
}

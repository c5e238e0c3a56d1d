package main

import (
	"os"
	"strings"

	"github.com/sbmlteam/deviser/internal/config"
	"github.com/sbmlteam/deviser/internal/configpaths"
	"github.com/sbmlteam/deviser/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("deviser"),
		kong.Description("Generate and validate SBML package implementations from a package schema"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	artifacts, closer, err := log.OpenArtifactLog(cli.Log.ArtifactFile)
	if err != nil {
		logger.Error("failed to open artifact log file", "file", cli.Log.ArtifactFile, "error", err)
		artifacts = log.NewArtifact(nil)
	} else {
		closeFiles = append(closeFiles, closer)
	}

	ctx.Bind(logger)
	ctx.BindTo(artifacts, (*log.ArtifactLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("DEVISER_CONFIG"); v != "" {
		return v
	}
	return ""
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/sbmlteam/deviser/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,validate,inspect"`
	Format  string `help:"Output format" enum:"json,yaml,yml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to <command>.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

var configurable = map[string]func() any{
	"generate": func() any { return &Generate{} },
	"validate": func() any { return &Validate{} },
	"inspect":  func() any { return &Inspect{} },
}

// Run writes every flag of the command with its default value.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	newCmd, ok := configurable[c.Command]
	if !ok {
		return errors.New("unknown command; expected 'generate', 'validate' or 'inspect'")
	}
	root, err := flagDefaults(newCmd())
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("encode %s template: %w", format, err)
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// flagDefaults asks kong for the flags of cmd and maps each to its default, keyed
// the way the configuration resolvers look flags up: dashes become underscores and
// dotted prefixes become nested tables. Positional arguments are left out.
func flagDefaults(cmd any) (map[string]any, error) {
	parser, err := kong.New(cmd)
	if err != nil {
		return nil, fmt.Errorf("build command model: %w", err)
	}
	out := map[string]any{}
	for _, f := range parser.Model.Flags {
		if f.Name == "help" {
			continue
		}
		v, err := defaultValue(f.Target.Type(), f.Default)
		if err != nil {
			return nil, fmt.Errorf("flag --%s: %w", f.Name, err)
		}
		setPath(out, strings.Split(strings.ReplaceAll(f.Name, "-", "_"), "."), v)
	}
	return out, nil
}

func setPath(m map[string]any, path []string, v any) {
	for _, p := range path[:len(path)-1] {
		sub, ok := m[p].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[p] = sub
		}
		m = sub
	}
	m[path[len(path)-1]] = v
}

func defaultValue(t reflect.Type, def string) (any, error) {
	if t == reflect.TypeOf(time.Duration(0)) {
		if def == "" {
			return "0s", nil
		}
		return def, nil
	}
	switch t.Kind() {
	case reflect.String:
		return def, nil
	case reflect.Bool:
		if def == "" {
			return false, nil
		}
		return strconv.ParseBool(def)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if def == "" {
			return 0, nil
		}
		return strconv.Atoi(def)
	case reflect.Float32, reflect.Float64:
		if def == "" {
			return 0.0, nil
		}
		return strconv.ParseFloat(def, 64)
	case reflect.Slice:
		return []any{}, nil
	}
	return nil, fmt.Errorf("no template value for %s", t)
}

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava12/quickscan/grammar"
)

const envPrefix = "QSCAN"

// Output formats:
const (
	TextOutput = "text"
	JsonOutput = "json"
	YamlOutput = "yaml"
	TomlOutput = "toml"
)

// Settings are collected from qscan.yaml, QSCAN_* environment variables, and command line flags,
// flags take precedence.
type Settings struct {
	Output    string `mapstructure:"output"`
	Compare   string `mapstructure:"compare"`
	Space     string `mapstructure:"space"`
	Words     string `mapstructure:"words"`
	Verbosity int    `mapstructure:"verbosity"`
}

// Policy overrides grammar policy names with non-empty settings.
func (s *Settings) Policy(p grammar.Policy) grammar.Policy {
	if s.Compare != "" {
		p.Compare = s.Compare
	}
	if s.Space != "" {
		p.Space = s.Space
	}
	if s.Words != "" {
		p.Words = s.Words
	}
	return p
}

func AddSettingsArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to qscan.yaml configuration file.")
	cmd.PersistentFlags().StringP("output", "o", TextOutput, "Output format: text, json, yaml, or toml.")
	cmd.PersistentFlags().String("compare", "", "Literal comparison policy: exact, ignore-ascii-case, ignore-case, normalized, or ignore-case-normalized.")
	cmd.PersistentFlags().String("space", "", "Whitespace policy: ignore, exact, fuzzy, or ignore-non-line.")
	cmd.PersistentFlags().String("words", "", "Word slicing policy: wordish or non-space.")
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity.")
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("qscan")
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("output", TextOutput)
	for _, key := range []string{"compare", "space", "words"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("verbosity", 0)
	return v
}

func SettingsFromCmd(cmd *cobra.Command) (*Settings, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v := newViper(configFile)

	e := v.ReadInConfig()
	if e != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(e, &notFound) {
			return nil, errors.Wrapf(e, "cannot read config")
		}
	}

	flags := cmd.Flags()
	for _, name := range []string{"output", "compare", "space", "words"} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v.Set(name, f.Value.String())
		}
	}
	if f := flags.Lookup("verbose"); f != nil && f.Changed {
		count, _ := flags.GetCount("verbose")
		v.Set("verbosity", count)
	}

	res := &Settings{}
	if e = v.Unmarshal(res); e != nil {
		return nil, errors.Wrapf(e, "invalid configuration")
	}

	switch res.Output {
	case TextOutput, JsonOutput, YamlOutput, TomlOutput:
	default:
		return nil, errors.Errorf("unknown output format %q", res.Output)
	}
	return res, nil
}

func ConfigureLogger(s *Settings) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	switch {
	case s.Verbosity <= 0:
		logrus.SetLevel(logrus.WarnLevel)
	case s.Verbosity == 1:
		logrus.SetLevel(logrus.InfoLevel)
	case s.Verbosity == 2:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.TraceLevel)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/langdef"
)

// DecodeGrammar converts file content to grammar description, format is selected by name extension.
// Files with unknown extensions are treated as pattern language sources.
func DecodeGrammar(name string, src []byte) (*grammar.Grammar, error) {
	var (
		g grammar.Grammar
		e error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		e = dec.Decode(&g)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		e = dec.Decode(&g)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		e = dec.Decode(&g)
	default:
		return langdef.ParseBytes(name, src)
	}

	if e != nil {
		return nil, errors.Wrapf(e, "cannot decode %s", name)
	}
	if g.Name == "" {
		g.Name = name
	}
	return &g, nil
}

// LoadGrammar reads and decodes a pattern file.
func LoadGrammar(name string) (*grammar.Grammar, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return nil, errors.Wrapf(e, "cannot read pattern file")
	}

	g, e := DecodeGrammar(name, src)
	if e == nil {
		logrus.WithFields(logrus.Fields{
			"file":  name,
			"rules": len(g.Rules),
		}).Info("pattern loaded")
	}
	return g, e
}

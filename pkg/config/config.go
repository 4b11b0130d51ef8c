// Copyright 2026 the kolett authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the runner settings file: delivery root, report
// template location, worker count, ignore patterns, and callback blocks.
// These are process-level inputs; the engine receives them as plain
// parameters and never reads them ambiently.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/kolett/kolett/pkg/callback"
)

// DefaultRoot is used when no settings file configures a delivery root.
const DefaultRoot = "/tmp/kolett_deliveries"

// 🔌 Parser is the interface for settings parsers
type Parser interface {
	// 📝 Parse parses the settings from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is the list of available parsers
var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🗄️ StorageConfig locates the delivery root.
type StorageConfig struct {
	Root string `json:"root" yaml:"root" hcl:"root,optional"`
}

// 📝 ReportConfig selects the externally supplied report template.
type ReportConfig struct {
	TemplatePath string `json:"template_path" yaml:"template_path" hcl:"template_path,optional"`
}

// 🚚 DeliveryConfig tunes how items are processed.
type DeliveryConfig struct {
	// Workers bounds parallel transfers; 0 or 1 means sequential.
	Workers int `json:"workers" yaml:"workers" hcl:"workers,optional"`

	// IgnorePatterns drops manifest items whose source path matches any
	// of these doublestar globs.
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns" hcl:"ignore_patterns,optional"`
}

// 📚 Config represents the complete runner settings
type Config struct {
	Storage   *StorageConfig    `json:"storage,omitempty" yaml:"storage,omitempty" hcl:"storage,block"`
	Report    *ReportConfig     `json:"report,omitempty" yaml:"report,omitempty" hcl:"report,block"`
	Delivery  *DeliveryConfig   `json:"delivery,omitempty" yaml:"delivery,omitempty" hcl:"delivery,block"`
	Callbacks []callback.Config `json:"callbacks,omitempty" yaml:"callbacks,omitempty" hcl:"callback,block"`
}

// 🏭 Default returns the settings used when no settings file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// normalize fills in absent blocks and defaults.
func (cfg *Config) normalize() {
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.Root == "" {
		cfg.Storage.Root = DefaultRoot
	}
	if cfg.Report == nil {
		cfg.Report = &ReportConfig{}
	}
	if cfg.Delivery == nil {
		cfg.Delivery = &DeliveryConfig{}
	}
	if cfg.Delivery.Workers < 1 {
		cfg.Delivery.Workers = 1
	}
}

// 🎯 Load loads the settings from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading settings")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading settings file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing settings: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML settings
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL settings
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "settings.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

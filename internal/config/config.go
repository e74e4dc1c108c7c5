// Package config loads the editor configuration: zoom bounds and the
// node type registry that supplies per-type sizes, ports, payload
// defaults, and the single-inbound rule.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

// SizeSpec is a width/height pair in world units.
type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// TypeSpec configures one node type.
type TypeSpec struct {
	DefaultSize   SizeSpec `yaml:"default_size"`
	MinSize       SizeSpec `yaml:"min_size"`
	OutPorts      []string `yaml:"out_ports"`
	SingleInbound bool     `yaml:"single_inbound"`
	// Defaults seeds the payload of newly created nodes. The engine
	// never looks inside; collaborators decode it with PayloadDefaults.
	Defaults map[string]any `yaml:"defaults"`
}

// CanvasSpec configures the viewport.
type CanvasSpec struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
	ZoomStep float64 `yaml:"zoom_step"`
}

// Config is the full editor configuration.
type Config struct {
	Canvas    CanvasSpec          `yaml:"canvas"`
	NodeTypes map[string]TypeSpec `yaml:"node_types"`
}

// Default returns the built-in configuration: the standard flow-editor
// node palette and the 0.2–1.0 zoom range.
func Default() *Config {
	return &Config{
		Canvas: CanvasSpec{MinScale: 0.2, MaxScale: 1.0, ZoomStep: 0.001},
		NodeTypes: map[string]TypeSpec{
			"prompt": {
				DefaultSize: SizeSpec{W: 220, H: 140},
				MinSize:     SizeSpec{W: 140, H: 80},
				Defaults:    map[string]any{"text": ""},
			},
			"serp": {
				DefaultSize: SizeSpec{W: 260, H: 180},
				MinSize:     SizeSpec{W: 160, H: 100},
				Defaults:    map[string]any{"query": "", "results": 10},
			},
			"llm": {
				DefaultSize:   SizeSpec{W: 260, H: 200},
				MinSize:       SizeSpec{W: 160, H: 120},
				SingleInbound: true,
				Defaults:      map[string]any{"model": "default", "temperature": 0.7},
			},
			"scorer": {
				DefaultSize: SizeSpec{W: 240, H: 160},
				MinSize:     SizeSpec{W: 150, H: 90},
				OutPorts:    []string{"pass", "fail"},
				Defaults:    map[string]any{"threshold": 0.5},
			},
			"output": {
				DefaultSize:   SizeSpec{W: 220, H: 120},
				MinSize:       SizeSpec{W: 140, H: 70},
				SingleInbound: true,
			},
			"note": {
				DefaultSize: SizeSpec{W: 180, H: 100},
				MinSize:     SizeSpec{W: 100, H: 50},
				Defaults:    map[string]any{"text": ""},
			},
		},
	}
}

// Load reads a YAML config file layered over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Canvas.MinScale <= 0 {
		return fmt.Errorf("canvas.min_scale must be positive, got %v", c.Canvas.MinScale)
	}
	if c.Canvas.MaxScale < c.Canvas.MinScale {
		return fmt.Errorf("canvas.max_scale %v below min_scale %v", c.Canvas.MaxScale, c.Canvas.MinScale)
	}
	for name, spec := range c.NodeTypes {
		if spec.MinSize.W < 0 || spec.MinSize.H < 0 {
			return fmt.Errorf("node type %q has negative min size", name)
		}
	}
	return nil
}

// Rules converts the node type registry into the engine's rule set.
func (c *Config) Rules() graph.Rules {
	rules := make(graph.Rules, len(c.NodeTypes))
	for name, spec := range c.NodeTypes {
		rules[name] = graph.TypeSpec{
			DefaultSize:   geom.Size{W: spec.DefaultSize.W, H: spec.DefaultSize.H},
			MinSize:       geom.Size{W: spec.MinSize.W, H: spec.MinSize.H},
			OutPorts:      spec.OutPorts,
			SingleInbound: spec.SingleInbound,
		}
	}
	return rules
}

// PayloadDefaults decodes the configured payload defaults for a type
// into a collaborator-owned struct.
func (c *Config) PayloadDefaults(typ string, out any) error {
	spec, ok := c.NodeTypes[typ]
	if !ok {
		return fmt.Errorf("unknown node type %q", typ)
	}
	if err := mapstructure.Decode(spec.Defaults, out); err != nil {
		return fmt.Errorf("decode defaults for %q: %w", typ, err)
	}
	return nil
}

// Payload returns a fresh copy of the raw payload defaults for a type.
func (c *Config) Payload(typ string) map[string]any {
	spec, ok := c.NodeTypes[typ]
	if !ok || spec.Defaults == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(spec.Defaults))
	for k, v := range spec.Defaults {
		out[k] = v
	}
	return out
}

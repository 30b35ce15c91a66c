// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package adminmenu

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

// Config is the static menu configuration loaded once at process start.
type Config struct {
	Table    Table
	Order    []string
	Fallback string
}

// fileFormat mirrors menu.yaml. The order of groups in the file is the
// order of groups in the sidebar.
type fileFormat struct {
	Fallback string `yaml:"fallback"`
	Groups   []struct {
		Name     string `yaml:"name"`
		Entities []struct {
			Type  string `yaml:"type"`
			Label string `yaml:"label"`
			Order int    `yaml:"order"`
		} `yaml:"entities"`
	} `yaml:"groups"`
}

// Default returns the built-in menu configuration.
func Default() (*Config, error) {
	return Parse(defaultMenu)
}

// Load reads a menu configuration from path, or the built-in one when path
// is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin menu %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML menu configuration. Only undecodable YAML is an
// error; duplicate or incomplete entries are logged and skipped so a typo
// never takes the admin down.
func Parse(raw []byte) (*Config, error) {
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse admin menu: %w", err)
	}

	cfg := &Config{
		Table:    make(Table),
		Fallback: strings.TrimSpace(f.Fallback),
	}
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultFallback
	}

	seenGroups := make(map[string]bool)
	for _, g := range f.Groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			slog.Warn("admin menu group without name skipped")
			continue
		}
		if !seenGroups[name] {
			seenGroups[name] = true
			cfg.Order = append(cfg.Order, name)
		}

		for _, e := range g.Entities {
			typ := strings.TrimSpace(e.Type)
			if typ == "" {
				slog.Warn("admin menu entry without type skipped", "group", name)
				continue
			}
			if prev, dup := cfg.Table[typ]; dup {
				slog.Warn("admin menu entry duplicated, keeping first",
					"type", typ, "kept", prev.Group, "ignored", name)
				continue
			}
			cfg.Table[typ] = Assignment{Group: name, Label: e.Label, Order: e.Order}
		}
	}

	if !seenGroups[cfg.Fallback] {
		cfg.Order = append(cfg.Order, cfg.Fallback)
	}

	return cfg, nil
}

// Project applies the configuration to an entity snapshot.
func (c *Config) Project(entities []Entity) []Group {
	return Project(entities, c.Table, c.Order, c.Fallback)
}

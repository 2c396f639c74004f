// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// LoadBuilder returns a Builder holding the defaults overlaid with whatever
// the environment, args and the optional JSON file set, in that order.
func LoadBuilder(args []string) (*Builder, error) {
	fc, err := newLoader().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	if err := fc.Apply(b); err != nil {
		return nil, fmt.Errorf("error applying configs: %w", err)
	}
	return b, nil
}

type loader struct {
	configs []*FileConfig
	err     error
}

func newLoader() *loader {
	return &loader{
		configs: make([]*FileConfig, 0, 3),
	}
}

// build merges the collected configs; a later config overrides the non-zero
// fields of an earlier one.
func (l *loader) build() (*FileConfig, error) {
	if l.err != nil {
		return nil, fmt.Errorf("error occured during loading config: %w", l.err)
	}

	config := new(FileConfig)
	for _, cfg := range l.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (l *loader) withEnv() *loader {
	envCfg := &FileConfig{}
	if err := parseEnv(envCfg); err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}

	l.configs = append(l.configs, envCfg)
	return l
}

func (l *loader) withFlags(args []string) *loader {
	flagCfg, err := parseFlags(args)
	if err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}

	l.configs = append(l.configs, flagCfg)
	return l
}

func (l *loader) withJSON() *loader {
	var jsonPath string
	for _, cfg := range l.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			l.err = errors.Join(l.err, err)
			return l
		}
		l.configs = append(l.configs, jsonCfg)
	}

	return l
}

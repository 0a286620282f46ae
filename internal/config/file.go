// Package config loads an optional YAML run file and merges it with
// command-line flags into a container.ContainerConfig.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DeveloperWK/container-runtime/internal/errkind"
	"github.com/DeveloperWK/container-runtime/internal/runtime/container"
)

// File is the on-disk shape of an optional run configuration. Every
// field is optional so a flag-only invocation needs no file at all.
type File struct {
	Rootfs    string   `yaml:"rootfs"`
	Hostname  string   `yaml:"hostname"`
	Command   string   `yaml:"command"`
	Args      []string `yaml:"args"`
	MemoryMB  *uint64  `yaml:"memory_mb"`
	CPUPct    *uint64  `yaml:"cpu_percent"`
	PidsLimit *int64   `yaml:"pids_limit"`
}

// LoadFile parses a YAML run file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidConfiguration, "read config file", err).Context(path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errkind.Wrap(errkind.InvalidConfiguration, "parse config file", err).Context(path)
	}
	return &f, nil
}

// Merge layers f's values under cfg: any field already set on cfg (by
// an explicit flag) wins, so flags always override the file.
func (f *File) Merge(cfg *container.ContainerConfig) {
	if cfg.RootfsPath == "" {
		cfg.RootfsPath = f.Rootfs
	}
	if cfg.Hostname == "" {
		cfg.Hostname = f.Hostname
	}
	if cfg.Command == "" {
		cfg.Command = f.Command
	}
	if len(cfg.Args) == 0 {
		cfg.Args = f.Args
	}
	if cfg.MemoryLimitMB == nil {
		cfg.MemoryLimitMB = f.MemoryMB
	}
	if cfg.CPUPercent == nil {
		cfg.CPUPercent = f.CPUPct
	}
	if cfg.PidsLimit == nil {
		cfg.PidsLimit = f.PidsLimit
	}
}

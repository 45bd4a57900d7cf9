package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds the server process configuration.
type Server struct {
	Port           string `yaml:"port"`
	DataDir        string `yaml:"data_dir"`    // per-index settings + flat-table gob files
	SnapshotDB     string `yaml:"snapshot_db"` // bbolt database holding named snapshots
	GinReleaseMode bool   `yaml:"gin_release_mode"`
}

// DefaultServer returns the default server configuration.
func DefaultServer() *Server {
	return &Server{
		Port:       "8080",
		DataDir:    "./ndx_data",
		SnapshotDB: "./ndx_data/snapshots.db",
	}
}

// LoadServer loads server configuration from a YAML file. A missing file is
// not an error; defaults are returned so the server can start unconfigured.
func LoadServer(path string) (*Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config loads a scenario description for the desimctl CLI. The
// core sim.Simulator API never takes a config value directly — it only ever
// takes a quit time — this package exists purely to turn a YAML file into
// that one integer plus whatever bookkeeping a particular scenario needs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jayvanderwall/desim/sim"
)

// Scenario is the top-level shape of a desimctl YAML config file.
type Scenario struct {
	// QuitTime is the simulation's quit_time, in ticks. 0 means run until
	// quiescent.
	QuitTime int64 `yaml:"quit_time"`

	// Monitor configures the optional HTTP monitor server.
	Monitor MonitorConfig `yaml:"monitor"`

	// Trace configures the optional SQLite trace recorder.
	Trace TraceConfig `yaml:"trace"`
}

// MonitorConfig controls the monitor HTTP server.
type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	OpenBrowser bool `yaml:"open_browser"`
}

// TraceConfig controls the SQLite trace recorder.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// QuitTimeAsSimulationTime converts QuitTime to a sim.SimulationTime.
func (s Scenario) QuitTimeAsSimulationTime() sim.SimulationTime {
	return sim.SimulationTime(s.QuitTime)
}

// Load reads and parses a Scenario from a YAML file at path.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return s, nil
}

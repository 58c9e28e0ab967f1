// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/pilotwave-simulator/model"
)

// LoadScenario reads a JSON scenario from r, applies defaults, validates it,
// and returns it ready to run.
//
// It deliberately fails only on decode / validation errors; unknown fields
// are ignored so scenario files are free to carry annotations we don't read.
func LoadScenario(r io.Reader) (*model.Scenario, error) {
	var sc model.Scenario
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}
	return finishScenario(sc)
}

// LoadScenarioYAML is LoadScenario for YAML input.
func LoadScenarioYAML(r io.Reader) (*model.Scenario, error) {
	var sc model.Scenario
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("LoadScenarioYAML: decode failed: %w", err)
	}
	return finishScenario(sc)
}

// LoadScenarioFile loads a scenario from path, choosing the decoder by file
// extension: .yaml/.yml use YAML, everything else JSON.
func LoadScenarioFile(path string) (*model.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadScenarioFile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadScenarioYAML(f)
	default:
		return LoadScenario(f)
	}
}

func finishScenario(sc model.Scenario) (*model.Scenario, error) {
	if sc.Name == "" {
		sc.Name = "unnamed"
	}
	if err := ValidateScenario(sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/lissom-motion/lissom/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	sampleFile *os.File
	settleFile *os.File

	// Track if headers have been written
	sampleHeaderWritten bool
	settleHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	samplePath := filepath.Join(dir, "samples.csv")
	f, err := os.Create(samplePath)
	if err != nil {
		return nil, fmt.Errorf("creating samples.csv: %w", err)
	}
	om.sampleFile = f

	settlePath := filepath.Join(dir, "settle.csv")
	f, err = os.Create(settlePath)
	if err != nil {
		om.sampleFile.Close()
		return nil, fmt.Errorf("creating settle.csv: %w", err)
	}
	om.settleFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSamples appends trajectory samples to samples.csv.
func (om *OutputManager) WriteSamples(samples []Sample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.sampleHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.sampleFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		om.sampleHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(samples, om.sampleFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}

// WriteSettleStats writes a settle statistics record to settle.csv.
func (om *OutputManager) WriteSettleStats(stats SettleStats) error {
	if om == nil {
		return nil
	}

	records := []SettleStats{stats}

	if !om.settleHeaderWritten {
		if err := gocsv.Marshal(records, om.settleFile); err != nil {
			return fmt.Errorf("writing settle stats: %w", err)
		}
		om.settleHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.settleFile); err != nil {
			return fmt.Errorf("writing settle stats: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.sampleFile != nil {
		if err := om.sampleFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.settleFile != nil {
		if err := om.settleFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

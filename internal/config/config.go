// YAML config loader with CUE validation integration
package config

import (
	"os"

	"cuelang.org/go/cue/cuecontext"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/delta-vision/frametrack/track"
)

// TrackerConfig is the on-disk shape of the tracker settings. Zero
// fields inherit the built-in defaults so partial files work.
type TrackerConfig struct {
	IoUThreshold     float64 `yaml:"iou_threshold"`
	MaxAgeFrames     float64 `yaml:"max_age_frames"`
	MaxHistory       int     `yaml:"max_history"`
	MotionWindow     int     `yaml:"motion_window"`
	MotionThreshold  float64 `yaml:"motion_threshold"`
	MotionMinSamples int     `yaml:"motion_min_samples"`
}

// Merge applies the file's non-zero fields on top of base.
func (tc TrackerConfig) Merge(base track.Config) track.Config {
	if tc.IoUThreshold != 0 {
		base.IoUThreshold = tc.IoUThreshold
	}
	if tc.MaxAgeFrames != 0 {
		base.MaxAge = tc.MaxAgeFrames
	}
	if tc.MaxHistory != 0 {
		base.MaxHistory = tc.MaxHistory
	}
	if tc.MotionWindow != 0 {
		base.MotionWindow = tc.MotionWindow
	}
	if tc.MotionThreshold != 0 {
		base.MotionThreshold = tc.MotionThreshold
	}
	if tc.MotionMinSamples != 0 {
		base.MotionMinSamples = tc.MotionMinSamples
	}
	return base
}

// Load reads a YAML config, validates it against a CUE schema and maps
// it onto track.Config with defaults filling the gaps.
func Load(configPath, cueSchemaPath string) (track.Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return track.Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return track.Config{}, errors.Wrap(err, "cannot read config")
	}
	var fileCfg TrackerConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return track.Config{}, errors.Wrap(err, "cannot unmarshal config")
	}

	cfg := fileCfg.Merge(track.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return track.Config{}, errors.Wrap(err, "invalid tracker settings")
	}
	return cfg, nil
}

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return errors.Wrap(err, "cannot read YAML config")
	}
	configVal := ctx.CompileBytes(yamlBytes)
	if configVal.Err() != nil {
		return errors.Wrap(configVal.Err(), "cannot compile config")
	}

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return errors.Wrap(err, "cannot read CUE schema")
	}
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return errors.Wrap(schemaVal.Err(), "cannot compile schema")
	}

	if err := schemaVal.Subsume(configVal); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}

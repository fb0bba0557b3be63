package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights holds the point values awarded per completed item.
type Weights struct {
	MainPrayer   int `yaml:"main_prayer" json:"main_prayer"`
	Congregation int `yaml:"congregation" json:"congregation"`
	OnTime       int `yaml:"on_time" json:"on_time"`
	Remembrance  int `yaml:"remembrance" json:"remembrance"`
	ExtraTask    int `yaml:"extra_task" json:"extra_task"`
}

// DefaultWeights returns the standard 4/3/3/2/5 weighting.
func DefaultWeights() Weights {
	return Weights{
		MainPrayer:   4,
		Congregation: 3,
		OnTime:       3,
		Remembrance:  2,
		ExtraTask:    5,
	}
}

// PrayerMax is the maximum attainable from a single prayer checkpoint's own
// items (main task plus the three checklist entries).
func (w Weights) PrayerMax() int {
	return w.MainPrayer + w.Congregation + w.OnTime + w.Remembrance
}

func (w Weights) Validate() error {
	if w.MainPrayer <= 0 || w.Congregation <= 0 || w.OnTime <= 0 ||
		w.Remembrance <= 0 || w.ExtraTask <= 0 {
		return errors.New("all point weights must be positive")
	}
	return nil
}

// LoadWeights reads a YAML weights file, falling back to defaults when the
// path is empty. Unset fields keep their default value.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("config: failed to read weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("config: failed to parse weights file: %w", err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("config: %w", err)
	}
	return w, nil
}

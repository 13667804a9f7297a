package stage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stage kinds supported by frontends
const (
	KindText  = "text"
	KindScale = "scale"
)

// Stage describes one screen of the experience
type Stage struct {
	ID               string `yaml:"id" json:"id"`
	Title            string `yaml:"title" json:"title"`
	Prompt           string `yaml:"prompt" json:"prompt"`
	Kind             string `yaml:"kind" json:"kind"`
	TimeLimitSeconds int    `yaml:"time_limit_seconds,omitempty" json:"timeLimitSeconds,omitempty"`
}

// Script is the ordered stage sequence loaded from YAML
type Script struct {
	Title  string  `yaml:"title" json:"title"`
	Stages []Stage `yaml:"stages" json:"stages"`
}

// LoadScript reads and validates a stage script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage script: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse stage script: %w", err)
	}

	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("invalid stage script %s: %w", path, err)
	}

	return &script, nil
}

func (s *Script) validate() error {
	if len(s.Stages) == 0 {
		return fmt.Errorf("script has no stages")
	}

	seen := make(map[string]bool, len(s.Stages))
	for i := range s.Stages {
		st := &s.Stages[i]
		if st.Prompt == "" {
			return fmt.Errorf("stage %d has an empty prompt", i)
		}
		if st.Kind == "" {
			st.Kind = KindText
		}
		if st.Kind != KindText && st.Kind != KindScale {
			return fmt.Errorf("stage %d has unknown kind %q", i, st.Kind)
		}
		if st.ID == "" {
			st.ID = fmt.Sprintf("stage-%d", i)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate stage id %q", st.ID)
		}
		seen[st.ID] = true
	}
	return nil
}

// Count returns the number of stages
func (s *Script) Count() int {
	return len(s.Stages)
}

// At returns the stage at index i, clamped into range
// Out-of-range navigation shows the nearest valid stage instead of failing
func (s *Script) At(i int) Stage {
	if len(s.Stages) == 0 {
		return Stage{Kind: KindText}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Stages) {
		i = len(s.Stages) - 1
	}
	return s.Stages[i]
}

// Default returns the built-in script used when no file is configured
func Default() *Script {
	return &Script{
		Title: "Afterglow Session",
		Stages: []Stage{
			{ID: "welcome", Title: "Welcome", Kind: KindText,
				Prompt: "Type a few words about how you are feeling right now."},
			{ID: "recall", Title: "Recall", Kind: KindText,
				Prompt: "Describe something memorable from the past week."},
			{ID: "focus", Title: "Focus", Kind: KindScale,
				Prompt: "How focused do you feel at this moment?"},
			{ID: "freeform", Title: "Freeform", Kind: KindText,
				Prompt: "Write anything at all. The scene reacts to your pace."},
		},
	}
}

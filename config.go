package transit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines the structure of a machine definition loaded from YAML.
type Config struct {
	Name         string             `json:"name"         yaml:"name"`
	InitialState string             `json:"initialState" yaml:"initialState"`
	States       []StateConfig      `json:"states"       yaml:"states"`
	Transitions  []TransitionConfig `json:"transitions"  yaml:"transitions"`
}

// StateConfig defines the configuration for a state.
type StateConfig struct {
	Name       string            `json:"name"       yaml:"name"`
	Final      bool              `json:"final"      yaml:"final"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// TransitionConfig defines the configuration for a transition. An empty
// Message denotes the unlabeled transition; Wildcard marks the edge as
// the any-message fallback and takes precedence over Message.
type TransitionConfig struct {
	From     string `json:"from"     yaml:"from"`
	To       string `json:"to"       yaml:"to"`
	Message  string `json:"message"  yaml:"message"`
	Wildcard bool   `json:"wildcard" yaml:"wildcard"`
}

// LoadConfig loads a machine definition from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes loads a machine definition from YAML bytes.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the structural consistency of the definition.
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrConfigNameRequired
	}

	if len(c.States) == 0 {
		return ErrConfigStateRequired
	}

	declared := make(map[string]bool, len(c.States))

	for _, state := range c.States {
		if state.Name == "" {
			return ErrConfigStateNameRequired
		}

		if declared[state.Name] {
			return fmt.Errorf("%w: %s", ErrConfigDuplicateState, state.Name)
		}

		declared[state.Name] = true
	}

	for _, transition := range c.Transitions {
		if transition.From == "" || transition.To == "" {
			return ErrConfigTransitionEndpoint
		}

		if !declared[transition.From] {
			return fmt.Errorf("%w: %s", ErrConfigUnknownState, transition.From)
		}

		if !declared[transition.To] {
			return fmt.Errorf("%w: %s", ErrConfigUnknownState, transition.To)
		}
	}

	if c.InitialState != "" && !declared[c.InitialState] {
		return fmt.Errorf("%w: %s", ErrConfigInitialStateNotFound, c.InitialState)
	}

	return nil
}

// message resolves the message of a transition entry.
func (tc TransitionConfig) message() *Message {
	switch {
	case tc.Wildcard:
		return Any()
	case tc.Message == "":
		return Empty()
	default:
		return NewMessage(tc.Message)
	}
}

// BuildIndex materializes the definition into a transition index.
// States are inserted in declaration order, so the first declared state
// becomes the index's first state. Index options apply before any
// transition is added, so a FailOnError policy covers the build itself.
func (c *Config) BuildIndex(opts ...IndexOption) (*TransitionIndex, error) {
	index := NewTransitionIndex(opts...)

	states := make(map[string]*State, len(c.States))

	for _, sc := range c.States {
		state := NewState(sc.Name)
		state.SetFinal(sc.Final)

		for name, value := range sc.Properties {
			state.WithProperty(name, value)
		}

		states[sc.Name] = state
		index.ensure(state)
	}

	for _, tc := range c.Transitions {
		err := index.Add(NewTransition(states[tc.From], tc.message(), states[tc.To]))
		if err != nil {
			return nil, err
		}
	}

	return index, nil
}

// BuildMachine materializes the definition into a state machine, setting
// the cursor to the configured initial state, or to the first declared
// state when none is configured.
func (c *Config) BuildMachine(opts ...IndexOption) (*StateMachine, error) {
	index, err := c.BuildIndex(opts...)
	if err != nil {
		return nil, err
	}

	machine := NewStateMachine(WithIndex(index))

	if c.InitialState != "" {
		err = machine.SetCurrent(c.InitialState)
	} else {
		err = machine.Init()
	}

	if err != nil {
		return nil, err
	}

	return machine, nil
}

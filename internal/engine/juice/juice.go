// Released under an MIT license. See LICENSE.

// Package juice defines the cost schedule used to meter evaluation.
//
// Every step of the evaluator consumes juice according to the schedule.
// A schedule can be loaded from a YAML file; fields that are absent keep
// their default values.
package juice

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schedule holds the cost of each kind of step and the execution limits.
type Schedule struct {
	Apply     int64 `yaml:"apply"`     // Calling a closure or collection.
	Build     int64 `yaml:"build"`     // Per element of a constructed collection.
	Cond      int64 `yaml:"cond"`      // Each test of a conditional.
	Constant  int64 `yaml:"constant"`  // A literal or quoted form.
	Def       int64 `yaml:"def"`       // A definition.
	Deploy    int64 `yaml:"deploy"`    // Creating an account.
	Do        int64 `yaml:"do"`        // Each form of a sequence.
	Fn        int64 `yaml:"fn"`        // Creating a closure.
	Let       int64 `yaml:"let"`       // Each local binding.
	Lookup    int64 `yaml:"lookup"`    // Resolving a symbol.
	Memory    int64 `yaml:"memory"`    // Per byte of a defined value's encoding.
	Primitive int64 `yaml:"primitive"` // Calling a primitive.

	Depth int   `yaml:"depth"` // Maximum nesting of closure calls.
	Limit int64 `yaml:"limit"` // Juice available to a transaction.
}

// Default returns the default schedule.
func Default() *Schedule {
	return &Schedule{
		Apply:     20,
		Build:     5,
		Cond:      5,
		Constant:  5,
		Def:       50,
		Deploy:    1000,
		Do:        5,
		Fn:        10,
		Let:       10,
		Lookup:    10,
		Memory:    1,
		Primitive: 20,

		Depth: 256,
		Limit: 1000000,
	}
}

// Load reads a schedule from the YAML file at path.
func Load(path string) (*Schedule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b)
}

// Parse reads a schedule from YAML text.
func Parse(b []byte) (*Schedule, error) {
	s := Default()

	err := yaml.Unmarshal(b, s)
	if err != nil {
		return nil, err
	}

	return s, s.check()
}

func (s *Schedule) check() error {
	for n, v := range map[string]int64{
		"apply":     s.Apply,
		"build":     s.Build,
		"cond":      s.Cond,
		"constant":  s.Constant,
		"def":       s.Def,
		"deploy":    s.Deploy,
		"do":        s.Do,
		"fn":        s.Fn,
		"let":       s.Let,
		"lookup":    s.Lookup,
		"memory":    s.Memory,
		"primitive": s.Primitive,
		"limit":     s.Limit,
	} {
		if v < 0 {
			return fmt.Errorf("juice: %s must not be negative", n)
		}
	}

	if s.Depth <= 0 {
		return fmt.Errorf("juice: depth must be positive")
	}

	return nil
}

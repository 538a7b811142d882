package config

import (
	"errors"
	"fmt"

	"github.com/kilianp07/distalg/core/convolution"
	"github.com/kilianp07/distalg/core/factory"
)

// Scenario combines its operands with Op. A single operand is only
// described.
type Scenario struct {
	Name     string           `json:"name"`
	Op       string           `json:"op"`
	Operands []factory.Config `json:"operands"`
	// Points are the abscissae at which PDF and CDF are reported.
	Points []float64 `json:"points"`
}

func (s *Scenario) SetDefaults() {
	if s.Op == "" {
		s.Op = string(convolution.OpSum)
	}
}

func (s Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if _, err := convolution.ParseOp(s.Op); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	if len(s.Operands) == 0 {
		return fmt.Errorf("%s: at least one operand is required", s.Name)
	}
	for i, o := range s.Operands {
		if o.Family == "" {
			return fmt.Errorf("%s: operand %d has no family", s.Name, i)
		}
	}
	return nil
}

package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyCorpus      = errors.New("empty corpus")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownNode      = errors.New("unknown node")
)

func checkGraph(g *Graph) error {
	if g == nil || len(g.nodes) == 0 {
		return ErrEmptyCorpus
	}
	return nil
}

// Damping factor has to be in the open interval (0, 1)
func checkDampingFactor(c float64) error {
	if !(c > 0 && c < 1) {
		return fmt.Errorf("%w: damping factor %v outside (0, 1)", ErrInvalidParameter, c)
	}
	return nil
}

func checkThreshold(threshold float64) error {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return fmt.Errorf("%w: threshold %v must be a positive number", ErrInvalidParameter, threshold)
	}
	return nil
}

func checkPositive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s %d must be positive", ErrInvalidParameter, name, value)
	}
	return nil
}

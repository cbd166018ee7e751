// Package script replays recorded editor events from a YAML file. A script
// drives a session the way a user would, so it doubles as a regression
// fixture for interaction sequences.
//
// Example:
//
//	name: link two devices
//	steps:
//	  - op: add
//	  - op: click
//	    device: Router0
//	  - op: click
//	    device: Device-2
//	  - op: set
//	    field: name
//	    value: core
//	  - op: submit
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Op names one replayable event
type Op string

const (
	OpAdd        Op = "add"
	OpClick      Op = "click"
	OpDrag       Op = "drag"
	OpBackground Op = "background"
	OpDeselect   Op = "deselect"
	OpSet        Op = "set"
	OpSubmit     Op = "submit"
)

// Step is one event. Device may be an ID or a device name.
type Step struct {
	Op     Op       `yaml:"op" validate:"required,oneof=add click drag background deselect set submit"`
	Device string   `yaml:"device,omitempty"`
	X      *float64 `yaml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty"`
	Field  string   `yaml:"field,omitempty"`
	Value  *string  `yaml:"value,omitempty"`
}

// Script is a named list of steps
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a script file
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and checks a script
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	for i := range s.Steps {
		s.Steps[i].Op = Op(strings.ToLower(strings.TrimSpace(string(s.Steps[i].Op))))
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %s", formatValidationError(err))
	}
	for i, step := range s.Steps {
		if err := step.check(); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return &s, nil
}

// check enforces the arguments each op needs
func (s Step) check() error {
	switch s.Op {
	case OpClick:
		if s.Device == "" {
			return errors.New("device is required")
		}
	case OpDrag:
		if s.Device == "" {
			return errors.New("device is required")
		}
		if s.X == nil || s.Y == nil {
			return errors.New("x and y are required")
		}
	case OpSet:
		if s.Field == "" {
			return errors.New("field is required")
		}
		if s.Value == nil {
			return errors.New("value is required")
		}
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Namespace()+": is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

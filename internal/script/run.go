package script

import (
	"fmt"

	"netcanvas/internal/editor"
	"netcanvas/internal/service"
)

// StepResult records what one step did
type StepResult struct {
	Index  int    `json:"index"`
	Op     Op     `json:"op"`
	Detail string `json:"detail"`
}

// Report is the outcome of a replay
type Report struct {
	Name      string               `json:"name,omitempty"`
	Steps     []StepResult         `json:"steps"`
	Devices   int                  `json:"devices"`
	Links     int                  `json:"links"`
	Selection editor.SelectionView `json:"selection"`
}

// Run replays every step against session and stops at the first failing one
func Run(s *Script, session *service.Session) (*Report, error) {
	report := &Report{Name: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}

	for i, step := range s.Steps {
		detail, err := apply(step, session)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		report.Steps = append(report.Steps, StepResult{Index: i + 1, Op: step.Op, Detail: detail})
	}

	topo := session.Topology()
	report.Devices = len(topo.Devices)
	report.Links = len(topo.Links)
	report.Selection = session.Selection()
	return report, nil
}

func apply(step Step, session *service.Session) (string, error) {
	switch step.Op {
	case OpAdd:
		d := session.AddDevice()
		return fmt.Sprintf("added %s (%s)", d.Name, d.ID), nil

	case OpClick:
		id, err := resolve(session, step.Device)
		if err != nil {
			return "", err
		}
		link, view, err := session.Click(id)
		if err != nil {
			return "", err
		}
		if link != nil {
			return fmt.Sprintf("linked %s to %s", link.SourceID, link.TargetID), nil
		}
		return fmt.Sprintf("selection %s", view.State), nil

	case OpDrag:
		id, err := resolve(session, step.Device)
		if err != nil {
			return "", err
		}
		d, err := session.Drag(id, *step.X, *step.Y)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("moved %s to (%g, %g)", d.Name, d.Position.X, d.Position.Y), nil

	case OpBackground:
		return fmt.Sprintf("selection %s", session.BackgroundClick().State), nil

	case OpDeselect:
		return fmt.Sprintf("selection %s", session.Deselect().State), nil

	case OpSet:
		view, err := session.SetField(step.Field, *step.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %q on %s", step.Field, *step.Value, view.DeviceID), nil

	case OpSubmit:
		view, err := session.Submit()
		if err != nil {
			return "", err
		}
		return "submitted " + view.DeviceID, nil
	}
	return "", fmt.Errorf("unknown op %q", step.Op)
}

// resolve accepts a device ID or, failing that, a device name. The first
// device with the name wins.
func resolve(session *service.Session, ref string) (string, error) {
	topo := session.Topology()
	if _, ok := topo.Device(ref); ok {
		return ref, nil
	}
	for _, d := range topo.Devices {
		if d.Name == ref {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("%q: %w", ref, editor.ErrUnknownDevice)
}

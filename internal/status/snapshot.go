// Package status carries read-only views of the editor state to the debug
// panel and the debug server.
package status

import "strconv"

// Shape is the world (x, z) ring of a polygon or clone
type Shape struct {
	ID   string       `json:"id"`
	Kind string       `json:"kind"`
	Ring [][2]float64 `json:"ring"`
}

// Snapshot is the observable state after an editor operation
type Snapshot struct {
	Objects     int     `json:"objects"`
	Vertices    int     `json:"vertices"`
	CloneExists bool    `json:"clone_exists"`
	Dragging    bool    `json:"dragging"`
	Shapes      []Shape `json:"shapes,omitempty"`
}

// Panel is the textual form shown in the debug panel
type Panel struct {
	Objects     string `json:"objects"`
	CloneExists string `json:"clone_exists"`
	Dragging    string `json:"dragging"`
}

// Panel formats the snapshot the way the debug panel displays it
func (s Snapshot) Panel() Panel {
	return Panel{
		Objects:     strconv.Itoa(s.Objects),
		CloneExists: yesNo(s.CloneExists),
		Dragging:    yesNo(s.Dragging),
	}
}

// Lines returns the labelled panel rows in display order
func (s Snapshot) Lines() []string {
	p := s.Panel()
	return []string{
		"Objects: " + p.Objects,
		"Clone exists: " + p.CloneExists,
		"Dragging: " + p.Dragging,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

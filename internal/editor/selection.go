package editor

// SelectionKind names the three interaction states
type SelectionKind string

const (
	KindIdle        SelectionKind = "idle"
	KindLinkPending SelectionKind = "link_pending"
	KindEditingOnly SelectionKind = "editing_only"
)

// Selection is the editor's interaction state. Exactly one of Idle,
// LinkPending or EditingOnly; no other implementations exist.
type Selection interface {
	Kind() SelectionKind
	isSelection()
}

// Idle means nothing is armed and nothing is being edited
type Idle struct{}

// LinkPending means Source is armed as a link origin. Source is also the
// device open in the property editor.
type LinkPending struct {
	Source string
}

// EditingOnly means Target is open in the property editor and no link is
// pending
type EditingOnly struct {
	Target string
}

func (Idle) Kind() SelectionKind        { return KindIdle }
func (LinkPending) Kind() SelectionKind { return KindLinkPending }
func (EditingOnly) Kind() SelectionKind { return KindEditingOnly }

func (Idle) isSelection()        {}
func (LinkPending) isSelection() {}
func (EditingOnly) isSelection() {}

// LinkSourceOf returns the armed device, if any
func LinkSourceOf(sel Selection) (string, bool) {
	if s, ok := sel.(LinkPending); ok {
		return s.Source, true
	}
	return "", false
}

// EditingTargetOf returns the device shown in the property editor, if any
func EditingTargetOf(sel Selection) (string, bool) {
	switch s := sel.(type) {
	case LinkPending:
		return s.Source, true
	case EditingOnly:
		return s.Target, true
	}
	return "", false
}

// LinkRequest asks the editor to connect two devices
type LinkRequest struct {
	SourceID string
	TargetID string
}

// Transition is the click state machine.
//
//	Idle            + click D       -> LinkPending{D}
//	LinkPending{S}  + click D != S  -> Idle, link S-D
//	LinkPending{S}  + click S       -> EditingOnly{S}
//	EditingOnly{E}  + click D       -> LinkPending{D}
//
// A returned LinkRequest never has equal endpoints.
func Transition(sel Selection, clicked string) (Selection, *LinkRequest) {
	if s, ok := sel.(LinkPending); ok {
		if s.Source == clicked {
			return EditingOnly{Target: clicked}, nil
		}
		return Idle{}, &LinkRequest{SourceID: s.Source, TargetID: clicked}
	}
	return LinkPending{Source: clicked}, nil
}

// SelectionView is the serializable description of a selection
type SelectionView struct {
	State         SelectionKind `json:"state"`
	LinkSource    string        `json:"link_source,omitempty"`
	EditingTarget string        `json:"editing_target,omitempty"`
}

// Describe converts a selection to its view
func Describe(sel Selection) SelectionView {
	if sel == nil {
		sel = Idle{}
	}
	view := SelectionView{State: sel.Kind()}
	view.LinkSource, _ = LinkSourceOf(sel)
	view.EditingTarget, _ = EditingTargetOf(sel)
	return view
}

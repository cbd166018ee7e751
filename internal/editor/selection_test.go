package editor

import (
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     Selection
		clicked  string
		want     Selection
		wantLink *LinkRequest
	}{
		{"idle arms clicked device", Idle{}, "a", LinkPending{Source: "a"}, nil},
		{"pending on other device links", LinkPending{Source: "a"}, "b", Idle{}, &LinkRequest{SourceID: "a", TargetID: "b"}},
		{"pending on same device cancels", LinkPending{Source: "a"}, "a", EditingOnly{Target: "a"}, nil},
		{"editing re-arms same device", EditingOnly{Target: "a"}, "a", LinkPending{Source: "a"}, nil},
		{"editing arms other device", EditingOnly{Target: "a"}, "b", LinkPending{Source: "b"}, nil},
		{"nil selection behaves as idle", nil, "a", LinkPending{Source: "a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, link := Transition(tt.from, tt.clicked)
			if got != tt.want {
				t.Errorf("Transition(%v, %q) state = %v, want %v", tt.from, tt.clicked, got, tt.want)
			}
			switch {
			case tt.wantLink == nil && link != nil:
				t.Errorf("expected no link, got %+v", link)
			case tt.wantLink != nil && (link == nil || *link != *tt.wantLink):
				t.Errorf("expected link %+v, got %+v", tt.wantLink, link)
			}
		})
	}
}

func TestSelectionAccessors(t *testing.T) {
	tests := []struct {
		sel       Selection
		source    string
		hasSource bool
		target    string
		hasTarget bool
		kind      SelectionKind
	}{
		{Idle{}, "", false, "", false, KindIdle},
		{LinkPending{Source: "s"}, "s", true, "s", true, KindLinkPending},
		{EditingOnly{Target: "e"}, "", false, "e", true, KindEditingOnly},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			source, ok := LinkSourceOf(tt.sel)
			if source != tt.source || ok != tt.hasSource {
				t.Errorf("LinkSourceOf = (%q, %v), want (%q, %v)", source, ok, tt.source, tt.hasSource)
			}
			target, ok := EditingTargetOf(tt.sel)
			if target != tt.target || ok != tt.hasTarget {
				t.Errorf("EditingTargetOf = (%q, %v), want (%q, %v)", target, ok, tt.target, tt.hasTarget)
			}
			if tt.sel.Kind() != tt.kind {
				t.Errorf("Kind = %s, want %s", tt.sel.Kind(), tt.kind)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Run("link pending shows both references", func(t *testing.T) {
		view := Describe(LinkPending{Source: "x"})
		if view.State != KindLinkPending || view.LinkSource != "x" || view.EditingTarget != "x" {
			t.Errorf("unexpected view %+v", view)
		}
	})

	t.Run("nil is idle", func(t *testing.T) {
		view := Describe(nil)
		if view.State != KindIdle || view.LinkSource != "" || view.EditingTarget != "" {
			t.Errorf("unexpected view %+v", view)
		}
	})
}

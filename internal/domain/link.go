package domain

import "errors"

// ErrSelfLink is returned when a link would connect a device to itself
var ErrSelfLink = errors.New("link source and target cannot be the same device")

// Link represents an undirected connection between two devices
type Link struct {
	ID       string `json:"id" yaml:"id"`
	SourceID string `json:"source_id" yaml:"source_id"`
	TargetID string `json:"target_id" yaml:"target_id"`
}

// NewLink creates a new link, rejecting self-links
func NewLink(id, sourceID, targetID string) (*Link, error) {
	if sourceID == targetID {
		return nil, ErrSelfLink
	}
	return &Link{
		ID:       id,
		SourceID: sourceID,
		TargetID: targetID,
	}, nil
}

// Connects reports whether the link joins a and b in either direction
func (l Link) Connects(a, b string) bool {
	return (l.SourceID == a && l.TargetID == b) || (l.SourceID == b && l.TargetID == a)
}

// LinkSegment is the drawable form of a link: the centers of both endpoints
type LinkSegment struct {
	LinkID string `json:"link_id"`
	From   Point  `json:"from"`
	To     Point  `json:"to"`
}

package entities

import "strings"

// SegmentKind tags a bullet with its pedagogical role
type SegmentKind string

const (
	SegmentPlain    SegmentKind = "plain"
	SegmentQuestion SegmentKind = "question"
	SegmentActivity SegmentKind = "activity"
)

// Segment is one tagged bullet point of a slide
type Segment struct {
	Text string      `json:"text"`
	Kind SegmentKind `json:"kind"`
}

// Emphasized reports whether the segment is rendered bold
func (s Segment) Emphasized() bool {
	return s.Kind == SegmentQuestion || s.Kind == SegmentActivity
}

// bulletRules is evaluated in order; the first rule with a matching marker wins.
var bulletRules = []struct {
	markers []string
	kind    SegmentKind
}{
	{markers: []string{"Knowledge Check:"}, kind: SegmentQuestion},
	{markers: []string{"Think-Pair-Share", "Activity:"}, kind: SegmentActivity},
	{markers: []string{"Exit Ticket:"}, kind: SegmentQuestion},
}

// ClassifyBullet returns the kind of a bullet by substring match
func ClassifyBullet(text string) SegmentKind {
	for _, rule := range bulletRules {
		for _, marker := range rule.markers {
			if strings.Contains(text, marker) {
				return rule.kind
			}
		}
	}
	return SegmentPlain
}

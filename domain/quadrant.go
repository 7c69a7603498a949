package domain

import "fmt"

// Quadrant is one of the four fixed Eisenhower categories.
type Quadrant string

const (
	QuadrantDoFirst  Quadrant = "doFirst"
	QuadrantSchedule Quadrant = "schedule"
	QuadrantDelegate Quadrant = "delegate"
	QuadrantDontDo   Quadrant = "dontDo"
)

// Quadrants lists the categories in display order.
var Quadrants = []Quadrant{QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantDontDo}

var quadrantTitles = map[Quadrant]string{
	QuadrantDoFirst:  "Do First (Urgent & Important)",
	QuadrantSchedule: "Schedule (Not Urgent, Important)",
	QuadrantDelegate: "Delegate (Urgent, Not Important)",
	QuadrantDontDo:   "Don't Do (Not Urgent, Not Important)",
}

func (q Quadrant) Valid() bool {
	_, ok := quadrantTitles[q]
	return ok
}

// Title returns the human readable heading of the quadrant.
func (q Quadrant) Title() string {
	if title, ok := quadrantTitles[q]; ok {
		return title
	}
	return string(q)
}

// ParseQuadrant accepts either the wire key or its 1-based display position.
func ParseQuadrant(value string) (Quadrant, error) {
	q := Quadrant(value)
	if q.Valid() {
		return q, nil
	}
	for i, candidate := range Quadrants {
		if value == fmt.Sprint(i+1) {
			return candidate, nil
		}
	}
	return "", ErrInvalidQuadrant
}

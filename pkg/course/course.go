package course

import "strings"

// Course is a single catalog record. Number is the key the catalog
// indexes on; Prerequisites keeps the order the source listed them in.
type Course struct {
	Number        string
	Title         string
	Prerequisites []string
}

// New returns a Course with its own copy of prereqs.
func New(number, title string, prereqs ...string) Course {
	c := Course{Number: number, Title: title}
	if len(prereqs) > 0 {
		c.Prerequisites = append([]string(nil), prereqs...)
	}
	return c
}

// IsZero reports whether c is the empty record, which is what a failed
// lookup hands back alongside false.
func (c Course) IsZero() bool {
	return c.Number == ""
}

// Clone returns a copy of c that shares no memory with it.
func (c Course) Clone() Course {
	out := c
	if c.Prerequisites != nil {
		out.Prerequisites = make([]string, len(c.Prerequisites))
		copy(out.Prerequisites, c.Prerequisites)
	}
	return out
}

// Summary formats c the way course listings print it: "number, title".
func (c Course) Summary() string {
	return c.Number + ", " + c.Title
}

// PrerequisiteList returns the prerequisites joined by single spaces.
func (c Course) PrerequisiteList() string {
	return strings.Join(c.Prerequisites, " ")
}

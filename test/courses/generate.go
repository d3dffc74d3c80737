package courses

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/optable/courseplanner/pkg/course"
)

// MaxPrerequisites is the most prerequisites a generated course lists
const MaxPrerequisites = 3

var (
	// Departments prefix every generated course number
	Departments = []string{"CS", "MATH", "PHYS", "ENG", "HIST", "BIO", "CHEM", "ECON"}

	subjects = []string{"Programming", "Data Structures", "Algorithms", "Systems", "Calculus", "Statistics", "Mechanics", "Writing", "Networks", "Databases"}
	levels   = []string{"Introduction to", "Intermediate", "Advanced", "Topics in", "Seminar in"}
)

// Catalog generates n courses with unique numbers. Prerequisites only
// ever point at courses generated earlier, so the catalog has no
// cycles. The same seed always yields the same catalog.
func Catalog(n int, seed int64) []course.Course {
	r := rand.New(rand.NewSource(seed))
	out := make([]course.Course, n)

	for i := range out {
		dept := Departments[i%len(Departments)]
		out[i] = course.Course{
			Number: fmt.Sprintf("%s%d", dept, 100+i/len(Departments)),
			Title:  levels[r.Intn(len(levels))] + " " + subjects[r.Intn(len(subjects))],
		}

		if i == 0 {
			continue
		}
		for k := r.Intn(MaxPrerequisites + 1); k > 0; k-- {
			out[i].Prerequisites = append(out[i].Prerequisites, out[r.Intn(i)].Number)
		}
	}

	return out
}

// Anagrams returns up to n distinct rearrangements of number, number
// itself excluded. They all have the same character sum.
func Anagrams(number string, n int) []string {
	seen := map[string]bool{number: true}
	var out []string

	b := []byte(number)
	var permute func(k int) bool
	// Heap's algorithm, stops as soon as n anagrams were found
	permute = func(k int) bool {
		if k == 1 {
			s := string(b)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
			return len(out) < n
		}
		if !permute(k - 1) {
			return false
		}
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				b[i], b[k-1] = b[k-1], b[i]
			} else {
				b[0], b[k-1] = b[k-1], b[0]
			}
			if !permute(k - 1) {
				return false
			}
		}
		return true
	}

	if len(b) > 0 && n > 0 {
		permute(len(b))
	}
	return out
}

// Line formats c the way catalog files store it, with a trailing \n
func Line(c course.Course) []byte {
	fields := append([]string{c.Number, c.Title}, c.Prerequisites...)
	return []byte(strings.Join(fields, ",") + "\n")
}

// Lines writes the catalog file line of every course to a channel
// and then closes it
func Lines(courses []course.Course) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for _, c := range courses {
			out <- Line(c)
		}
	}()
	return out
}

// Write writes courses to w in catalog file format
func Write(w io.Writer, courses []course.Course) error {
	for _, c := range courses {
		if _, err := w.Write(Line(c)); err != nil {
			return err
		}
	}
	return nil
}

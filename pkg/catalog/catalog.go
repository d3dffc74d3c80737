package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/optable/courseplanner/internal/util"
	"github.com/optable/courseplanner/pkg/course"
	"github.com/optable/courseplanner/pkg/log"
)

// Separator splits the fields of a catalog line
const Separator = ","

var ErrOpenCatalog = fmt.Errorf("cannot open catalog file")

// Inserter is anything courses can be loaded into
type Inserter interface {
	Insert(course.Course)
}

// ParseLine turns one catalog line, number,title[,prerequisite]*, into
// a Course. Missing fields are left empty and empty prerequisite fields
// are dropped. The boolean is false when the line has no course number.
func ParseLine(line string) (course.Course, bool) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), Separator)

	c := course.Course{Number: fields[0]}
	if len(fields) > 1 {
		c.Title = fields[1]
	}
	for _, p := range fields[min(2, len(fields)):] {
		if p != "" {
			c.Prerequisites = append(c.Prerequisites, p)
		}
	}

	return c, c.Number != ""
}

// Load reads catalog lines from r and inserts every course into dst,
// in file order, so a number listed twice keeps its last definition.
// It returns the number of courses inserted. Lines without a course
// number are skipped, only read errors are returned.
func Load(ctx context.Context, r io.Reader, dst Inserter) (int, error) {
	logger := log.GetLoggerFromContextWithName(ctx, "catalog")

	var n, lineno int
	err := util.Exhaust(r, func(line string) {
		lineno++
		c, ok := ParseLine(line)
		if !ok {
			logger.V(log.Debug).Info("skipping line without a course number", "line", lineno)
			return
		}
		if c.Title == "" {
			log.WithCourse(logger, c.Number).V(log.Debug).Info("course has no title", "line", lineno)
		}
		dst.Insert(c)
		n++
	})
	if err != nil {
		return n, fmt.Errorf("failed reading catalog at line %d: %w", lineno+1, err)
	}

	logger.V(log.Debug).Info("loaded catalog", "lines", lineno, "courses", n)
	return n, nil
}

// LoadFile opens the catalog at path and loads it into dst.
// A file that cannot be opened yields an error wrapping ErrOpenCatalog.
func LoadFile(ctx context.Context, path string, dst Inserter) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %v", ErrOpenCatalog, path, err)
	}
	defer f.Close()

	return Load(ctx, f, dst)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

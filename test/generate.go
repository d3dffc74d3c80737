package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/optable/courseplanner/pkg/course"
	"github.com/optable/courseplanner/test/courses"
)

// generates a catalog for stressing the chains of the course table:
// on top of the regular courses it adds anagrams of the first course
// number, which all land in the same bucket under the charsum hash.

const (
	usage = `%s cardinality anagrams (cardinality/10) output_file (%s) seed (1)

 anagrams are extra courses whose numbers rearrange the first course number

example:
 %s 500 40 collisions.txt
`
	defaultCardinality = 300
	defaultOutput      = "collisions.txt"
	defaultSeed        = 1
)

type config struct {
	cardinality int
	anagrams    int
	output      string
	seed        int64
}

func formatUsage() string {
	name := os.Args[0]
	return fmt.Sprintf(usage, name, defaultOutput, name)
}

// global conf
var conf config

func formatArgs() string {
	return fmt.Sprintf("generating %d courses and %d anagrams to %s with seed %d",
		conf.cardinality, conf.anagrams, conf.output, conf.seed)
}

func init() {
	// we have default values for everything
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			conf.cardinality = n
		} else {
			log.Fatal(err)
		}
	} else {
		conf.cardinality = defaultCardinality
	}
	// anagrams
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			conf.anagrams = n
		} else {
			log.Fatal(err)
		}
	} else {
		conf.anagrams = conf.cardinality / 10
	}
	// output
	if len(os.Args) > 3 {
		conf.output = os.Args[3]
	} else {
		conf.output = defaultOutput
	}
	// seed
	if len(os.Args) > 4 {
		if seed, err := strconv.ParseInt(os.Args[4], 10, 64); err == nil {
			conf.seed = seed
		} else {
			log.Fatal(err)
		}
	} else {
		conf.seed = defaultSeed
	}
}

func main() {
	println(formatUsage())
	if conf.cardinality < 1 {
		log.Fatalf("cardinality must be at least 1, got %d", conf.cardinality)
	}
	catalog := courses.Catalog(conf.cardinality, conf.seed)
	base := catalog[0]
	for _, number := range courses.Anagrams(base.Number, conf.anagrams) {
		catalog = append(catalog, course.New(number, "Anagram of "+base.Number, base.Number))
	}
	println(formatArgs())
	output(conf.output, catalog)
}

func output(filename string, catalog []course.Course) {
	if f, err := os.Create(filename); err == nil {
		defer f.Close()
		if err := courses.Write(f, catalog); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Fatal(err)
	}
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"

	"github.com/optable/courseplanner/internal/hash"
	"github.com/optable/courseplanner/pkg/hashtable"
)

// Config is the course planner configuration, read from a toml file:
//
//	[table]
//	size = 179
//	hash = "charsum"
//	bloom-filter = true
//	expected-courses = 512
//
//	[log]
//	verbosity = 1
//
//	[catalog]
//	file = "courses.txt"
type Config struct {
	Table   Table   `toml:"table"`
	Log     Log     `toml:"log"`
	Catalog Catalog `toml:"catalog"`
}

// Table configures the course hash table
type Table struct {
	// Size is the fixed bucket count
	Size uint64 `toml:"size"`
	// Hash is one of charsum, murmur3, metro, highway or blake3
	Hash string `toml:"hash"`
	// Salt is the hex encoded salt of seeded hashes. A random one is
	// drawn when it is left empty.
	Salt            string  `toml:"salt"`
	BloomFilter     bool    `toml:"bloom-filter"`
	ExpectedCourses uint    `toml:"expected-courses"`
	FalsePositive   float64 `toml:"false-positive"`
}

type Log struct {
	// Verbosity is 0 for info, 1 for debug and 2 for trace messages
	Verbosity int `toml:"verbosity"`
}

type Catalog struct {
	// File is loaded before the shell starts, when set
	File string `toml:"file"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Table: Table{
			Size:            hashtable.DefaultSize,
			Hash:            hash.CharSum.String(),
			ExpectedCourses: 512,
			FalsePositive:   hashtable.FalsePositive,
		},
	}
}

// Load reads the toml file at path over the defaults and validates
// the result. Unknown keys are reported as errors.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	var errs error
	for _, k := range md.Undecoded() {
		errs = multierror.Append(errs, fmt.Errorf("unknown configuration key %q", k.String()))
	}
	if err := c.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, errs)
	}

	return c, nil
}

// Validate checks every field and reports all the problems at once
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.Table.Size == 0 || c.Table.Size > math.MaxUint32 {
		errs = multierror.Append(errs, fmt.Errorf("table.size %d: %w", c.Table.Size, hashtable.ErrInvalidSize))
	}
	if _, _, err := c.Table.decodeSalt(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Table.FalsePositive < 0 || c.Table.FalsePositive >= 1 {
		errs = multierror.Append(errs, fmt.Errorf("table.false-positive %v is not in [0, 1)", c.Table.FalsePositive))
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 2 {
		errs = multierror.Append(errs, fmt.Errorf("log.verbosity %d is not one of 0, 1, 2", c.Log.Verbosity))
	}

	return errs.ErrorOrNil()
}

// salt decodes the configured salt, drawing a random one for seeded
// hashes without a salt. Unseeded hashes get nil.
func (t Table) salt() ([]byte, error) {
	kind, s, err := t.decodeSalt()
	if err != nil || !kind.Seeded() || s != nil {
		return s, err
	}

	s = make([]byte, hash.SaltLength)
	if _, err := rand.Read(s); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeSalt parses the hash name and the configured salt. The salt is
// nil for unseeded hashes and when none is configured.
func (t Table) decodeSalt() (hash.Kind, []byte, error) {
	kind, err := hash.ParseKind(t.Hash)
	if err != nil {
		return kind, nil, fmt.Errorf("table.hash: %w", err)
	}
	if !kind.Seeded() || t.Salt == "" {
		return kind, nil, nil
	}

	s, err := hex.DecodeString(t.Salt)
	if err != nil {
		return kind, nil, fmt.Errorf("table.salt: %w", err)
	}
	if len(s) != hash.SaltLength {
		return kind, nil, fmt.Errorf("table.salt: %w", hash.ErrSaltLengthMismatch)
	}
	return kind, s, nil
}

// Hasher builds the hasher the table section asks for
func (t Table) Hasher() (hash.Hasher, error) {
	kind, err := hash.ParseKind(t.Hash)
	if err != nil {
		return nil, err
	}
	salt, err := t.salt()
	if err != nil {
		return nil, err
	}

	return hash.New(kind, salt)
}

// NewTable builds the course table described by c
func (c Config) NewTable(logger logr.Logger) (*hashtable.Table, error) {
	h, err := c.Table.Hasher()
	if err != nil {
		return nil, err
	}

	opts := []hashtable.Option{hashtable.WithLogger(logger)}
	if c.Table.BloomFilter {
		opts = append(opts, hashtable.WithBloomFilter(c.Table.ExpectedCourses, c.Table.FalsePositive))
	}

	return hashtable.New(c.Table.Size, h, opts...)
}

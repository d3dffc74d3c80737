package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/optable/courseplanner/internal/hash"
	"github.com/optable/courseplanner/pkg/course"
	"github.com/optable/courseplanner/pkg/hashtable"
)

const salt = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, uint64(hashtable.DefaultSize), c.Table.Size)
	require.Equal(t, "charsum", c.Table.Hash)
	require.False(t, c.Table.BloomFilter)

	tbl, err := c.NewTable(logr.Discard())
	require.NoError(t, err)
	require.Equal(t, uint64(hashtable.DefaultSize), tbl.Len())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[table]
size = 31
hash = "highway"
salt = "`+salt+`"
bloom-filter = true
expected-courses = 64

[log]
verbosity = 2

[catalog]
file = "courses.txt"
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(31), c.Table.Size)
	require.Equal(t, "highway", c.Table.Hash)
	require.True(t, c.Table.BloomFilter)
	require.Equal(t, uint(64), c.Table.ExpectedCourses)
	// untouched keys keep their defaults
	require.Equal(t, hashtable.FalsePositive, c.Table.FalsePositive)
	require.Equal(t, 2, c.Log.Verbosity)
	require.Equal(t, "courses.txt", c.Catalog.File)

	tbl, err := c.NewTable(logr.Discard())
	require.NoError(t, err)
	tbl.Insert(course.New("CS101", "Intro"))
	got, ok := tbl.Search("CS101")
	require.True(t, ok)
	require.Equal(t, "Intro", got.Title)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
[table]
size = 0
hash = "md5"
false-positive = 2.0
colour = "blue"

[log]
verbosity = 5
`)

	_, err := Load(path)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	for _, want := range []string{"colour", "table.size", "table.hash", "table.false-positive", "log.verbosity"} {
		require.True(t, strings.Contains(err.Error(), want), "missing %s in %v", want, err)
	}
	require.Len(t, merr.Errors, 5)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestHasher(t *testing.T) {
	hasherTests := []struct {
		table Table
		err   error
	}{
		{Table{Hash: "charsum"}, nil},
		{Table{Hash: "murmur3", Salt: salt}, nil},
		{Table{Hash: "metro"}, nil},
		{Table{Hash: "blake3", Salt: "abcd"}, hash.ErrSaltLengthMismatch},
		{Table{Hash: "crc"}, hash.ErrUnknownHash},
	}

	for _, tt := range hasherTests {
		h, err := tt.table.Hasher()
		if tt.err != nil {
			require.True(t, errors.Is(err, tt.err), "%s: got %v", tt.table.Hash, err)
			continue
		}
		require.NoError(t, err, tt.table.Hash)
		require.NotNil(t, h)
	}

	// a fixed salt gives a reproducible layout
	a, _ := Table{Hash: "murmur3", Salt: salt}.Hasher()
	b, _ := Table{Hash: "murmur3", Salt: salt}.Hasher()
	require.Equal(t, a.Hash64([]byte("CS101")), b.Hash64([]byte("CS101")))

	_, err := Table{Hash: "murmur3", Salt: "not hex"}.Hasher()
	require.Error(t, err)
}

func TestValidateLeavesSaltAlone(t *testing.T) {
	c := Default()
	c.Table.Hash = "blake3"
	require.NoError(t, c.Validate())

	kind, s, err := c.Table.decodeSalt()
	require.NoError(t, err)
	require.Equal(t, hash.Blake3, kind)
	require.Nil(t, s, "no salt is configured, none must be drawn")

	// the random salt is drawn when the table is built
	s, err = c.Table.salt()
	require.NoError(t, err)
	require.Len(t, s, hash.SaltLength)

	c.Table.Salt = salt
	_, s, err = c.Table.decodeSalt()
	require.NoError(t, err)
	require.Len(t, s, hash.SaltLength)

	c.Table.Salt = "abcd"
	var merr *multierror.Error
	require.True(t, errors.As(c.Validate(), &merr))
	require.Len(t, merr.Errors, 1)
	require.True(t, errors.Is(merr.Errors[0], hash.ErrSaltLengthMismatch))
}

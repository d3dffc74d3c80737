package hash

import (
	"crypto/rand"
	"errors"
	"fmt"
	"testing"
)

var xxx = []byte("CS300:Advanced Programming Techniques")

func makeSalt() ([]byte, error) {
	var s = make([]byte, SaltLength)

	if n, err := rand.Read(s); err != nil {
		return nil, err
	} else if n != SaltLength {
		return nil, fmt.Errorf("requested %d rand bytes and got %d", SaltLength, n)
	} else {
		return s, nil
	}
}

func TestCharSum(t *testing.T) {
	charSumTests := []struct {
		key  string
		want uint64
	}{
		{"", 0},
		{"A", 65},
		{"CS101", 'C' + 'S' + '1' + '0' + '1'},
		{"CS110", 'C' + 'S' + '1' + '0' + '1'},
		{"SC011", 'C' + 'S' + '1' + '0' + '1'},
		// UTF-8 bytes count as unsigned values
		{"É", 0xc3 + 0x89},
	}

	h := NewCharSumHasher()
	for _, tt := range charSumTests {
		if got := h.Hash64([]byte(tt.key)); got != tt.want {
			t.Errorf("charSum(%q): want: %d, got: %d", tt.key, tt.want, got)
		}
	}
}

func TestCharSumWraps(t *testing.T) {
	// 0xff * n overflows 32 bits once n > 16843009
	key := make([]byte, 16843010)
	for i := range key {
		key[i] = 0xff
	}
	want := uint64(uint32(0xff * uint64(len(key))))
	if got := NewCharSumHasher().Hash64(key); got != want {
		t.Errorf("charSum did not wrap at 32 bits: want %d, got %d", want, got)
	}
}

func TestSeededHashers(t *testing.T) {
	s, err := makeSalt()
	if err != nil {
		t.Fatal(err)
	}
	other, err := makeSalt()
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []Kind{Murmur3, Metro, Highway, Blake3} {
		h, err := New(k, s)
		if err != nil {
			t.Fatalf("New(%s): %v", k, err)
		}
		if h.Hash64(xxx) != h.Hash64(xxx) {
			t.Errorf("%s hasher is not deterministic", k)
		}

		g, _ := New(k, other)
		if h.Hash64(xxx) == g.Hash64(xxx) {
			t.Errorf("%s hasher ignores its salt", k)
		}
	}
}

func TestSaltDoesNotChange(t *testing.T) {
	s, _ := makeSalt()
	backing := make([]byte, SaltLength, 2*SaltLength)
	copy(backing, s)
	h, _ := NewMurmur3Hasher(backing)

	h.Hash64([]byte("abcdef"))
	if string(backing[SaltLength:SaltLength+6]) == "abcdef" {
		t.Fatalf("hashing wrote into the salt's backing array")
	}
}

func TestSaltLengthMismatch(t *testing.T) {
	for _, k := range []Kind{Murmur3, Metro, Highway, Blake3} {
		if _, err := New(k, make([]byte, SaltLength-1)); err != ErrSaltLengthMismatch {
			t.Errorf("New(%s) with a short salt: want ErrSaltLengthMismatch, got %v", k, err)
		}
	}

	if _, err := New(CharSum, nil); err != nil {
		t.Errorf("charsum must not need a salt, got %v", err)
	}
}

func TestUnknownHasher(t *testing.T) {
	s, _ := makeSalt()
	h, err := New(666, s)
	if err != ErrUnknownHash {
		t.Fatalf("requested impossible hasher and got %v", h)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{CharSum, Murmur3, Metro, Highway, Blake3} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q): want %v, got %v (%v)", k.String(), k, got, err)
		}
	}

	if _, err := ParseKind("sha1"); !errors.Is(err, ErrUnknownHash) {
		t.Errorf("ParseKind(sha1): want ErrUnknownHash, got %v", err)
	}
	if Kind(42).String() != "undefined" {
		t.Errorf("unexpected name for an unknown kind: %s", Kind(42))
	}
}

func BenchmarkCharSum(b *testing.B) {
	h := NewCharSumHasher()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkMurmur3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMurmur3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkMetro(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMetroHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkHighway(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewHighwayHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

func BenchmarkBlake3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewBlake3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash64(xxx)
	}
}

// Package lang defines the character alphabet shared by corpora and layouts.
package lang

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// DefaultChars is the built-in 36-character alphabet: the latin letters
// plus the punctuation reachable on a bare 3x12 board.
const DefaultChars = `abcdefghijklmnopqrstuvwxyz,.';/-=[]\`

// Alphabet is an ordered character set. The position of a rune is its
// character id; corpus tables and layout grids index through it.
type Alphabet struct {
	runes []rune
	index map[rune]int
}

// New builds an alphabet from the given characters.
func New(chars string) (*Alphabet, error) {
	runes := []rune(chars)
	if len(runes) == 0 {
		return nil, fmt.Errorf("alphabet is empty")
	}
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, ok := index[r]; ok {
			return nil, fmt.Errorf("duplicate character %q in alphabet", r)
		}
		index[r] = i
	}
	return &Alphabet{runes: runes, index: index}, nil
}

// Default returns the built-in alphabet.
func Default() *Alphabet {
	a, err := New(DefaultChars)
	if err != nil {
		panic(err)
	}
	return a
}

// Load reads an alphabet from a file. The first non-empty line holds
// the characters in id order.
func Load(path string) (*Alphabet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only alphabet file.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return New(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("alphabet file is empty")
}

// Len returns the alphabet size.
func (a *Alphabet) Len() int {
	return len(a.runes)
}

// Chars returns the characters in id order.
func (a *Alphabet) Chars() string {
	return string(a.runes)
}

// Rune returns the character with the given id.
func (a *Alphabet) Rune(id int) rune {
	return a.runes[id]
}

// ID maps a rune to its character id. Uppercase letters fold to their
// lowercase entry so corpus text does not need pre-lowering.
func (a *Alphabet) ID(r rune) (int, bool) {
	if id, ok := a.index[r]; ok {
		return id, true
	}
	lower := unicode.ToLower(r)
	if lower != r {
		if id, ok := a.index[lower]; ok {
			return id, true
		}
	}
	return 0, false
}

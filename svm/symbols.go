package svm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// UnknownSymbol is what FormatAddress returns for addresses without a symbol.
const UnknownSymbol = "(unknown)"

type symbol struct {
	name string
	size uint32
}

// A SymbolTable names virtual addresses after the nearest symbol at or below
// them.
type SymbolTable struct {
	tree *redblacktree.Tree
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		tree: redblacktree.NewWith(utils.UInt32Comparator),
	}
}

// Add registers a symbol. A size of 0 means the symbol extends up to the
// next one.
func (t *SymbolTable) Add(va uint32, size uint32, name string) {
	t.tree.Put(va, symbol{name: name, size: size})
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	return t.tree.Size()
}

// FormatAddress returns "name" or "name+0xoffset" for va, or UnknownSymbol.
func (t *SymbolTable) FormatAddress(va uint32) string {
	node, found := t.tree.Floor(va)
	if !found {
		return UnknownSymbol
	}

	base := node.Key.(uint32)
	sym := node.Value.(symbol)
	offset := va - base

	if sym.size != 0 && offset >= sym.size {
		return UnknownSymbol
	}

	if offset == 0 {
		return sym.name
	}

	return fmt.Sprintf("%s+0x%x", sym.name, offset)
}

// A ParseError points at a malformed line of a symbol file.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symbol file line %d: cannot parse %q", e.Line, e.Text)
}

// ReadSymbols parses symbol listings in the formats printed by nm:
//
//	80000010 T main
//	80000010 00000040 T main
//	80000010 main
//
// Blank lines and lines starting with '#' are skipped.
func ReadSymbols(r io.Reader) (*SymbolTable, error) {
	t := NewSymbolTable()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		va, size, name, ok := parseSymbolLine(line)
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: line}
		}

		t.Add(va, size, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading symbols: %w", err)
	}

	return t, nil
}

// LoadSymbols reads a symbol file.
func LoadSymbols(path string) (*SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading symbols: %w", err)
	}
	defer f.Close()

	return ReadSymbols(f)
}

func parseSymbolLine(line string) (va, size uint32, name string, ok bool) {
	fields := strings.Fields(line)

	var sizeField string

	switch len(fields) {
	case 2:
		name = fields[1]
	case 3:
		name = fields[2]
	case 4:
		sizeField = fields[1]
		name = fields[3]
	default:
		return 0, 0, "", false
	}

	va, ok = parseHex(fields[0])
	if !ok {
		return 0, 0, "", false
	}

	if sizeField != "" {
		size, ok = parseHex(sizeField)
		if !ok {
			return 0, 0, "", false
		}
	}

	return va, size, name, true
}

func parseHex(s string) (uint32, bool) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, false
	}

	return uint32(v), true
}

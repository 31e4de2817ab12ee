// Package vdf reads Valve's KeyValues ("VDF") text format and extracts
// entries from the binary shortcuts.vdf file.
//
// Neither parser returns errors. Malformed input yields whatever was read
// before the damage; callers treat a missing key as "not found".
package vdf

import (
	"sort"
	"strings"
)

// Map is one level of a parsed text VDF document. Values are either string
// or Map.
type Map map[string]any

// Get returns the value stored under key. An exact match wins; otherwise the
// first case-insensitive match is used, since Steam is inconsistent about
// key casing across client versions.
func (m Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// String returns the string value under key.
func (m Map) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Map returns the nested mapping under key, or nil.
func (m Map) Map(key string) Map {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	sub, _ := v.(Map)
	return sub
}

// Path walks nested mappings and returns the mapping at the end of keys,
// or nil if any step is missing.
func (m Map) Path(keys ...string) Map {
	cur := m
	for _, k := range keys {
		cur = cur.Map(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

type tokenKind int

const (
	tokString tokenKind = iota
	tokOpen
	tokClose
)

type token struct {
	kind  tokenKind
	value string
}

// Parse reads a text VDF document. It never fails: unbalanced braces and
// unterminated quotes end the parse and the partial tree is returned.
func Parse(input string) Map {
	root := Map{}
	stack := []Map{root}
	var pending *string

	for _, tok := range tokenize(input) {
		top := stack[len(stack)-1]
		switch tok.kind {
		case tokOpen:
			if pending == nil {
				// Anonymous block; nest it so its closing brace stays balanced.
				stack = append(stack, Map{})
				continue
			}
			child := Map{}
			top[*pending] = child
			stack = append(stack, child)
			pending = nil
		case tokClose:
			pending = nil
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case tokString:
			if pending == nil {
				key := tok.value
				pending = &key
				continue
			}
			top[*pending] = tok.value
			pending = nil
		}
	}

	return root
}

func tokenize(input string) []token {
	var tokens []token
	i, n := 0, len(input)

	for i < n {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '/' && i+1 < n && input[i+1] == '/':
			for i < n && input[i] != '\n' {
				i++
			}
		case c == '{':
			tokens = append(tokens, token{kind: tokOpen})
			i++
		case c == '}':
			tokens = append(tokens, token{kind: tokClose})
			i++
		case c == '"':
			value, next, ok := readQuoted(input, i+1)
			if !ok {
				return tokens
			}
			tokens = append(tokens, token{kind: tokString, value: value})
			i = next
		case c == '[':
			// Platform conditionals like [$WIN32] qualify the preceding
			// pair; they carry no data we use.
			for i < n && input[i] != ']' {
				i++
			}
			i++
		default:
			start := i
			for i < n && !isDelimiter(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokString, value: input[start:i]})
		}
	}

	return tokens
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '{', '}', '"':
		return true
	}
	return false
}

// readQuoted reads a quoted string starting just after the opening quote.
// It returns the unescaped value and the index after the closing quote.
func readQuoted(input string, i int) (string, int, bool) {
	var b strings.Builder
	for i < len(input) {
		c := input[i]
		switch c {
		case '"':
			return b.String(), i + 1, true
		case '\\':
			if i+1 >= len(input) {
				return "", len(input), false
			}
			switch next := input[i+1]; next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"':
				b.WriteByte(next)
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", len(input), false
}

// Marshal renders m in the text VDF syntax with keys sorted at every level.
func Marshal(m Map) string {
	var b strings.Builder
	writeMap(&b, m, 0)
	return b.String()
}

func writeMap(b *strings.Builder, m Map, depth int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	indent := strings.Repeat("\t", depth)
	for _, k := range keys {
		switch v := m[k].(type) {
		case Map:
			b.WriteString(indent + quote(k) + "\n")
			b.WriteString(indent + "{\n")
			writeMap(b, v, depth+1)
			b.WriteString(indent + "}\n")
		case string:
			b.WriteString(indent + quote(k) + "\t\t" + quote(v) + "\n")
		}
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

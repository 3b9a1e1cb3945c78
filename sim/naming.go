package sim

import (
	"strconv"
	"strings"
)

// A Name is a hierarchical name made of dot-separated tokens, optionally
// indexed with square brackets (e.g. "Mesh.Node[3].InPort").
type Name struct {
	Tokens []NameToken
}

// NameToken is a single element of a Name.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName splits a dotted name string into tokens.
func ParseName(sname string) Name {
	parts := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(parts))}
	for i, part := range parts {
		name.Tokens[i] = parseNameToken(part)
	}
	return name
}

func parseNameToken(token string) NameToken {
	bracketsMustMatch(token)

	parts := strings.Split(token, "[")
	elemName := parts[0]

	indices := make([]int, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		idx, err := strconv.Atoi(parts[i][:len(parts[i])-1])
		if err != nil {
			panic("sim: name index must be an integer")
		}
		indices[i-1] = idx
	}

	return NameToken{ElemName: elemName, Index: indices}
}

func bracketsMustMatch(name string) {
	depth := 0
	for _, c := range name {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				panic("sim: name brackets must match")
			}
		}
	}
	if depth != 0 {
		panic("sim: name brackets must match")
	}
}

// NameMustBeValid panics if name does not follow the engine's naming
// convention: hierarchical dotted tokens, each non-empty, starting with a
// capital letter, with indices expressed as "Elem[3]".
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("sim: name " + name + " is not valid: " + r.(string))
		}
	}()

	n := ParseName(name)
	for _, token := range n.Tokens {
		tokenMustBeValid(token)
	}
}

func tokenMustBeValid(token NameToken) {
	if token.ElemName == "" {
		panic("name element must not be empty")
	}

	for _, c := range []string{"_", "\"", "'", "-"} {
		if strings.Contains(token.ElemName, c) {
			panic("name element must not contain " + c)
		}
	}

	if token.ElemName[0] < 'A' || token.ElemName[0] > 'Z' {
		panic("name element must start with a capital letter")
	}
}

// BuildName joins a parent name and an element name with a dot.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}
	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an indexed element name, for
// naming ports/timers/links that live inside a slice field on a component.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}

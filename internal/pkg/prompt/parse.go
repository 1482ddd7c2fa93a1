package prompt

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// node is one element of a parsed template.
type node interface{ node() }

// textNode is literal template text.
type textNode struct{ text string }

// fieldNode substitutes the value at path.
type fieldNode struct{ path string }

// ifNode renders then when the value at path is truthy (falsy when negate is set),
// and otherwise renders otherwise.
type ifNode struct {
	path      string
	negate    bool
	then      []node
	otherwise []node
}

// eachNode renders body once per element of the list at path, joining with sep.
type eachNode struct {
	path string
	sep  string
	body []node
}

func (textNode) node()  {}
func (fieldNode) node() {}
func (*ifNode) node()   {}
func (*eachNode) node() {}

// ParseError reports a malformed template.
type ParseError struct {
	Template string
	Offset   int
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("prompt %q: offset %d: %s", e.Template, e.Offset, e.Msg)
}

// frame is an open block while parsing.
type frame struct {
	kind   string // "if", "unless", "each"
	offset int
	ifn    *ifNode
	each   *eachNode
	inElse bool
	parent *[]node
}

func parse(name, text string) ([]node, error) {
	var root []node
	current := &root
	var stack []*frame

	fail := func(offset int, format string, args ...any) ([]node, error) {
		return nil, &ParseError{Template: name, Offset: offset, Msg: fmt.Sprintf(format, args...)}
	}

	pos := 0
	for pos < len(text) {
		start := strings.Index(text[pos:], openDelim)
		if start < 0 {
			*current = append(*current, textNode{text: text[pos:]})
			break
		}
		start += pos
		if start > pos {
			*current = append(*current, textNode{text: text[pos:start]})
		}

		end := strings.Index(text[start+len(openDelim):], closeDelim)
		if end < 0 {
			return fail(start, "unclosed tag")
		}
		end += start + len(openDelim)
		tag := text[start+len(openDelim) : end]
		pos = end + len(closeDelim)

		// Triple-stash {{{field}}} is accepted as a plain substitution; nothing is escaped anyway.
		if strings.HasPrefix(tag, "{") {
			if pos < len(text) && text[pos] == '}' {
				pos++
			}
			tag = strings.TrimPrefix(tag, "{")
		}
		tag = strings.TrimSpace(tag)

		switch {
		case tag == "":
			return fail(start, "empty tag")

		case strings.HasPrefix(tag, "!"):
			// comment

		case strings.HasPrefix(tag, "#if ") || strings.HasPrefix(tag, "#unless "):
			kind, path := splitDirective(tag)
			if path == "" {
				return fail(start, "%s without a field", kind)
			}
			n := &ifNode{path: path, negate: kind == "unless"}
			*current = append(*current, n)
			stack = append(stack, &frame{kind: kind, offset: start, ifn: n, parent: current})
			current = &n.then

		case strings.HasPrefix(tag, "#each "):
			_, rest := splitDirective(tag)
			path, sep, err := parseEachArgs(rest)
			if err != nil {
				return fail(start, "%v", err)
			}
			n := &eachNode{path: path, sep: sep}
			*current = append(*current, n)
			stack = append(stack, &frame{kind: "each", offset: start, each: n, parent: current})
			current = &n.body

		case tag == "else":
			if len(stack) == 0 {
				return fail(start, "else outside of a block")
			}
			top := stack[len(stack)-1]
			if top.ifn == nil || top.inElse {
				return fail(start, "unexpected else in %s block", top.kind)
			}
			top.inElse = true
			current = &top.ifn.otherwise

		case strings.HasPrefix(tag, "/"):
			kind := strings.TrimSpace(tag[1:])
			if len(stack) == 0 {
				return fail(start, "unexpected {{/%s}}", kind)
			}
			top := stack[len(stack)-1]
			if top.kind != kind {
				return fail(start, "{{/%s}} closes a %s block opened at offset %d", kind, top.kind, top.offset)
			}
			stack = stack[:len(stack)-1]
			current = top.parent

		case strings.HasPrefix(tag, "#"):
			return fail(start, "unknown directive %q", tag)

		default:
			if strings.ContainsAny(tag, " \t\n") {
				return fail(start, "invalid field reference %q", tag)
			}
			*current = append(*current, fieldNode{path: tag})
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fail(top.offset, "unclosed %s block", top.kind)
	}
	return root, nil
}

// splitDirective splits "#if field" into ("if", "field").
func splitDirective(tag string) (kind, rest string) {
	tag = strings.TrimPrefix(tag, "#")
	kind, rest, _ = strings.Cut(tag, " ")
	return kind, strings.TrimSpace(rest)
}

// unquoteSep reads a double-quoted separator. Escapes such as \n are decoded; a
// value holding a literal newline or tab is taken as written.
func unquoteSep(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", fmt.Errorf("each separator must be a quoted string, got %s", value)
	}
	if sep, err := strconv.Unquote(value); err == nil {
		return sep, nil
	}
	return value[1 : len(value)-1], nil
}

// parseEachArgs parses `items sep=", "`. The separator defaults to "".
func parseEachArgs(args string) (path, sep string, err error) {
	path, rest, _ := strings.Cut(args, " ")
	if path == "" {
		return "", "", fmt.Errorf("each without a field")
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return path, "", nil
	}
	value, ok := strings.CutPrefix(rest, "sep=")
	if !ok {
		return "", "", fmt.Errorf("unknown each argument %q", rest)
	}
	sep, err = unquoteSep(value)
	if err != nil {
		return "", "", err
	}
	return path, sep, nil
}

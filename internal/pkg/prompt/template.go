// Package prompt renders model prompts from handlebars-style templates.
//
// Supported directives: {{field}}, {{a.b}}, {{#if field}}…{{else}}…{{/if}},
// {{#unless field}}…{{/unless}}, {{#each list sep=", "}}…{{this}}…{{/each}} with
// {{@index}} (0-based) and {{@number}} (1-based) inside loops, and {{! comments }}.
// Values are inserted verbatim.
package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Data is the view of a validated input a template is rendered against.
type Data map[string]any

// Template is a parsed prompt template. It is immutable and safe for concurrent use.
type Template struct {
	name  string
	nodes []node
}

// Parse parses a template once; Render can then be called any number of times.
func Parse(name, text string) (*Template, error) {
	nodes, err := parse(name, text)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, nodes: nodes}, nil
}

// MustParse is like Parse but panics on error. Intended for package-level templates.
func MustParse(name, text string) *Template {
	t, err := Parse(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Render evaluates the template against data. Missing fields render as "".
func (t *Template) Render(data Data) string {
	var b strings.Builder
	root := &scope{this: map[string]any(data)}
	renderNodes(&b, t.nodes, root)
	return b.String()
}

// RenderValue converts v (usually a validated input struct) with DataOf and renders it.
func (t *Template) RenderValue(v any) (string, error) {
	data, err := DataOf(v)
	if err != nil {
		return "", err
	}
	return t.Render(data), nil
}

// DataOf converts a struct into Data using its JSON field names.
func DataOf(v any) (Data, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("prompt data: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("prompt data: %w", err)
	}
	return data, nil
}

// scope is one level of lookup: the root input or the current loop element.
type scope struct {
	this   any
	index  int
	parent *scope
}

func renderNodes(b *strings.Builder, nodes []node, s *scope) {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			b.WriteString(n.text)
		case fieldNode:
			b.WriteString(stringify(s.lookup(n.path)))
		case *ifNode:
			if truthy(s.lookup(n.path)) != n.negate {
				renderNodes(b, n.then, s)
			} else {
				renderNodes(b, n.otherwise, s)
			}
		case *eachNode:
			items, _ := s.lookup(n.path).([]any)
			for i, item := range items {
				if i > 0 {
					b.WriteString(n.sep)
				}
				renderNodes(b, n.body, &scope{this: item, index: i, parent: s})
			}
		}
	}
}

// lookup resolves a dotted path. Plain names are searched from the innermost scope
// outwards so loop bodies can still reach top-level fields.
func (s *scope) lookup(path string) any {
	switch path {
	case "this", ".":
		return s.this
	case "@index":
		return float64(s.index)
	case "@number":
		return float64(s.index + 1)
	}

	parts := strings.Split(path, ".")
	if parts[0] == "this" {
		return walk(s.this, parts[1:])
	}
	for cur := s; cur != nil; cur = cur.parent {
		if m, ok := cur.this.(map[string]any); ok {
			if _, exists := m[parts[0]]; exists {
				return walk(m, parts)
			}
		}
	}
	return nil
}

func walk(v any, parts []string) any {
	for _, p := range parts {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[p]
	}
	return v
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + stringify(v[k])
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Package prompt formats the interviewer prompts sent to the model.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"
)

// ErrMissingPlaceholder is returned by Format when a required value is absent.
var ErrMissingPlaceholder = errors.New("missing placeholder value")

// Template is a static prompt with at most one named placeholder,
// written as {{.name}}.
type Template struct {
	name         string
	tmpl         *template.Template
	placeholders []string
}

// Parse compiles text into a Template.
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var placeholders []string
	seen := map[string]bool{}
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			placeholders = collectFields(t.Tree.Root, seen, placeholders)
		}
	}
	if len(placeholders) > 1 {
		return nil, fmt.Errorf("template %s declares %d placeholders (%s); at most one is supported",
			name, len(placeholders), strings.Join(placeholders, ", "))
	}

	return &Template{name: name, tmpl: tmpl, placeholders: placeholders}, nil
}

// Placeholders returns the names the template substitutes.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Format substitutes vars into the template. Keys the template does not use are ignored.
func (t *Template) Format(vars map[string]string) (string, error) {
	for _, name := range t.placeholders {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("%w: %q in template %s", ErrMissingPlaceholder, name, t.name)
		}
	}
	if vars == nil {
		vars = map[string]string{}
	}

	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("format template %s: %w", t.name, err)
	}
	return sb.String(), nil
}

// collectFields returns the distinct top-level field names referenced under node, in order.
func collectFields(node parse.Node, seen map[string]bool, out []string) []string {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return out
		}
		for _, child := range n.Nodes {
			out = collectFields(child, seen, out)
		}
	case *parse.ActionNode:
		out = collectFields(n.Pipe, seen, out)
	case *parse.PipeNode:
		if n == nil {
			return out
		}
		for _, cmd := range n.Cmds {
			for _, arg := range cmd.Args {
				out = collectFields(arg, seen, out)
			}
		}
	case *parse.ChainNode:
		out = collectFields(n.Node, seen, out)
	case *parse.TemplateNode:
		out = collectFields(n.Pipe, seen, out)
	case *parse.FieldNode:
		if len(n.Ident) > 0 && !seen[n.Ident[0]] {
			seen[n.Ident[0]] = true
			out = append(out, n.Ident[0])
		}
	case *parse.IfNode:
		out = collectBranch(&n.BranchNode, seen, out)
	case *parse.RangeNode:
		out = collectBranch(&n.BranchNode, seen, out)
	case *parse.WithNode:
		out = collectBranch(&n.BranchNode, seen, out)
	}
	return out
}

func collectBranch(b *parse.BranchNode, seen map[string]bool, out []string) []string {
	out = collectFields(b.Pipe, seen, out)
	out = collectFields(b.List, seen, out)
	return collectFields(b.ElseList, seen, out)
}

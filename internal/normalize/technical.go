package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/briefdeck/briefdeck/internal/rawval"
)

// Technical normalizes technical-context agent output into titled sections.
// A structured object becomes one section per key; prose is split on "## "
// headings; prose without headings becomes a single unnamed section.
func Technical(raw any) []ContextSection {
	v := rawval.Resolve(raw)
	switch v.Kind {
	case rawval.Object:
		return objectSections(v.Obj)
	case rawval.Array:
		return []ContextSection{{Content: v.String()}}
	case rawval.Text:
		return proseSections(v.Text)
	default:
		return []ContextSection{}
	}
}

// objectSections turns each key of a structured payload into one titled
// section, keys in sorted order so output is stable across polls.
func objectSections(obj map[string]any) []ContextSection {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sections := make([]ContextSection, 0, len(keys))
	for _, k := range keys {
		sections = append(sections, ContextSection{
			Title:   k,
			Content: sectionContent(obj[k]),
		})
	}
	return sections
}

func sectionContent(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		if s := rawval.Resolve(val).String(); s != "" {
			return s
		}
		return fmt.Sprint(val)
	}
}

type headingMark struct {
	title string
	start int // byte offset of the "##" marker
	end   int // byte offset past the heading line content
}

// proseSections splits markdown prose into sections at level-2 headings,
// located through the goldmark AST rather than line scanning so indented or
// escaped hash characters do not produce false splits.
func proseSections(src string) []ContextSection {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var marks []headingMark
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		start := first.Start - h.Level - 1 // back over the "## " marker
		if start < 0 {
			start = 0
		}
		marks = append(marks, headingMark{
			title: strings.TrimSpace(string(source[first.Start:last.Stop])),
			start: start,
			end:   last.Stop,
		})
		return ast.WalkContinue, nil
	})

	if len(marks) == 0 {
		return []ContextSection{{Content: strings.TrimSpace(src)}}
	}

	var sections []ContextSection
	if preamble := strings.TrimSpace(src[:marks[0].start]); preamble != "" {
		sections = append(sections, ContextSection{Content: preamble})
	}
	for i, m := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		sections = append(sections, ContextSection{
			Title:   m.title,
			Content: strings.TrimSpace(src[m.end:end]),
		})
	}
	return sections
}

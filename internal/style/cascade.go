// Package style implements the CSS cascade: matching simple selectors
// against elements, resolving specificity and origin precedence, and
// producing a tree of computed style nodes with inheritance applied.
package style

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/keiya01/kamaitachi/internal/parser/css"
	"github.com/keiya01/kamaitachi/internal/parser/html"
	xhtml "golang.org/x/net/html"
)

// foldCaser folds ASCII/Unicode case for selector and keyword comparisons,
// so an author's `DIV`/`SPAN` selector still matches the (already
// lower-cased) HTML tag name.
var foldCaser = cases.Fold()

func foldEqual(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}

// Specificity is the (id-count, class-count, tag-count) tuple used to
// break ties between matching rules. Only simple selectors are supported,
// so this is computed directly from a single compound-selector string.
type Specificity struct {
	ID      int
	Class   int
	Element int
}

// Less reports whether s is lower priority than o.
func (s Specificity) Less(o Specificity) bool {
	if s.ID != o.ID {
		return s.ID < o.ID
	}
	if s.Class != o.Class {
		return s.Class < o.Class
	}
	return s.Element < o.Element
}

// Source represents the origin of a declaration: user-agent, author
// stylesheet, or an element's inline style attribute. Origins rank in
// this order regardless of specificity, except that !important inverts
// the comparison between user-agent and author (not modelled here since
// the user agent sheet never marks declarations important).
type Source int

const (
	SourceUserAgent Source = iota
	SourceAuthor
	SourceInline
)

// StyleProperty is a single cascaded (winning) declaration for a property.
type StyleProperty struct {
	Name        string
	Value       string
	Important   bool
	Source      Source
	Specificity Specificity
}

// ComputedStyle is the specified-value map for one element, before
// inheritance from ancestors is folded in.
type ComputedStyle map[string]StyleProperty

// Clone returns a shallow copy so callers can layer inherited properties
// onto it without mutating the original map.
func (c ComputedStyle) Clone() ComputedStyle {
	cp := make(ComputedStyle, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// Engine holds the user-agent stylesheet plus any author stylesheets
// collected from the document, and runs the cascade for each element.
type Engine struct {
	userAgentStyles *css.Stylesheet
	authorStyles    []*css.Stylesheet
}

// NewEngine creates an Engine seeded with the built-in user-agent sheet.
func NewEngine() *Engine {
	return &Engine{
		userAgentStyles: defaultUserAgentStyles(),
		authorStyles:    []*css.Stylesheet{},
	}
}

// AddStylesheet registers an author stylesheet, applied after the
// user-agent sheet and before any inline style attributes.
func (e *Engine) AddStylesheet(stylesheet *css.Stylesheet) {
	e.authorStyles = append(e.authorStyles, stylesheet)
}

// computeStyleForElement runs the full cascade for a single element:
// user-agent rules, then author rules in registration order, then the
// element's own inline style attribute.
func (e *Engine) computeStyleForElement(node *html.Node) ComputedStyle {
	style := make(ComputedStyle)

	e.applyStylesheet(style, node, e.userAgentStyles, SourceUserAgent)

	for _, stylesheet := range e.authorStyles {
		e.applyStylesheet(style, node, stylesheet, SourceAuthor)
	}

	e.applyInlineStyles(style, node)

	return style
}

func (e *Engine) applyStylesheet(style ComputedStyle, node *html.Node, stylesheet *css.Stylesheet, source Source) {
	if stylesheet == nil {
		return
	}
	for _, rule := range stylesheet.Rules {
		for _, selector := range rule.Selectors {
			if !selectorMatches(node, selector) {
				continue
			}
			specificity := calculateSpecificity(selector)
			applyDeclarations(style, rule.Declarations, specificity, source)
		}
	}
}

func (e *Engine) applyInlineStyles(style ComputedStyle, node *html.Node) {
	for _, attr := range node.Attr {
		if attr.Key != "style" {
			continue
		}
		parser := css.NewParser()
		inlineStyles, err := parser.ParseString("dummy { " + attr.Val + " }")
		if err != nil || len(inlineStyles.Rules) == 0 {
			continue
		}
		// Inline declarations always win over any selector-based rule,
		// independent of specificity: model this as the maximum possible
		// specificity rather than special-casing the source comparison.
		specificity := Specificity{ID: 1 << 30, Class: 0, Element: 0}
		applyDeclarations(style, inlineStyles.Rules[0].Declarations, specificity, SourceInline)
	}
}

// applyDeclarations folds a matched rule's declarations into style,
// keeping whichever of the new and existing declaration wins the cascade:
// !important beats normal, then the later origin (author over user-agent,
// inline over author), then higher specificity, and within one origin and
// specificity the declaration applied later wins.
func applyDeclarations(style ComputedStyle, declarations []*css.Declaration, specificity Specificity, source Source) {
	for _, decl := range declarations {
		property := decl.Property
		existing, exists := style[property]

		winsOverExisting := !exists ||
			(decl.Important && !existing.Important) ||
			(decl.Important == existing.Important && (source > existing.Source ||
				(source == existing.Source && !specificity.Less(existing.Specificity))))

		if winsOverExisting {
			style[property] = StyleProperty{
				Name:        property,
				Value:       decl.Value,
				Important:   decl.Important,
				Source:      source,
				Specificity: specificity,
			}
		}
	}
}

// selectorMatches checks a single simple selector against an element.
// Per the spec's data model, only simple selectors are supported: an
// optional tag name, an optional #id, and any number of .class parts,
// with no descendant/child combinators.
func selectorMatches(node *html.Node, selector string) bool {
	selector = strings.TrimSpace(selector)
	return matchSimpleSelector(node, selector)
}

func matchSimpleSelector(node *html.Node, sel string) bool {
	if node == nil || node.Type != xhtml.ElementNode || sel == "" {
		return false
	}

	var wantTag string
	var wantID string
	var wantClasses []string

	i := 0
	if i < len(sel) && sel[i] != '.' && sel[i] != '#' {
		j := i
		for j < len(sel) && sel[j] != '#' && sel[j] != '.' {
			j++
		}
		wantTag = sel[i:j]
		i = j
	}
	for i < len(sel) {
		switch sel[i] {
		case '#':
			j := i + 1
			for j < len(sel) && sel[j] != '.' && sel[j] != '#' {
				j++
			}
			wantID = sel[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < len(sel) && sel[j] != '.' && sel[j] != '#' {
				j++
			}
			wantClasses = append(wantClasses, sel[i+1:j])
			i = j
		default:
			return false
		}
	}

	if wantTag != "" && wantTag != "*" && !foldEqual(wantTag, node.Data) {
		return false
	}

	if wantID != "" && nodeID(node) != wantID {
		return false
	}

	if len(wantClasses) > 0 {
		classes := nodeClassSet(node)
		for _, need := range wantClasses {
			if _, ok := classes[need]; !ok {
				return false
			}
		}
	}

	return true
}

func nodeID(node *html.Node) string {
	for _, attr := range node.Attr {
		if attr.Key == "id" {
			return attr.Val
		}
	}
	return ""
}

func nodeClassSet(node *html.Node) map[string]struct{} {
	for _, attr := range node.Attr {
		if attr.Key == "class" {
			fields := strings.Fields(attr.Val)
			set := make(map[string]struct{}, len(fields))
			for _, f := range fields {
				set[f] = struct{}{}
			}
			return set
		}
	}
	return nil
}

// calculateSpecificity computes the (id, class, tag) tuple for a simple
// selector string directly from its syntax, rather than approximating by
// counting punctuation across an arbitrary combinator chain.
func calculateSpecificity(selector string) Specificity {
	selector = strings.TrimSpace(selector)
	var spec Specificity
	i := 0
	if i < len(selector) && selector[i] != '.' && selector[i] != '#' {
		j := i
		for j < len(selector) && selector[j] != '#' && selector[j] != '.' {
			j++
		}
		if tag := selector[i:j]; tag != "" && tag != "*" {
			spec.Element = 1
		}
		i = j
	}
	for i < len(selector) {
		switch selector[i] {
		case '#':
			j := i + 1
			for j < len(selector) && selector[j] != '.' && selector[j] != '#' {
				j++
			}
			spec.ID++
			i = j
		case '.':
			j := i + 1
			for j < len(selector) && selector[j] != '.' && selector[j] != '#' {
				j++
			}
			spec.Class++
			i = j
		default:
			i++
		}
	}
	return spec
}

// defaultUserAgentStyles returns the built-in user-agent stylesheet.
func defaultUserAgentStyles() *css.Stylesheet {
	parser := css.NewParser()
	stylesheet, _ := parser.ParseString(`
		html, body { display: block; margin: 0; padding: 0; }
		div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, header, footer, section,
		article, nav, aside, main, blockquote, figure, figcaption, form,
		fieldset, table, thead, tbody, tfoot, tr, hr, pre, address { display: block; }
		span, a, b, strong, i, em, small, code, label, u { display: inline; }
		script, style, head, title, meta, link { display: none; }
		body { font-family: serif; font-size: 16px; color: #000000; }
		h1 { font-size: 32px; font-weight: 700; margin: 21px 0px; }
		h2 { font-size: 24px; font-weight: 700; margin: 20px 0px; }
		h3 { font-size: 19px; font-weight: 700; margin: 19px 0px; }
		h4 { font-weight: 700; margin: 21px 0px; }
		h5 { font-size: 13px; font-weight: 700; margin: 22px 0px; }
		h6 { font-size: 11px; font-weight: 700; margin: 25px 0px; }
		p { margin: 16px 0px; }
		a { color: #0000EE; }
		b, strong { font-weight: 700; }
		i, em { font-style: italic; }
		pre { word-break: break-all; }
	`)
	return stylesheet
}

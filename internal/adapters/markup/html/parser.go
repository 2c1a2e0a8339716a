// Package html extracts slide navigation from deck markup.
package html

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	classDots     = "slide-nav-dots"
	classDot      = "slide-nav-dot"
	classActive   = "active"
	classPrev     = "slide-nav-prev"
	classNext     = "slide-nav-next"
	classProgress = "progress-fill"
)

var widthPattern = regexp.MustCompile(`width:\s*(\d+)%`)

type Parser struct{}

var _ ports.NavParser = Parser{}

func NewParser() Parser {
	return Parser{}
}

func (Parser) Parse(markup []byte) (domain.SlideNav, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return domain.SlideNav{}, fmt.Errorf("parse slide markup: %w", err)
	}

	var nav domain.SlideNav
	if dots := findFirst(doc, func(n *html.Node) bool { return isDiv(n) && hasClass(n, classDots) }); dots != nil {
		for _, link := range findAll(dots, isLink) {
			href := attr(link, "href")
			nav.DotHrefs = append(nav.DotHrefs, href)
			if hasClass(link, classDot) && hasClass(link, classActive) {
				nav.ActiveHrefs = append(nav.ActiveHrefs, href)
			}
		}
	}

	nav.PrevHref = sectionHref(doc, classPrev)
	nav.NextHref = sectionHref(doc, classNext)

	if fill := findFirst(doc, func(n *html.Node) bool { return hasClass(n, classProgress) }); fill != nil {
		if m := widthPattern.FindStringSubmatch(attr(fill, "style")); m != nil {
			width, err := strconv.Atoi(m[1])
			if err != nil {
				return domain.SlideNav{}, fmt.Errorf("parse progress width %q: %w", m[1], err)
			}
			nav.Progress = &width
		}
	}

	return nav, nil
}

func sectionHref(doc *html.Node, class string) string {
	section := findFirst(doc, func(n *html.Node) bool { return isDiv(n) && hasClass(n, class) })
	if section == nil {
		return ""
	}
	link := findFirst(section, func(n *html.Node) bool { return n != section && n.Type == html.ElementNode && hasAttr(n, "href") })
	if link == nil {
		return ""
	}
	return attr(link, "href")
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

func isDiv(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Div
}

func isLink(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.A && hasAttr(n, "href")
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

package domain

const IndexHref = "../index.html"

// DefaultSlideOrder is the canonical deck order used by the navigation checker.
var DefaultSlideOrder = []string{
	"intro",
	"ai-taxonomy",
	"ai-ecosystem",
	"autocomplete",
	"context-window",
	"practical-implications",
	"practical-tips",
	"ai-intelligence",
	"model-tradeoffs",
	"prompting-tips",
	"hallucinations",
	"knowledge-problem",
	"trifolia-demo",
	"tools-context",
	"sources-section",
	"trifolia",
	"conclusiones",
	"privacidad-datos",
	"privacidad-proteccion",
	"privacidad-onpremise",
}

// SlideNav is the navigation markup extracted from one slide. Missing links are empty strings;
// a missing progress bar leaves Progress nil.
type SlideNav struct {
	DotHrefs    []string
	ActiveHrefs []string
	PrevHref    string
	NextHref    string
	Progress    *int
}

type NavDiagnostic struct {
	File    string
	Message string
}

func (d NavDiagnostic) String() string {
	return d.File + ": " + d.Message
}

func SlideFile(slide string) string {
	return slide + ".html"
}

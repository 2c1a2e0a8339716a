package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

type NavCheckService struct {
	source ports.SlideSource
	parser ports.NavParser
	order  []string
}

func NewNavCheckService(source ports.SlideSource, parser ports.NavParser, order []string) *NavCheckService {
	return &NavCheckService{
		source: source,
		parser: parser,
		order:  append([]string(nil), order...),
	}
}

type NavReport struct {
	Slides      int
	Diagnostics []domain.NavDiagnostic
}

func (r NavReport) OK() bool {
	return len(r.Diagnostics) == 0
}

// Check validates every slide of the configured order. Inconsistencies are diagnostics;
// only read or parse failures other than a missing slide are returned as errors.
func (s *NavCheckService) Check(ctx context.Context) (NavReport, error) {
	if len(s.order) == 0 {
		return NavReport{}, domain.ErrSlideOrderEmpty
	}

	report := NavReport{Slides: len(s.order)}
	expectedDots := make([]string, 0, len(s.order))
	for _, slide := range s.order {
		expectedDots = append(expectedDots, domain.SlideFile(slide))
	}

	for i, slide := range s.order {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		file := domain.SlideFile(slide)
		markup, err := s.source.ReadSlide(ctx, file)
		if errors.Is(err, domain.ErrSlideNotFound) {
			report.add(file, fmt.Sprintf("file not found: %v", err))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read slide %s: %w", file, err)
		}

		nav, err := s.parser.Parse(markup)
		if err != nil {
			return report, fmt.Errorf("parse slide %s: %w", file, err)
		}

		s.checkSlide(&report, i, file, nav, expectedDots)
	}

	return report, nil
}

func (s *NavCheckService) checkSlide(report *NavReport, i int, file string, nav domain.SlideNav, expectedDots []string) {
	total := len(s.order)

	if len(nav.DotHrefs) != total {
		report.add(file, fmt.Sprintf("expected %d nav dots, found %d", total, len(nav.DotHrefs)))
	}
	for j := 0; j < min(len(nav.DotHrefs), total); j++ {
		if nav.DotHrefs[j] != expectedDots[j] {
			report.add(file, fmt.Sprintf("dot %d: expected href=%q, found href=%q", j+1, expectedDots[j], nav.DotHrefs[j]))
			break
		}
	}

	if len(nav.ActiveHrefs) != 1 {
		report.add(file, fmt.Sprintf("expected exactly 1 active dot, found %d", len(nav.ActiveHrefs)))
	}
	active := ""
	if len(nav.ActiveHrefs) > 0 {
		active = nav.ActiveHrefs[0]
	}
	if active != file {
		report.add(file, fmt.Sprintf("active dot href=%q, expected %q", active, file))
	}

	expectedPrev := domain.IndexHref
	if i > 0 {
		expectedPrev = expectedDots[i-1]
	}
	if nav.PrevHref != expectedPrev {
		report.add(file, fmt.Sprintf("prev link: expected %q, found %q", expectedPrev, nav.PrevHref))
	}

	expectedNext := domain.IndexHref
	if i < total-1 {
		expectedNext = expectedDots[i+1]
	}
	if nav.NextHref != expectedNext {
		report.add(file, fmt.Sprintf("next link: expected %q, found %q", expectedNext, nav.NextHref))
	}

	expectedProgress := int(math.Round(float64(i+1) / float64(total) * 100))
	switch {
	case nav.Progress == nil:
		report.add(file, "progress bar not found")
	case *nav.Progress != expectedProgress:
		report.add(file, fmt.Sprintf("progress bar: expected %d%%, found %d%%", expectedProgress, *nav.Progress))
	}
}

func (r *NavReport) add(file, message string) {
	r.Diagnostics = append(r.Diagnostics, domain.NavDiagnostic{File: file, Message: message})
}

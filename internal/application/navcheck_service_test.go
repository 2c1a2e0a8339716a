package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeSlides = []string{"intro", "middle", "outro"}

func consistentNav(i int) domain.SlideNav {
	dots := []string{"intro.html", "middle.html", "outro.html"}
	progress := []int{33, 67, 100}[i]
	prev, next := domain.IndexHref, domain.IndexHref
	if i > 0 {
		prev = dots[i-1]
	}
	if i < 2 {
		next = dots[i+1]
	}
	return domain.SlideNav{
		DotHrefs:    dots,
		ActiveHrefs: []string{dots[i]},
		PrevHref:    prev,
		NextHref:    next,
		Progress:    &progress,
	}
}

func expectSlides(t *testing.T, navs []domain.SlideNav) (*mocks.MockSlideSource, *mocks.MockNavParser) {
	t.Helper()

	source := mocks.NewMockSlideSource(t)
	parser := mocks.NewMockNavParser(t)
	for i, slide := range threeSlides {
		markup := []byte(slide)
		source.EXPECT().ReadSlide(mockAnyContext(), domain.SlideFile(slide)).Return(markup, nil).Once()
		parser.EXPECT().Parse(markup).Return(navs[i], nil).Once()
	}
	return source, parser
}

func TestNavCheckConsistentDeck(t *testing.T) {
	navs := []domain.SlideNav{consistentNav(0), consistentNav(1), consistentNav(2)}
	source, parser := expectSlides(t, navs)

	report, err := NewNavCheckService(source, parser, threeSlides).Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 3, report.Slides)
}

func TestNavCheckDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SlideNav)
		want   []string
	}{
		{
			name:   "missing dot",
			mutate: func(n *domain.SlideNav) { n.DotHrefs = n.DotHrefs[:2] },
			want:   []string{"expected 3 nav dots, found 2"},
		},
		{
			name: "dot order reports first mismatch only",
			mutate: func(n *domain.SlideNav) {
				n.DotHrefs = []string{"intro.html", "outro.html", "middle.html"}
			},
			want: []string{`dot 2: expected href="middle.html", found href="outro.html"`},
		},
		{
			name:   "two active dots",
			mutate: func(n *domain.SlideNav) { n.ActiveHrefs = []string{"middle.html", "intro.html"} },
			want:   []string{"expected exactly 1 active dot, found 2"},
		},
		{
			name:   "no active dot",
			mutate: func(n *domain.SlideNav) { n.ActiveHrefs = nil },
			want: []string{
				"expected exactly 1 active dot, found 0",
				`active dot href="", expected "middle.html"`,
			},
		},
		{
			name:   "wrong prev",
			mutate: func(n *domain.SlideNav) { n.PrevHref = domain.IndexHref },
			want:   []string{`prev link: expected "intro.html", found "../index.html"`},
		},
		{
			name:   "wrong next",
			mutate: func(n *domain.SlideNav) { n.NextHref = "" },
			want:   []string{`next link: expected "outro.html", found ""`},
		},
		{
			name:   "progress off",
			mutate: func(n *domain.SlideNav) { p := 50; n.Progress = &p },
			want:   []string{"progress bar: expected 67%, found 50%"},
		},
		{
			name:   "progress missing",
			mutate: func(n *domain.SlideNav) { n.Progress = nil },
			want:   []string{"progress bar not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middle := consistentNav(1)
			tt.mutate(&middle)
			source, parser := expectSlides(t, []domain.SlideNav{consistentNav(0), middle, consistentNav(2)})

			report, err := NewNavCheckService(source, parser, threeSlides).Check(context.Background())
			require.NoError(t, err)

			got := make([]string, 0, len(report.Diagnostics))
			for _, d := range report.Diagnostics {
				assert.Equal(t, "middle.html", d.File)
				got = append(got, d.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNavCheckMissingSlide(t *testing.T) {
	source := mocks.NewMockSlideSource(t)
	parser := mocks.NewMockNavParser(t)

	source.EXPECT().ReadSlide(mockAnyContext(), "intro.html").
		Return(nil, fmt.Errorf("intro.html: %w", domain.ErrSlideNotFound)).Once()
	source.EXPECT().ReadSlide(mockAnyContext(), "outro.html").Return([]byte("outro"), nil).Once()
	only := consistentNav(0)
	only.DotHrefs = []string{"intro.html", "outro.html"}
	only.ActiveHrefs = []string{"outro.html"}
	only.PrevHref = "intro.html"
	only.NextHref = domain.IndexHref
	progress := 100
	only.Progress = &progress
	parser.EXPECT().Parse([]byte("outro")).Return(only, nil).Once()

	report, err := NewNavCheckService(source, parser, []string{"intro", "outro"}).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "intro.html", report.Diagnostics[0].File)
	assert.Contains(t, report.Diagnostics[0].Message, "file not found")
}

func TestNavCheckEmptyOrder(t *testing.T) {
	_, err := NewNavCheckService(nil, nil, nil).Check(context.Background())
	require.ErrorIs(t, err, domain.ErrSlideOrderEmpty)
}

package detect

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tsawler/reveal/model"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func testPage(t *testing.T, fragments ...model.TextFragment) *model.Page {
	t.Helper()
	page := model.NewPage(testViewport(t))
	page.Number = 1
	for _, f := range fragments {
		page.AddFragment(f)
	}
	return page
}

func detectBoxes(page *model.Page, patterns ...string) []model.BBox {
	var boxes []model.BBox
	for _, r := range NewDetector().Detect(page, NormalizePatterns(patterns)) {
		boxes = append(boxes, r.BBox)
	}
	return boxes
}

func TestDetectSingleLineAnswer(t *testing.T) {
	page := testPage(t, frag("Answer: 42", 10, 88, 120, 12))

	got := NewDetector().Detect(page, NormalizePatterns([]string{"answer:"}))
	want := []model.AnswerRegion{{
		Page:          1,
		FragmentIndex: 0,
		Pattern:       "answer:",
		BBox: model.BBox{
			Left:   10 + 120*0.7 + 4, // just after "Answer:"
			Top:    88 - 0.3*12 - 2,  // no line above
			Right:  0.92 * testPageWidth,
			Bottom: 100 + 2,
		},
	}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectMultiLineWrap(t *testing.T) {
	// answerLeft = 10 + 110*7/11 + 4 = 84
	page := testPage(t,
		frag("Answer: foo", 10, 88, 110, 12),
		frag("bar baz", 84, 101, 60, 12),
	)

	got := detectBoxes(page, "answer:")
	if len(got) != 1 {
		t.Fatalf("expected 1 region, got %d", len(got))
	}
	if want := 113.0 + 2; got[0].Bottom != want {
		t.Errorf("Bottom = %v, want %v", got[0].Bottom, want)
	}
}

func TestDetectIgnoresLinesLeftOfAnswerColumn(t *testing.T) {
	page := testPage(t,
		frag("Answer: foo", 10, 88, 110, 12),
		frag("bar baz", 10, 101, 60, 12),
	)

	got := detectBoxes(page, "answer:")
	if len(got) != 1 {
		t.Fatalf("expected 1 region, got %d", len(got))
	}
	if want := 100.0 + 2; got[0].Bottom != want {
		t.Errorf("Bottom = %v, want %v", got[0].Bottom, want)
	}
}

func TestDetectStopsAtLabel(t *testing.T) {
	// answerLeft = 10 + 150*10/15 + 4 = 114
	page := testPage(t,
		frag("Q1. marker text", 10, 88, 150, 12),
		frag("(a) label line", 30, 101, 100, 12),
		frag("continuation text", 114, 103, 100, 12),
	)

	got := detectBoxes(page, "marker")
	if len(got) != 1 {
		t.Fatalf("expected 1 region, got %d", len(got))
	}
	if want := 100.0 + 2; got[0].Bottom != want {
		t.Errorf("Bottom = %v, want %v (label must end the answer)", got[0].Bottom, want)
	}
}

func TestDetectStopsAtNextMarker(t *testing.T) {
	page := testPage(t,
		frag("Answer: a", 10, 88, 90, 12),
		frag("Answer: b", 84, 101, 90, 12),
	)

	got := NewDetector().Detect(page, NormalizePatterns([]string{"answer:"}))
	if len(got) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(got))
	}
	if want := 100.0 + 2; got[0].BBox.Bottom != want {
		t.Errorf("first Bottom = %v, want %v", got[0].BBox.Bottom, want)
	}
	if got[1].FragmentIndex != 1 {
		t.Errorf("second region FragmentIndex = %d, want 1", got[1].FragmentIndex)
	}
}

func TestDetectStopsBelowContinuationLimit(t *testing.T) {
	// Limit is 100 + 1.5*12 = 118.
	page := testPage(t,
		frag("Answer: foo", 10, 88, 110, 12),
		frag("too far", 84, 119, 60, 12),
	)

	got := detectBoxes(page, "answer:")
	if want := 100.0 + 2; got[0].Bottom != want {
		t.Errorf("Bottom = %v, want %v", got[0].Bottom, want)
	}
}

func TestDetectSkipsUnpositionableFragments(t *testing.T) {
	page := testPage(t,
		frag("Answer: foo", 10, 88, 110, 12),
		frag("   ", 84, 95, 20, 12),
		frag("zero", 84, 95, 0, 12),
		frag("bar baz", 84, 101, 60, 12),
	)

	got := detectBoxes(page, "answer:")
	if want := 113.0 + 2; got[0].Bottom != want {
		t.Errorf("Bottom = %v, want %v", got[0].Bottom, want)
	}
}

func TestDetectBackwardScan(t *testing.T) {
	tests := []struct {
		name    string
		before  []model.TextFragment
		wantTop float64
	}{
		{
			name:    "no line above",
			wantTop: 88 - 3.6 - 2,
		},
		{
			name:    "single line above",
			before:  []model.TextFragment{frag("Question text", 10, 60, 100, 12)},
			wantTop: 72 + 3.6 - 2,
		},
		{
			name: "wrapped lines merge",
			before: []model.TextFragment{
				frag("Question first line", 10, 45, 100, 12),
				frag("second line", 10, 60, 100, 12),
			},
			wantTop: 57 + 3.6 - 2,
		},
		{
			name: "distant line stops the scan",
			before: []model.TextFragment{
				frag("Title", 10, 20, 100, 12),
				frag("Question text", 10, 60, 100, 12),
			},
			wantTop: 72 + 3.6 - 2,
		},
		{
			name:    "same-line fragment left of the answer is ignored",
			before:  []model.TextFragment{frag("1. ", 0, 88, 8, 12)},
			wantTop: 88 - 3.6 - 2,
		},
		{
			name:    "same-line label never pushes the top below the match",
			before:  []model.TextFragment{frag("(b) part", 200, 88, 50, 12)},
			wantTop: 88 - 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := append(append([]model.TextFragment{}, tt.before...), frag("Answer: 42", 10, 88, 120, 12))
			got := detectBoxes(testPage(t, fragments...), "answer:")
			if len(got) != 1 {
				t.Fatalf("expected 1 region, got %d", len(got))
			}
			if diff := cmp.Diff(tt.wantTop, got[0].Top, approx); diff != "" {
				t.Errorf("Top mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectNoMatch(t *testing.T) {
	page := testPage(t, frag("Answer: 42", 10, 88, 120, 12))
	if got := detectBoxes(page, "xyz"); len(got) != 0 {
		t.Errorf("expected no regions, got %v", got)
	}
}

func TestDetectEmptyPatterns(t *testing.T) {
	page := testPage(t, frag("Answer: 42", 10, 88, 120, 12))
	if got := NewDetector().Detect(page, nil); got != nil {
		t.Errorf("expected nil regions, got %v", got)
	}
	if got := NewDetector().Detect(nil, []string{"answer:"}); got != nil {
		t.Errorf("expected nil regions for nil page, got %v", got)
	}
}

func TestAnalyzeDropsUnpositionableAnchor(t *testing.T) {
	page := testPage(t,
		frag("Answer: hidden", 10, 40, 0, 12),
		frag("Answer: 42", 10, 88, 120, 12),
	)

	result := NewDetector().Analyze(page, []string{"answer:"})
	if result.Matches != 2 || result.Dropped != 1 {
		t.Errorf("Matches = %d, Dropped = %d, want 2 and 1", result.Matches, result.Dropped)
	}
	if len(result.Regions) != 1 || result.Regions[0].FragmentIndex != 1 {
		t.Errorf("Regions = %+v, want one region for fragment 1", result.Regions)
	}
}

func TestRegionBuilderOutOfRange(t *testing.T) {
	b := NewRegionBuilder(DefaultConfig(), NewLabelClassifier(), NewMatcher([]string{"a"}))
	if _, ok := b.Build(nil, testViewport(t), Match{FragmentIndex: 3}); ok {
		t.Error("expected out-of-range match to be rejected")
	}
}

func TestDetectWithCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RightMarginRatio = 0.5
	cfg.EdgePad = 0

	page := testPage(t, frag("Answer: 42", 10, 88, 120, 12))
	got := NewDetectorWithConfig(cfg).Detect(page, []string{"answer:"})
	if len(got) != 1 {
		t.Fatalf("expected 1 region, got %d", len(got))
	}
	if got[0].BBox.Right != 300 || got[0].BBox.Bottom != 100 {
		t.Errorf("BBox = %+v, want Right=300 Bottom=100", got[0].BBox)
	}
}

// randomPage lays out a column of short lines, some of which carry markers
// or labels.
func randomPage(t *testing.T, r *rand.Rand) *model.Page {
	words := []string{"Answer: x", "text", "(a) part", "2. item", "more words", "answer: y", " "}
	page := testPage(t)
	top := 20.0
	for i := 0; i < 40; i++ {
		h := 8 + r.Float64()*8
		left := 10 + r.Float64()*200
		page.AddFragment(frag(words[r.IntN(len(words))], left, top, 20+r.Float64()*200, h))
		if r.IntN(3) > 0 {
			top += h + r.Float64()*10
		}
	}
	return page
}

func TestDetectProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	d := NewDetector()
	patterns := NormalizePatterns([]string{"answer:"})
	vp := testViewport(t)

	for n := 0; n < 50; n++ {
		page := randomPage(t, r)

		first := d.Detect(page, patterns)
		if diff := cmp.Diff(first, d.Detect(page, patterns)); diff != "" {
			t.Fatalf("page %d: detection is not deterministic:\n%s", n, diff)
		}

		for _, region := range first {
			anchor, ok := FragmentBBox(page.Fragments[region.FragmentIndex], vp)
			if !ok {
				t.Fatalf("page %d: region for unpositionable fragment %d", n, region.FragmentIndex)
			}
			if region.BBox.Left < anchor.Left {
				t.Errorf("page %d: region left %v starts before match %v", n, region.BBox.Left, anchor.Left)
			}
			if region.BBox.Top > anchor.Top {
				t.Errorf("page %d: region top %v below match top %v", n, region.BBox.Top, anchor.Top)
			}
			if region.BBox.Right != 0.92*testPageWidth {
				t.Errorf("page %d: region right = %v, want %v", n, region.BBox.Right, 0.92*testPageWidth)
			}
			if region.BBox.Bottom < region.BBox.Top {
				t.Errorf("page %d: region %+v is inverted", n, region.BBox)
			}
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	bad := DefaultConfig()
	bad.RightMarginRatio = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for right_margin_ratio > 1")
	}

	bad = DefaultConfig()
	bad.ColumnSlack = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative column_slack")
	}
}

// Package detect locates answer markers among a page's text fragments and
// infers the rectangle covering each answer from typography geometry alone.
//
// # Detection
//
// The [Detector] runs both stages for one page:
//
//	patterns := detect.NormalizePatterns([]string{"Answer:"})
//	regions := detect.NewDetector().Detect(page, patterns)
//
// The [Matcher] records at most one match per fragment (the first pattern in
// list order found in its text). The [RegionBuilder] then places each answer:
//
//   - the left edge is interpolated from the match's character offset
//   - the right edge is a fixed fraction of the viewport width
//   - a backward scan finds the line or label bounding the answer from above
//   - a forward scan absorbs continuation lines until a label, another
//     marker, or a gap of more than a line and a half
//
// # Labels
//
// The [LabelClassifier] recognizes numbered ("1. ", "2) ") and lettered
// ("a. ", "(b) ", "[c] ") item labels. They are used only as stopping points.
//
// # Configuration
//
// All tolerances live in [Config]; [DefaultConfig] returns the tuned values.
// Detection is deterministic and keeps no state between pages, so it can be
// rerun whenever the pattern list changes.
package detect

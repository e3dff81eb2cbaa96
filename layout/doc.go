// Package layout reconstructs paragraphs, list items and right-aligned
// metadata lines from the positioned text fragments of a page.
//
// Coordinates are top-down pixels: y grows downward and every fragment is
// already scaled by the extractor.
//
// # Normalization
//
// The [Normalizer] runs every phase in order:
//
//	n := layout.NewNormalizer()
//	result := n.Normalize(page)
//	for _, b := range result.Blocks {
//	    fmt.Println(b.Type, b.IndentX, b.TextX, b.GetText())
//	}
//
// The input page is never modified. Fragments are copied into a working set
// owned by the call; the [Result] carries the translated copies with their
// BlockID set.
//
// # Phases
//
//   - [StatsCollector] - left/right anchor histograms and page leading
//   - [LineAggregator] - baseline clustering and line splitting
//   - [MarkerClassifier] - bullet glyphs, content anchors and gap flooring
//   - [ColumnSnapper] - column anchors, metadata detection and snapping
//   - [BlockAssembler] - paragraph/list grouping with hanging indents
//   - [NestingClassifier] - list levels from indent clusters
//
// Geometry is only ever changed by horizontal translation: a fragment's
// origin x and box x-edges move together, nothing is rescaled.
//
// # Configuration
//
// Each phase can be configured independently:
//
//	config := layout.DefaultNormalizerConfig()
//	config.BlockConfig.GapFactor = 1.4
//	config.MarkerConfig.HarmonizeSizes = false
//	n := layout.NewNormalizerWithConfig(config)
package layout

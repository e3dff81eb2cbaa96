package layout

import (
	"testing"

	"github.com/tsawler/pagenorm/model"
)

// snap runs lines, markers and column snapping over the fragments
func snap(fragments []model.Fragment, width float64) ([]*Line, *ColumnLayout) {
	lines := NewLineAggregator().Aggregate(fragments)
	NewMarkerClassifier().Classify(lines)
	return lines, NewColumnSnapper().Snap(lines, width)
}

func TestColumnSnapper_Empty(t *testing.T) {
	layout := NewColumnSnapper().Snap(nil, 612)

	if layout == nil {
		t.Fatal("Expected non-nil layout")
	}
	if layout.AnchorCount() != 0 {
		t.Errorf("Expected 0 anchors, got %d", layout.AnchorCount())
	}
	if layout.PageWidth != 612 {
		t.Errorf("Expected page width 612, got %.1f", layout.PageWidth)
	}
}

func TestColumnSnapper_RightMarginMetadata(t *testing.T) {
	lines, layout := snap([]model.Fragment{
		makeFragment("A paragraph that runs the full width", 72, 100, 468, 12),
		makeFragment("and wraps onto a second line", 72, 116, 300, 12),
		makeFragment("Jan 2020", 480, 148, 60.2, 12),
		makeFragment("March 2021", 470, 164, 69.8, 12),
	}, 612)

	if !layout.HasRightMargin() || len(layout.RightAnchors) != 1 {
		t.Fatalf("Expected one right anchor, got %v", layout.RightAnchors)
	}
	assertFloat(t, "right anchor", layout.RightAnchors[0], 540)
	if layout.Metadata != 2 {
		t.Errorf("Expected 2 metadata lines, got %d", layout.Metadata)
	}

	for _, l := range lines[2:] {
		if !l.IsMetadata {
			t.Errorf("Expected %q to be metadata", l.Content)
		}
		assertFloat(t, "metadata X1", l.X1, 540)
	}
	for _, l := range lines[:2] {
		if l.IsMetadata {
			t.Errorf("Paragraph line %q flagged as metadata", l.Content)
		}
		assertFloat(t, "paragraph X0", l.X0, 72)
	}
}

func TestColumnSnapper_FullWidthLineIsNotMetadata(t *testing.T) {
	lines, layout := snap([]model.Fragment{
		makeFragment("A single paragraph line", 72, 100, 468, 12),
	}, 612)

	if layout.HasRightMargin() {
		t.Errorf("Expected no right anchors, got %v", layout.RightAnchors)
	}
	if lines[0].IsMetadata {
		t.Error("Full-width line flagged as metadata")
	}
}

func TestColumnSnapper_LeftSnap(t *testing.T) {
	lines, layout := snap([]model.Fragment{
		makeFragment("one", 72, 100, 100, 12),
		makeFragment("two", 73.5, 116, 100, 12),
		makeFragment("three", 72, 132, 100, 12),
	}, 612)

	if len(layout.LeftAnchors) != 1 {
		t.Fatalf("Expected 1 left anchor, got %v", layout.LeftAnchors)
	}
	assertFloat(t, "left anchor", layout.LeftAnchors[0], 72.5)
	for _, l := range lines {
		assertFloat(t, "X0", l.X0, 72.5)
		assertFloat(t, "fragment origin", l.Fragments[0].Origin.X, 72.5)
	}
	if layout.Snapped != 3 {
		t.Errorf("Expected 3 snapped lines, got %d", layout.Snapped)
	}
}

func TestColumnSnapper_BulletExempt(t *testing.T) {
	lines, _ := snap([]model.Fragment{
		makeFragment("one", 72, 100, 100, 12),
		makeFragment("•", 73, 116, 6, 12),
		makeFragment("item", 90, 116, 30, 12),
		makeFragment("three", 72, 132, 100, 12),
	}, 612)

	assertFloat(t, "bullet X0", lines[1].X0, 73)
	if lines[0].X0 == 72 {
		t.Error("Expected body lines to snap onto the shared anchor")
	}
}

func TestColumnSnapper_ContentAnchors(t *testing.T) {
	_, layout := snap([]model.Fragment{
		makeFragment("•", 50, 100, 6, 12),
		makeFragment("First item", 80, 100, 60, 12),
		makeFragment("continues", 80.5, 116, 60, 12),
	}, 612)

	if len(layout.ContentAnchors) != 1 {
		t.Fatalf("Expected 1 content anchor, got %v", layout.ContentAnchors)
	}
	assertFloat(t, "content anchor", layout.ContentAnchors[0], 80.25)
}

func TestColumnSnapper_CustomConfig(t *testing.T) {
	config := DefaultSnapConfig()
	config.SnapTolerance = 0
	lines := NewLineAggregator().Aggregate([]model.Fragment{
		makeFragment("one", 72, 100, 100, 12),
		makeFragment("two", 73.5, 116, 100, 12),
	})
	layout := NewColumnSnapperWithConfig(config).Snap(lines, 612)

	if layout.Snapped != 0 {
		t.Errorf("Expected no snapping with zero tolerance, got %d", layout.Snapped)
	}
	assertFloat(t, "X0", lines[1].X0, 73.5)
}

func TestColumnSnapper_MarkerAnchors(t *testing.T) {
	_, layout := snap([]model.Fragment{
		makeFragment("•", 72, 100, 6, 12),
		makeFragment("one", 90, 100, 40, 12),
		makeFragment("•", 73, 116, 6, 12),
		makeFragment("two", 91, 116, 40, 12),
		makeFragment("–", 78, 132, 6, 12),
		makeFragment("nested", 96, 132, 40, 12),
	}, 612)

	if len(layout.MarkerAnchors) != 2 {
		t.Fatalf("Expected 2 marker anchors, got %v", layout.MarkerAnchors)
	}
	assertFloat(t, "first marker anchor", layout.MarkerAnchors[0], 72.5)
	assertFloat(t, "second marker anchor", layout.MarkerAnchors[1], 78)
	if len(layout.LeftAnchors) != 1 {
		t.Errorf("Expected the coarse left clustering to merge all markers, got %v", layout.LeftAnchors)
	}
}

func TestColumnSnapper_RecurringRightEdge(t *testing.T) {
	fragments := []model.Fragment{
		makeFragment("A summary paragraph reaching far into the margin", 72, 100, 528, 12),
		makeFragment("2019 - 2021", 480, 116, 60, 12),
		makeFragment("2016 - 2019", 480, 148, 60, 12),
	}
	stats := NewStatsCollector().Collect(fragments, 612)

	_, plain := snap(fragments, 612)
	if plain.HasRightMargin() {
		t.Errorf("Expected no right anchor outside the band without stats, got %v", plain.RightAnchors)
	}

	lines := NewLineAggregator().Aggregate(fragments)
	NewMarkerClassifier().Classify(lines)
	layout := NewColumnSnapper().SnapWithStats(lines, 612, stats)
	if len(layout.RightAnchors) != 1 || layout.Metadata != 2 {
		t.Fatalf("Expected the recurring edge to confirm one right anchor, got %v (%d metadata)",
			layout.RightAnchors, layout.Metadata)
	}
	assertFloat(t, "right anchor", layout.RightAnchors[0], 540)
}

func TestColumnSnapper_ItemTextNotSnapped(t *testing.T) {
	linked := makeFragment("Linked item", 400, 100, 140, 12)
	linked.Link = "https://example.com"
	lines, layout := snap([]model.Fragment{
		makeFragment("•", 385, 100, 6, 12),
		linked,
	}, 612)

	if len(lines) != 2 || lines[1].itemOf != lines[0] {
		t.Fatalf("Expected the linked text attached to the marker")
	}
	if lines[1].IsMetadata || layout.Metadata != 0 {
		t.Error("Item text should not be taken for right-aligned metadata")
	}
	assertFloat(t, "item text X0", lines[1].X0, 400)
}

package layout

import "testing"

func TestNestingClassifier_Levels(t *testing.T) {
	tests := []struct {
		name       string
		indents    []float64
		wantLevels []int
		wantCount  int
	}{
		{"three levels", []float64{72, 92, 112}, []int{0, 1, 2}, 3},
		{"out of order", []float64{112, 72, 92, 72}, []int{2, 0, 1, 0}, 3},
		{"jitter within tolerance", []float64{72, 74, 92}, []int{0, 0, 1}, 2},
		{"single level", []float64{50, 50}, []int{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var blocks []*Block
			for _, x := range tt.indents {
				blocks = append(blocks, &Block{Type: BlockListItem, IndentX: x, TextX: x + 15})
			}

			count := NewNestingClassifier().Classify(blocks)
			if count != tt.wantCount {
				t.Errorf("Expected %d levels, got %d", tt.wantCount, count)
			}
			for i, b := range blocks {
				if b.Level != tt.wantLevels[i] {
					t.Errorf("Block %d at %.0f: level %d, want %d", i, b.IndentX, b.Level, tt.wantLevels[i])
				}
			}
		})
	}
}

func TestNestingClassifier_IgnoresParagraphs(t *testing.T) {
	blocks := []*Block{
		{Type: BlockParagraph, IndentX: 20},
		{Type: BlockListItem, IndentX: 72},
		{Type: BlockListItem, IndentX: 92},
		{Type: BlockMetadata, IndentX: 480},
	}

	NewNestingClassifier().Classify(blocks)

	want := []int{0, 0, 1, 0}
	for i, b := range blocks {
		if b.Level != want[i] {
			t.Errorf("Block %d: level %d, want %d", i, b.Level, want[i])
		}
	}
}

func TestNestingClassifier_CustomTolerance(t *testing.T) {
	config := DefaultNestingConfig()
	config.Tolerance = 25
	blocks := []*Block{
		{Type: BlockListItem, IndentX: 72},
		{Type: BlockListItem, IndentX: 92},
	}

	if count := NewNestingClassifierWithConfig(config).Classify(blocks); count != 1 {
		t.Errorf("Expected 1 level with a wide tolerance, got %d", count)
	}
}

func TestNestingClassifier_Empty(t *testing.T) {
	if count := NewNestingClassifier().Classify(nil); count != 0 {
		t.Errorf("Expected 0 levels, got %d", count)
	}
}

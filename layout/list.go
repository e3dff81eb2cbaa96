package layout

// NestingConfig holds configuration for list nesting classification
type NestingConfig struct {
	// Tolerance is the maximum gap between indents of one level (default: 4.5px)
	Tolerance float64
}

// DefaultNestingConfig returns sensible default configuration
func DefaultNestingConfig() NestingConfig {
	return NestingConfig{
		Tolerance: 4.5,
	}
}

// NestingClassifier assigns list levels from indent positions
type NestingClassifier struct {
	config NestingConfig
}

// NewNestingClassifier creates a new classifier with default configuration
func NewNestingClassifier() *NestingClassifier {
	return &NestingClassifier{
		config: DefaultNestingConfig(),
	}
}

// NewNestingClassifierWithConfig creates a classifier with custom configuration
func NewNestingClassifierWithConfig(config NestingConfig) *NestingClassifier {
	return &NestingClassifier{
		config: config,
	}
}

// Classify sets Level on every list-item block to the rank of its indent
// cluster, 0 for the leftmost. It returns the number of distinct levels.
func (c *NestingClassifier) Classify(blocks []*Block) int {
	var indents []float64
	for _, b := range blocks {
		if b.IsListItem() {
			indents = append(indents, b.IndentX)
		}
	}
	clusters := clusterValues(indents, c.config.Tolerance)

	for _, b := range blocks {
		if !b.IsListItem() {
			b.Level = 0
			continue
		}
		level := clusterIndex(clusters, b.IndentX, 0)
		if level < 0 {
			level = 0
		}
		b.Level = level
	}

	return len(clusters)
}

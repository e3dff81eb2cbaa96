package pdfsource

import (
	"github.com/tidwall/rtree"

	"github.com/tsawler/pagenorm/model"
)

// linkIndex answers "which URI covers this point" for a page's link
// annotations
type linkIndex struct {
	tree  rtree.RTreeG[int]
	links []model.BgItem
}

func newLinkIndex(links []model.BgItem) *linkIndex {
	idx := &linkIndex{links: links}
	for i, l := range links {
		r := l.BBox.Normalize()
		idx.tree.Insert([2]float64{r.X0, r.Y0}, [2]float64{r.X1, r.Y1}, i)
	}
	return idx
}

// lookup returns the URI of the smallest link rectangle containing p. Ties
// resolve to the annotation listed first.
func (idx *linkIndex) lookup(p model.Point) string {
	if idx == nil || len(idx.links) == 0 {
		return ""
	}

	best := -1
	bestArea := 0.0
	pt := [2]float64{p.X, p.Y}
	idx.tree.Search(pt, pt, func(_, _ [2]float64, i int) bool {
		r := idx.links[i].BBox.Normalize()
		area := r.Width() * r.Height()
		if best < 0 || area < bestArea || (area == bestArea && i < best) {
			best = i
			bestArea = area
		}
		return true
	})

	if best < 0 {
		return ""
	}
	return idx.links[best].URI
}

// len returns the number of indexed links
func (idx *linkIndex) len() int {
	if idx == nil {
		return 0
	}
	return idx.tree.Len()
}

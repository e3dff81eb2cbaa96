// Package model provides the geometric and content types shared by the
// extractor, the layout normalization engine and the exporters.
//
// # Geometry
//
// Coordinates are top-down pixel space: y grows toward the bottom of the
// page. Geometric primitives support positioning and snapping:
//
//   - [Rect] - axis-aligned box with union, translation and containment
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation matrix
//
// # Page Content
//
// A [Page] is the engine input: positioned text [Fragment] values plus
// non-text [BgItem] values (images, vector paths, link annotations) that
// pass through normalization untouched.
//
//	page := model.Page{Index: 0, Width: 816, Height: 1056}
//	page.Fragments = append(page.Fragments, model.Fragment{
//	    Content: "Hello",
//	    Origin:  model.Point{X: 72, Y: 100},
//	    BBox:    model.Rect{X0: 72, Y0: 88, X1: 110, Y1: 103},
//	    Font:    "Inter",
//	    Size:    12,
//	})
package model

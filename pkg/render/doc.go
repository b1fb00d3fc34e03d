// Package render draws floorplans with Graphviz.
//
// [ToDOT] turns a problem and an optional solution into DOT source for the
// neato engine. Every element is pinned to its grid position, so Graphviz
// only draws; it never moves anything. Regions appear as labelled boxes
// over the fabric, and each pair of communicating regions is joined by an
// edge whose width grows with the wire count.
//
//	dot := render.ToDOT(p, sol, render.Options{Tiles: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// The DOT output can also be saved and fed to the graphviz command line
// tools (neato -n2 -Tpng).
package render

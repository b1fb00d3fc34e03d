// Package fpga models the FPGA fabric a floorplan is drawn on.
//
// A [Grid] is an immutable rows × columns matrix of [Tile] values together
// with two column masks: the columns a region may use as its left edge and
// the columns it may use as its right edge. A grid may also be partitioned
// into clock regions of fixed height; placements then have to start on a
// clock-region boundary and span whole clock regions.
//
// Resource accounting lives here as well. [Coverage] tallies the tiles under
// a [Rect] by type, and the two predicates [HasForbidden] and [MeetsDemand]
// are the only feasibility checks placement strategies use:
//
//	counts, err := fpga.Coverage(g, fpga.Rect{Col: 0, Row: 2, Width: 4, Height: 1})
//	if err != nil {
//	    return err
//	}
//	ok := !fpga.HasForbidden(counts) && fpga.MeetsDemand(counts, demand)
//
// [CoverageIndex] answers the same query in constant time and is meant for
// strategies that evaluate many candidate rectangles.
package fpga

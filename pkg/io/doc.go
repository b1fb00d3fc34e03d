// Package io reads and writes the line-oriented text formats of the
// floorplanning contest.
//
// A problem file holds, one item per line, the problem id, the weights
// "P Aw Ww" and "CLBw BRAMw DSPw", the grid size "R C", an optional clock
// region height (extended format only), R rows of C tile codes, the
// valid-left and valid-right masks, the region count N, the N region
// descriptions and the N×N communication matrix. Plain regions are written
// "CLB BRAM DSP"; extended regions are "kind CLB BRAM DSP numIo" followed by
// numIo lines of "column row wires".
//
// A solution file holds the problem id and, unless the floorplanner failed,
// one "column row width height" line per region with 1-based column and row.
//
// Both formats are parsed with [ReadProblem] and [ReadSolution] and
// produced with [WriteProblem] and [WriteSolution]. Errors carry
// errors.ErrCodeParse (or ErrCodeMalformedGrid for an inconsistent grid),
// never an infeasibility code.
package io

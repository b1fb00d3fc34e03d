// Package pkg provides the libraries behind the floorplan FPGA floorplanner.
//
// # Overview
//
// A floorplanning problem describes an FPGA fabric as a grid of typed tiles
// (CLB, BRAM, DSP, null, forbidden) plus a list of regions, each needing a
// number of tiles of every resource type. A solution gives every region a
// rectangle of the grid that covers its demand, starts and ends on columns
// marked valid, is aligned to clock regions and overlaps neither forbidden
// tiles nor other regions. Solutions are scored by
//
//	P − Aw·area − Ww·wirelength
//
// # Architecture
//
// The typical data flow:
//
//	problem file
//	     ↓
//	[io] ReadProblem (text codec, plain and extended variants)
//	     ↓
//	[problem] Problem{Grid, Regions, Comm} built on [fpga]
//	     ↓
//	[placer] Strategy.Place (greedy baseline or backtracking search)
//	     ↓
//	[score] Score, [placer] Verify
//	     ↓
//	[io] WriteSolution
//
// [pipeline] runs this flow for the CLI and the HTTP API with caching
// ([cache]), run history ([store]) and batch execution over directories.
//
// # Quick Start
//
//	p, err := io.ReadProblemFile("problem.txt")
//	if err != nil {
//	    return err
//	}
//	s, _ := placer.New(placer.StrategyGreedy)
//	sol, infeasible, err := placer.Solve(ctx, s, p)
//	if err != nil {
//	    return err
//	}
//	if infeasible != nil {
//	    log.Warn("no placement", "reason", infeasible.Reason)
//	}
//	return io.WriteSolution(os.Stdout, sol)
//
// # Main Packages
//
// [fpga] - Tile types, the immutable device grid with its column masks and
// clock region height, rectangles, and O(1) coverage queries via
// per-type prefix sums.
//
// [problem] - Problem instances, weights, the communication matrix and
// solutions.
//
// [placer] - The Strategy interface, the registry of named strategies,
// the greedy baseline, a bounded backtracking search and the constraint
// checker.
//
// [score] - Area and wirelength terms of the objective.
//
// [io] - Readers and writers for the problem and solution text formats.
//
// ## Infrastructure
//
// [pipeline] - Runner (solve, score, batch) shared by CLI and API.
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [store] - Run history in memory or MongoDB.
//
// [config] - TOML configuration.
//
// [render] - Graphviz DOT and SVG drawings of floorplans.
//
// [observability] - Hooks for solve, cache and server events.
//
// [errors] - Error codes shared by every package.
//
// # Testing
//
//	go test ./...                                 # Unit tests
//	go test -run Example ./pkg/...                # Examples only
//	go test -tags integration ./pkg/cache/...     # Needs FLOORPLAN_REDIS_ADDR
//	go test -tags integration ./pkg/store/...     # Needs FLOORPLAN_MONGO_URI
package pkg

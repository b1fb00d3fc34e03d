package fpga

import (
	"fmt"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// Tile is the type of a single fabric location.
type Tile uint8

const (
	// Null tiles carry no resources but may be covered.
	Null Tile = iota
	// CLB is a configurable logic block tile.
	CLB
	// BRAM is a block RAM tile.
	BRAM
	// DSP is a DSP slice tile.
	DSP
	// Forbidden tiles may not be covered by any region.
	Forbidden
)

// numTiles is the number of distinct tile types.
const numTiles = 5

var tileCodes = [numTiles]byte{
	Null:      '-',
	CLB:       'C',
	BRAM:      'B',
	DSP:       'D',
	Forbidden: 'F',
}

var tileNames = [numTiles]string{
	Null:      "null",
	CLB:       "CLB",
	BRAM:      "BRAM",
	DSP:       "DSP",
	Forbidden: "forbidden",
}

// ParseTile converts the single-character code used in problem files.
func ParseTile(s string) (Tile, error) {
	if len(s) == 1 {
		for t, c := range tileCodes {
			if s[0] == c {
				return Tile(t), nil
			}
		}
	}
	return Null, errors.New(errors.ErrCodeParse, "unknown tile type %q (want one of C, B, D, F, -)", s)
}

// Code returns the single-character code of the tile.
func (t Tile) Code() byte {
	if int(t) < numTiles {
		return tileCodes[t]
	}
	return '?'
}

// String returns a readable tile name.
func (t Tile) String() string {
	if int(t) < numTiles {
		return tileNames[t]
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// Tiles returns every tile type in code order.
func Tiles() []Tile {
	return []Tile{CLB, BRAM, DSP, Forbidden, Null}
}

// Package parser walks a static fragment once, records a part descriptor for
// every placeholder it finds and leaves anchor nodes behind so each
// descriptor's index can be found again in any clone of the fragment.
package parser

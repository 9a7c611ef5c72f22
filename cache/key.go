package cache

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
)

// priorPrecision is the fixed binary precision priors are rounded to
// before canonicalization, per spec §4.6 (recommended 2^-40): enough
// resolution to distinguish any realistic conditioned-prior assignment
// while making floating-point noise from repeated arithmetic collapse
// to the same canonical value.
const priorPrecision = 1.0 / (1 << 40)

// Key identifies one memoized sub-problem: a canonicalized edge list
// paired with a canonicalized, precision-rounded prior assignment. Canon
// is the byte-exact form Cache looks entries up by, so a lookup is a hit
// only when the full canonical bytes match; Hash is the xxhash digest of
// Canon and is not consulted by Cache.
type Key struct {
	Hash  uint64
	Canon string
}

// NewKey canonicalizes edges (sorted by (Src, Dst)) and priors (sorted
// by NodeID, values rounded to priorPrecision) into a single Key.
//
// Complexity: O(n log n + m log m) for n edges and m priors.
func NewKey(edges []graphmodel.EdgeID, priors map[graphmodel.NodeID]float64) Key {
	sortedEdges := make([]graphmodel.EdgeID, len(edges))
	copy(sortedEdges, edges)
	sort.Slice(sortedEdges, func(i, j int) bool {
		if sortedEdges[i].Src != sortedEdges[j].Src {
			return sortedEdges[i].Src < sortedEdges[j].Src
		}

		return sortedEdges[i].Dst < sortedEdges[j].Dst
	})

	ids := make([]graphmodel.NodeID, 0, len(priors))
	for id := range priors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	buf := make([]byte, 0, 16*len(sortedEdges)+16*len(ids))
	var tmp [8]byte
	for _, e := range sortedEdges {
		binary.LittleEndian.PutUint64(tmp[:], uint64(e.Src))
		buf = append(buf, tmp[:]...)
		binary.LittleEndian.PutUint64(tmp[:], uint64(e.Dst))
		buf = append(buf, tmp[:]...)
	}
	for _, id := range ids {
		binary.LittleEndian.PutUint64(tmp[:], uint64(id))
		buf = append(buf, tmp[:]...)
		rounded := roundToPrecision(priors[id])
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(rounded))
		buf = append(buf, tmp[:]...)
	}

	return Key{
		Hash:  xxhash.Sum64(buf),
		Canon: string(buf),
	}
}

// roundToPrecision snaps p to the nearest multiple of priorPrecision so
// that two priors differing only by floating-point noise canonicalize
// identically.
func roundToPrecision(p float64) float64 {
	return math.Round(p/priorPrecision) * priorPrecision
}

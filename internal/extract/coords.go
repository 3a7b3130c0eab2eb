package extract

import (
	"context"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// progressInterval is how often the passes log a progress line.
const progressInterval = 10_000_000

// CoordIndex maps node ids to their (lon, lat) coordinate. Built once
// in pass 1, read-only during pass 2, then discarded. One entry per
// distinct node in the input; this is the pipeline's dominant memory
// cost.
type CoordIndex map[osm.NodeID]orb.Point

// BuildCoordIndex runs pass 1: a single forward scan recording the
// coordinate of every node. Dense and plain node encodings both arrive
// as *osm.Node from the decoder. Duplicate ids are last-write-wins.
// Any decode error aborts the pass; a partial index is never returned.
func BuildCoordIndex(ctx context.Context, r io.ReadSeeker, procs int) (CoordIndex, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, eris.Wrap(err, "extract: seek input")
	}

	scanner := osmpbf.New(ctx, r, procs)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	coords := make(CoordIndex)
	var count int64

	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		coords[node.ID] = orb.Point{node.Lon, node.Lat}

		count++
		if count%progressInterval == 0 {
			zap.L().Info("pass 1 progress", zap.Int64("nodes", count))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "extract: pass 1 scan")
	}

	zap.L().Info("pass 1 complete", zap.Int("node_coordinates", len(coords)))
	return coords, nil
}

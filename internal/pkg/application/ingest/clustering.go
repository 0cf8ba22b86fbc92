package ingest

import (
	"math"

	"github.com/opentracker/gps-device-mgmt/pkg/types"
)

const (
	// DefaultClusterDistance is how far a tracker must move, in meters,
	// before its cached current position follows along.
	DefaultClusterDistance = 2.0

	// HistoryClusterDistance collapses jitter when history is read back.
	HistoryClusterDistance = 25.0
)

const earthRadiusM = 6371000.0

// Distance returns the great circle distance in meters between two
// coordinates, by the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Cluster collapses runs of points that stay within dist meters of the run's
// first point, keeping that first point as the representative. The relative
// order of the kept points is preserved, so any two neighbours in the result
// are at least dist meters apart.
func Cluster(points []types.LocationPoint, dist float64) []types.LocationPoint {
	if len(points) < 2 {
		return points
	}

	clustered := make([]types.LocationPoint, 0, len(points))
	anchor := points[0]
	clustered = append(clustered, anchor)

	for _, p := range points[1:] {
		if Distance(anchor.Latitude, anchor.Longitude, p.Latitude, p.Longitude) < dist {
			continue
		}
		anchor = p
		clustered = append(clustered, p)
	}

	return clustered
}

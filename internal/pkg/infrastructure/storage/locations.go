package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AppendLocations stores a batch of points and bumps the device bookkeeping
// in one transaction. When current is non nil the representative position
// cache on the device row moves with it; a batch of stationary points keeps
// the cache where it was. A non empty powerStatus moves the device power
// state in the same transaction.
func (s *Storage) AppendLocations(ctx context.Context, deviceID string, points []types.LocationPoint, current *types.LocationPoint, powerStatus string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}

	for _, p := range points {
		batch.Queue(`
			INSERT INTO locations (device_id, latitude, longitude, speed, altitude, accuracy, satellites, power_status, observed_at)
			VALUES (@device_id, @latitude, @longitude, @speed, @altitude, @accuracy, @satellites, @power_status, @observed_at)
		`, pgx.NamedArgs{
			"device_id":    deviceID,
			"latitude":     p.Latitude,
			"longitude":    p.Longitude,
			"speed":        p.Speed,
			"altitude":     p.Altitude,
			"accuracy":     p.Accuracy,
			"satellites":   p.Satellites,
			"power_status": nullable(p.PowerStatus),
			"observed_at":  p.Timestamp.UTC(),
		})
	}

	if current != nil {
		batch.Queue(`
			UPDATE devices
			SET position = point(@lon,@lat), position_at = @observed_at, power_status = COALESCE(@power_status, power_status), last_seen = CURRENT_TIMESTAMP, modified_on = CURRENT_TIMESTAMP
			WHERE device_id = @device_id
		`, pgx.NamedArgs{
			"device_id":    deviceID,
			"lat":          current.Latitude,
			"lon":          current.Longitude,
			"observed_at":  current.Timestamp.UTC(),
			"power_status": nullable(powerStatus),
		})
	} else {
		batch.Queue(`
			UPDATE devices
			SET power_status = COALESCE(@power_status, power_status), last_seen = CURRENT_TIMESTAMP, modified_on = CURRENT_TIMESTAMP
			WHERE device_id = @device_id
		`, pgx.NamedArgs{
			"device_id":    deviceID,
			"power_status": nullable(powerStatus),
		})
	}

	err = tx.SendBatch(ctx, batch).Close()
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Storage) QueryLocations(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.LocationPoint], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, latitude, longitude, speed, altitude, accuracy, satellites, power_status, observed_at
		FROM locations
		WHERE %s
		ORDER BY observed_at %s, location_id %s
		%s
	`, condition.Where(), condition.SortOrder(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.LocationPoint]{}, err
	}
	defer rows.Close()

	points := make([]types.LocationPoint, 0)

	for rows.Next() {
		var p types.LocationPoint
		var powerStatus *string
		var observedAt time.Time

		err = rows.Scan(&p.DeviceID, &p.Latitude, &p.Longitude, &p.Speed, &p.Altitude, &p.Accuracy, &p.Satellites, &powerStatus, &observedAt)
		if err != nil {
			return types.Collection[types.LocationPoint]{}, err
		}

		if powerStatus != nil {
			p.PowerStatus = *powerStatus
		}
		p.Timestamp = observedAt

		points = append(points, p)
	}

	if rows.Err() != nil {
		return types.Collection[types.LocationPoint]{}, rows.Err()
	}

	return types.Collection[types.LocationPoint]{
		Data:       points,
		Count:      uint64(len(points)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(len(points)),
	}, nil
}

func (s *Storage) CurrentPositions(ctx context.Context) ([]types.DevicePosition, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT device_id, name, position, position_at
		FROM devices
		WHERE position IS NOT NULL
		ORDER BY device_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]types.DevicePosition, 0)

	for rows.Next() {
		var deviceID, name string
		var position pgtype.Point
		var positionAt time.Time

		err = rows.Scan(&deviceID, &name, &position, &positionAt)
		if err != nil {
			return nil, err
		}

		positions = append(positions, types.DevicePosition{
			DeviceID:  deviceID,
			Name:      name,
			Latitude:  position.P.Y,
			Longitude: position.P.X,
			Timestamp: positionAt,
		})
	}

	return positions, rows.Err()
}

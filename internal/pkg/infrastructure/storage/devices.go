package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AddDevice inserts a new device row. The boolean result is false when a
// device with the same id already existed, concurrent registrations are
// settled by the primary key rather than by a read-then-write race.
func (s *Storage) AddDevice(ctx context.Context, device types.Device) (bool, error) {
	if device.PowerStatus == "" {
		device.PowerStatus = types.PowerStatusOn
	}

	args := pgx.NamedArgs{
		"device_id":      device.DeviceID,
		"owner":          nullable(device.Owner),
		"name":           device.Name,
		"client_type":    nullable(device.ClientType),
		"power_status":   device.PowerStatus,
		"sleep_interval": device.Settings.SleepInterval,
		"send_interval":  device.Settings.SendInterval,
		"satellites":     device.Settings.Satellites,
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO devices (device_id, owner, name, client_type, power_status, sleep_interval, send_interval, satellites)
		VALUES (@device_id, @owner, @name, @client_type, @power_status, @sleep_interval, @send_interval, @satellites)
		ON CONFLICT (device_id) DO NOTHING
	`, args)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// ClaimDevice assigns an owner to a device that has none. The boolean result
// is false when the device was already owned, ownership never transfers.
func (s *Storage) ClaimDevice(ctx context.Context, deviceID, owner string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET owner = @owner, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id AND owner IS NULL
	`, pgx.NamedArgs{
		"device_id": deviceID,
		"owner":     owner,
	})
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (s *Storage) GetDevice(ctx context.Context, conditions ...ConditionFunc) (types.Device, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, owner, name, client_type, power_status, sleep_interval, send_interval, satellites, position, position_at, last_seen, created_on, modified_on
		FROM devices
		WHERE %s
	`, condition.Where())

	row := s.pool.QueryRow(ctx, query, condition.NamedArgs())

	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Device{}, ErrNoRows
		}
		return types.Device{}, err
	}

	return device, nil
}

func (s *Storage) QueryDevices(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Device], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, owner, name, client_type, power_status, sleep_interval, send_interval, satellites, position, position_at, last_seen, created_on, modified_on
		FROM devices
		WHERE %s
		ORDER BY device_id %s
		%s
	`, condition.Where(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Device]{}, err
	}
	defer rows.Close()

	devices := make([]types.Device, 0)

	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return types.Collection[types.Device]{}, err
		}
		devices = append(devices, device)
	}

	if rows.Err() != nil {
		return types.Collection[types.Device]{}, rows.Err()
	}

	return types.Collection[types.Device]{
		Data:       devices,
		Count:      uint64(len(devices)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(len(devices)),
	}, nil
}

func (s *Storage) SetPowerStatus(ctx context.Context, deviceID, powerStatus string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET power_status = @power_status, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id
	`, pgx.NamedArgs{
		"device_id":    deviceID,
		"power_status": powerStatus,
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (s *Storage) UpdateSettings(ctx context.Context, deviceID string, settings types.DeviceSettings) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET sleep_interval = @sleep_interval, send_interval = @send_interval, satellites = @satellites, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id
	`, pgx.NamedArgs{
		"device_id":      deviceID,
		"sleep_interval": settings.SleepInterval,
		"send_interval":  settings.SendInterval,
		"satellites":     settings.Satellites,
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func scanDevice(row pgx.Row) (types.Device, error) {
	var deviceID, name string
	var owner, clientType *string
	var powerStatus string
	var sleepInterval, sendInterval, satellites int
	var position pgtype.Point
	var positionAt, lastSeen *time.Time
	var createdOn, modifiedOn time.Time

	err := row.Scan(&deviceID, &owner, &name, &clientType, &powerStatus,
		&sleepInterval, &sendInterval, &satellites,
		&position, &positionAt, &lastSeen, &createdOn, &modifiedOn)
	if err != nil {
		return types.Device{}, err
	}

	device := types.Device{
		DeviceID:    deviceID,
		Name:        name,
		PowerStatus: powerStatus,
		Settings: types.DeviceSettings{
			SleepInterval: sleepInterval,
			SendInterval:  sendInterval,
			Satellites:    satellites,
		},
		CreatedOn:  createdOn,
		ModifiedOn: modifiedOn,
	}

	if owner != nil {
		device.Owner = *owner
	}
	if clientType != nil {
		device.ClientType = *clientType
	}
	if lastSeen != nil {
		device.LastSeen = *lastSeen
	}
	if position.Valid && positionAt != nil {
		device.Position = &types.DevicePosition{
			DeviceID:  deviceID,
			Name:      name,
			Latitude:  position.P.Y,
			Longitude: position.P.X,
			Timestamp: *positionAt,
		}
	}

	return device, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

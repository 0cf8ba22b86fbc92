package types

import (
	"time"
)

const (
	PowerStatusOn  = "ON"
	PowerStatusOff = "OFF"
)

const (
	InstructionNone    = "NONE"
	InstructionTurnOff = "TURN_OFF"
	InstructionTurnOn  = "TURN_ON"
)

// MaxDeviceIDLength bounds external device identifiers. The tracker hardware
// uses ten character ids but the limit leaves room for other client types.
const MaxDeviceIDLength = 16

type Device struct {
	DeviceID   string `json:"device_id"`
	Owner      string `json:"owner,omitempty"`
	Name       string `json:"name"`
	ClientType string `json:"client_type,omitempty"`

	PowerStatus string `json:"power_status"`

	Settings DeviceSettings `json:"settings"`

	Position   *DevicePosition `json:"position,omitempty"`
	LastSeen   time.Time       `json:"last_seen,omitzero"`
	CreatedOn  time.Time       `json:"created_on,omitzero"`
	ModifiedOn time.Time       `json:"modified_on,omitzero"`
}

type DeviceSettings struct {
	SleepInterval int `json:"sleep_interval" yaml:"sleep_interval"`
	SendInterval  int `json:"send_interval" yaml:"send_interval"`
	Satellites    int `json:"satellites" yaml:"satellites"`
}

const (
	MinSleepInterval = 1
	MaxSleepInterval = 3600
)

// DefaultSettings returns the settings a device starts out with before its
// owner has tuned anything.
func DefaultSettings() DeviceSettings {
	return DeviceSettings{
		SleepInterval: 60,
		SendInterval:  1,
		Satellites:    5,
	}
}

// Valid reports whether the settings fall within the protocol bounds.
func (s DeviceSettings) Valid() bool {
	if s.SleepInterval < MinSleepInterval || s.SleepInterval > MaxSleepInterval {
		return false
	}
	if s.SendInterval < 1 {
		return false
	}
	if s.Satellites < 0 || s.Satellites > MaxSatellites {
		return false
	}
	return true
}

const (
	MinAltitude   = -1000.0
	MaxAltitude   = 10000.0
	MaxAccuracy   = 100.0
	MaxSatellites = 50
	MaxSpeed      = 1000.0
)

type LocationPoint struct {
	DeviceID    string    `json:"device_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Speed       *float64  `json:"speed,omitempty"`
	Altitude    *float64  `json:"altitude,omitempty"`
	Accuracy    *float64  `json:"accuracy,omitempty"`
	Satellites  *int      `json:"satellites,omitempty"`
	PowerStatus string    `json:"power_status,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Validate checks the point against the protocol bounds. A nil optional
// field is valid, the device simply had no reading for it.
func (p LocationPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return &FieldError{Field: "latitude", Value: p.Latitude}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return &FieldError{Field: "longitude", Value: p.Longitude}
	}
	if p.Speed != nil && (*p.Speed < 0 || *p.Speed > MaxSpeed) {
		return &FieldError{Field: "speed", Value: *p.Speed}
	}
	if p.Altitude != nil && (*p.Altitude < MinAltitude || *p.Altitude > MaxAltitude) {
		return &FieldError{Field: "altitude", Value: *p.Altitude}
	}
	if p.Accuracy != nil && (*p.Accuracy < 0 || *p.Accuracy > MaxAccuracy) {
		return &FieldError{Field: "accuracy", Value: *p.Accuracy}
	}
	if p.Satellites != nil && (*p.Satellites < 0 || *p.Satellites > MaxSatellites) {
		return &FieldError{Field: "satellites", Value: *p.Satellites}
	}
	return nil
}

type FieldError struct {
	Field string
	Value any
}

func (e *FieldError) Error() string {
	return "field " + e.Field + " is out of range"
}

type DevicePosition struct {
	DeviceID  string    `json:"device_id"`
	Name      string    `json:"name,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type InstructionToken struct {
	Token     string    `json:"token"`
	DeviceID  string    `json:"device_id"`
	Kind      string    `json:"kind"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"consumed"`
}

// Live reports whether the token can still be acknowledged.
func (t InstructionToken) Live(now time.Time) bool {
	return !t.Consumed && t.Token != "" && now.Before(t.ExpiresAt)
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v2"
)

var tracer = otel.Tracer("gps-device-mgmt/registry")

var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrInvalidDeviceID = fmt.Errorf("invalid device id")
var ErrInvalidSettings = fmt.Errorf("settings out of range")

// RegistrationStatus tells the caller how a register call was resolved.
type RegistrationStatus string

const (
	RegistrationCreated      RegistrationStatus = "created"
	RegistrationAlreadyOwned RegistrationStatus = "already_owned"
	RegistrationConflict     RegistrationStatus = "conflict"
)

type RegisterResult struct {
	Status RegistrationStatus
	Device types.Device
}

//go:generate moq -rm -out registry_mock.go . DeviceRegistry
type DeviceRegistry interface {
	Register(ctx context.Context, owner, deviceID, name, clientType string) (RegisterResult, error)
	EnsureDevice(ctx context.Context, deviceID string) (types.Device, error)

	GetDevice(ctx context.Context, deviceID string) (types.Device, error)
	QueryDevices(ctx context.Context, owner string) (types.Collection[types.Device], error)

	GetSettings(ctx context.Context, deviceID string) (types.DeviceSettings, error)
	UpdateSettings(ctx context.Context, deviceID string, settings types.DeviceSettings) (types.DeviceSettings, error)
}

type Config struct {
	Defaults types.DeviceSettings `yaml:"defaults"`
}

func NewConfig(r io.ReadCloser) (*Config, error) {
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Defaults: types.DefaultSettings()}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.Defaults.Valid() {
		return nil, ErrInvalidSettings
	}

	return cfg, nil
}

type service struct {
	storage   storage.Store
	messenger messaging.MsgContext
	config    *Config
}

func New(s storage.Store, messenger messaging.MsgContext, config *Config) DeviceRegistry {
	if config == nil {
		config = &Config{Defaults: types.DefaultSettings()}
	}

	return service{
		storage:   s,
		messenger: messenger,
		config:    config,
	}
}

// Register records a device under the given owner. Registering an already
// owned device is idempotent for the same owner and a conflict for anyone
// else, ownership never transfers. A device that was auto provisioned from
// bare telemetry has no owner yet and is claimed by the first registrant.
func (s service) Register(ctx context.Context, owner, deviceID, name, clientType string) (RegisterResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "register-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" || len(deviceID) > types.MaxDeviceIDLength {
		err = ErrInvalidDeviceID
		return RegisterResult{}, err
	}

	if name == "" {
		name = defaultName(deviceID)
	}

	device := types.Device{
		DeviceID:   deviceID,
		Owner:      owner,
		Name:       name,
		ClientType: clientType,
		Settings:   s.config.Defaults,
	}

	created, err := s.storage.AddDevice(ctx, device)
	if err != nil {
		return RegisterResult{}, err
	}

	if created {
		d, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
		if err != nil {
			return RegisterResult{}, err
		}

		s.publishRegistered(ctx, d)

		return RegisterResult{Status: RegistrationCreated, Device: d}, nil
	}

	existing, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		return RegisterResult{}, err
	}

	if existing.Owner == owner {
		return RegisterResult{Status: RegistrationAlreadyOwned, Device: existing}, nil
	}

	if existing.Owner == "" {
		claimed, err := s.storage.ClaimDevice(ctx, deviceID, owner)
		if err != nil {
			return RegisterResult{}, err
		}

		existing, err = s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
		if err != nil {
			return RegisterResult{}, err
		}

		if claimed {
			s.publishRegistered(ctx, existing)
			return RegisterResult{Status: RegistrationCreated, Device: existing}, nil
		}

		// a concurrent claim won, fall through to the ownership check
		if existing.Owner == owner {
			return RegisterResult{Status: RegistrationAlreadyOwned, Device: existing}, nil
		}
	}

	return RegisterResult{Status: RegistrationConflict, Device: existing}, nil
}

// EnsureDevice returns the device, provisioning an ownerless row with
// default settings when the id has never been seen before.
func (s service) EnsureDevice(ctx context.Context, deviceID string) (types.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" || len(deviceID) > types.MaxDeviceIDLength {
		return types.Device{}, ErrInvalidDeviceID
	}

	device, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err == nil {
		return device, nil
	}

	if !errors.Is(err, storage.ErrNoRows) {
		return types.Device{}, err
	}

	created, err := s.storage.AddDevice(ctx, types.Device{
		DeviceID: deviceID,
		Name:     defaultName(deviceID),
		Settings: s.config.Defaults,
	})
	if err != nil {
		return types.Device{}, err
	}

	if created {
		log := logging.GetFromContext(ctx)
		log.Info("auto provisioned device from telemetry", "device_id", deviceID)
	}

	return s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
}

func (s service) GetDevice(ctx context.Context, deviceID string) (types.Device, error) {
	device, err := s.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Device{}, ErrDeviceNotFound
		}
		return types.Device{}, err
	}

	return device, nil
}

func (s service) QueryDevices(ctx context.Context, owner string) (types.Collection[types.Device], error) {
	conditions := []storage.ConditionFunc{}
	if owner != "" {
		conditions = append(conditions, storage.WithOwner(owner))
	}

	return s.storage.QueryDevices(ctx, conditions...)
}

func (s service) GetSettings(ctx context.Context, deviceID string) (types.DeviceSettings, error) {
	device, err := s.EnsureDevice(ctx, deviceID)
	if err != nil {
		return types.DeviceSettings{}, err
	}

	return device.Settings, nil
}

// UpdateSettings validates and stores new settings, provisioning the device
// first when it is unknown. The stored settings are returned.
func (s service) UpdateSettings(ctx context.Context, deviceID string, settings types.DeviceSettings) (types.DeviceSettings, error) {
	var err error
	ctx, span := tracer.Start(ctx, "update-settings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if !settings.Valid() {
		err = ErrInvalidSettings
		return types.DeviceSettings{}, err
	}

	_, err = s.EnsureDevice(ctx, deviceID)
	if err != nil {
		return types.DeviceSettings{}, err
	}

	err = s.storage.UpdateSettings(ctx, deviceID, settings)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			err = ErrDeviceNotFound
		}
		return types.DeviceSettings{}, err
	}

	return settings, nil
}

func (s service) publishRegistered(ctx context.Context, device types.Device) {
	err := s.messenger.PublishOnTopic(ctx, &DeviceRegistered{
		DeviceID:  device.DeviceID,
		Owner:     device.Owner,
		Name:      device.Name,
		Timestamp: device.CreatedOn,
	})
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Error("could not publish registration event", "device_id", device.DeviceID, "err", err.Error())
	}
}

// defaultName derives a human readable name from the device id, the way
// owners see a tracker before they rename it.
func defaultName(deviceID string) string {
	if len(deviceID) > 6 {
		deviceID = deviceID[:6]
	}
	return "Device " + deviceID
}

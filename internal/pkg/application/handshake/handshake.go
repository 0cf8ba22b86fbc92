package handshake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opentracker/gps-device-mgmt/internal/pkg/application/registry"
	"github.com/opentracker/gps-device-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("gps-device-mgmt/handshake")

var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrInvalidInstruction = fmt.Errorf("unknown instruction")
var ErrStaleToken = fmt.Errorf("token is stale")

// DefaultTokenTTL bounds how long an unacknowledged power instruction stays
// deliverable before the watchdog sweeps it away.
const DefaultTokenTTL = time.Hour

// Result is what a device gets back from a handshake.
type Result struct {
	Registered  bool
	Instruction string
	Token       string
	Settings    types.DeviceSettings
}

//go:generate moq -rm -out handshake_mock.go . Coordinator
type Coordinator interface {
	Handshake(ctx context.Context, deviceID, reportedPower string) (Result, error)
	QueueInstruction(ctx context.Context, deviceID, kind string) (types.InstructionToken, bool, error)
	PendingInstruction(ctx context.Context, deviceID string) (types.InstructionToken, error)
	Acknowledge(ctx context.Context, deviceID, token string) (types.InstructionToken, error)
	ExpireStaleTokens(ctx context.Context) (int64, error)
}

type coordinator struct {
	storage   storage.Store
	devices   registry.DeviceRegistry
	messenger messaging.MsgContext
	tokenTTL  time.Duration
}

func New(s storage.Store, devices registry.DeviceRegistry, messenger messaging.MsgContext, tokenTTL time.Duration) Coordinator {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return coordinator{
		storage:   s,
		devices:   devices,
		messenger: messenger,
		tokenTTL:  tokenTTL,
	}
}

// Handshake records the power status a device reports on wakeup and tells it
// whether an instruction is pending. A pending instruction whose end state
// the device already reports is considered honored and its token retired,
// the tracker never sees an order to do what it is already doing. An unknown
// device is answered with stock settings but never provisioned, device rows
// are created on registration or telemetry only.
func (c coordinator) Handshake(ctx context.Context, deviceID, reportedPower string) (Result, error) {
	var err error
	ctx, span := tracer.Start(ctx, "handshake")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" || len(deviceID) > types.MaxDeviceIDLength {
		err = registry.ErrInvalidDeviceID
		return Result{}, err
	}

	device, err := c.devices.GetDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, registry.ErrDeviceNotFound) {
			err = nil
			return Result{
				Registered:  false,
				Instruction: types.InstructionNone,
				Settings:    types.DefaultSettings(),
			}, nil
		}
		return Result{}, err
	}

	if reportedPower == types.PowerStatusOn || reportedPower == types.PowerStatusOff {
		if reportedPower != device.PowerStatus {
			err = c.storage.SetPowerStatus(ctx, device.DeviceID, reportedPower)
			if err != nil {
				return Result{}, err
			}
		}
	}

	result := Result{
		Registered:  device.Owner != "",
		Instruction: types.InstructionNone,
		Settings:    device.Settings,
	}

	token, err := c.storage.GetLiveToken(ctx, device.DeviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			err = nil
			return result, nil
		}
		return Result{}, err
	}

	if !token.Live(time.Now().UTC()) {
		return result, nil
	}

	if desiredPower(token.Kind) == reportedPower {
		_, err = c.storage.ConsumeToken(ctx, device.DeviceID, token.Token)
		if err != nil && !errors.Is(err, storage.ErrNoRows) {
			return Result{}, err
		}
		err = nil
		return result, nil
	}

	result.Instruction = token.Kind
	result.Token = token.Token

	return result, nil
}

// QueueInstruction mints a one time token for a power instruction. While a
// live token exists subsequent queue calls return that token unchanged, the
// boolean result reports whether this call actually issued a new one.
func (c coordinator) QueueInstruction(ctx context.Context, deviceID, kind string) (types.InstructionToken, bool, error) {
	var err error
	ctx, span := tracer.Start(ctx, "queue-instruction")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if kind != types.InstructionTurnOn && kind != types.InstructionTurnOff {
		err = ErrInvalidInstruction
		return types.InstructionToken{}, false, err
	}

	_, err = c.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			err = ErrDeviceNotFound
		}
		return types.InstructionToken{}, false, err
	}

	now := time.Now().UTC()

	minted := types.InstructionToken{
		Token:     uuid.NewString(),
		DeviceID:  deviceID,
		Kind:      kind,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.tokenTTL),
	}

	token, err := c.storage.IssueToken(ctx, minted)
	if err != nil {
		return types.InstructionToken{}, false, err
	}

	issued := token.Token == minted.Token
	if issued {
		c.publish(ctx, &InstructionIssued{
			DeviceID:    deviceID,
			Instruction: kind,
			Token:       token.Token,
			Timestamp:   now,
		})
	}

	return token, issued, nil
}

func (c coordinator) PendingInstruction(ctx context.Context, deviceID string) (types.InstructionToken, error) {
	token, err := c.storage.GetLiveToken(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.InstructionToken{}, ErrStaleToken
		}
		return types.InstructionToken{}, err
	}

	if !token.Live(time.Now().UTC()) {
		return types.InstructionToken{}, ErrStaleToken
	}

	return token, nil
}

// Acknowledge consumes a token and records the power state the instruction
// asked for. Acks with an expired, consumed or unknown token are stale.
func (c coordinator) Acknowledge(ctx context.Context, deviceID, token string) (types.InstructionToken, error) {
	var err error
	ctx, span := tracer.Start(ctx, "acknowledge-instruction")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	consumed, err := c.storage.ConsumeToken(ctx, deviceID, token)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			err = ErrStaleToken
		}
		return types.InstructionToken{}, err
	}

	err = c.storage.SetPowerStatus(ctx, deviceID, desiredPower(consumed.Kind))
	if err != nil {
		return types.InstructionToken{}, err
	}

	c.publish(ctx, &InstructionAcknowledged{
		DeviceID:    deviceID,
		Instruction: consumed.Kind,
		Token:       consumed.Token,
		Timestamp:   time.Now().UTC(),
	})

	return consumed, nil
}

func (c coordinator) ExpireStaleTokens(ctx context.Context) (int64, error) {
	return c.storage.ExpireTokens(ctx, time.Now().UTC())
}

func (c coordinator) publish(ctx context.Context, msg messaging.TopicMessage) {
	err := c.messenger.PublishOnTopic(ctx, msg)
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Error("could not publish message", "topic", msg.TopicName(), "err", err.Error())
	}
}

func desiredPower(kind string) string {
	if kind == types.InstructionTurnOff {
		return types.PowerStatusOff
	}
	return types.PowerStatusOn
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows       = errors.New("no rows in result set")
	ErrQueryRow     = errors.New("could not execute query")
	ErrStoreFailed  = errors.New("could not store data")
	ErrAlreadyExist = errors.New("device already exists")
)

//go:generate moq -rm -out storage_mock.go . Store
type Store interface {
	Initialize(ctx context.Context) error
	Close()

	AddDevice(ctx context.Context, device types.Device) (bool, error)
	ClaimDevice(ctx context.Context, deviceID, owner string) (bool, error)
	GetDevice(ctx context.Context, conditions ...ConditionFunc) (types.Device, error)
	QueryDevices(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Device], error)
	SetPowerStatus(ctx context.Context, deviceID, powerStatus string) error
	UpdateSettings(ctx context.Context, deviceID string, settings types.DeviceSettings) error

	AppendLocations(ctx context.Context, deviceID string, points []types.LocationPoint, current *types.LocationPoint, powerStatus string) error
	QueryLocations(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.LocationPoint], error)
	CurrentPositions(ctx context.Context) ([]types.DevicePosition, error)

	IssueToken(ctx context.Context, token types.InstructionToken) (types.InstructionToken, error)
	GetLiveToken(ctx context.Context, deviceID string) (types.InstructionToken, error)
	ConsumeToken(ctx context.Context, deviceID, token string) (types.InstructionToken, error)
	ExpireTokens(ctx context.Context, before time.Time) (int64, error)
}

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS devices (
			device_id		TEXT	NOT NULL,
			owner			TEXT	NULL,
			name			TEXT	NOT NULL,
			client_type		TEXT	NULL,
			power_status	TEXT	NOT NULL DEFAULT 'ON',
			sleep_interval	INT		NOT NULL DEFAULT 60,
			send_interval	INT		NOT NULL DEFAULT 1,
			satellites		INT		NOT NULL DEFAULT 5,
			position		POINT	NULL,
			position_at		timestamp with time zone NULL,
			last_seen		timestamp with time zone NULL,
			created_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_devices PRIMARY KEY (device_id)
		);

		CREATE TABLE IF NOT EXISTS locations (
			location_id		BIGINT GENERATED ALWAYS AS IDENTITY,
			device_id		TEXT	NOT NULL,
			latitude		NUMERIC	NOT NULL,
			longitude		NUMERIC	NOT NULL,
			speed			NUMERIC	NULL,
			altitude		NUMERIC	NULL,
			accuracy		NUMERIC	NULL,
			satellites		INT		NULL,
			power_status	TEXT	NULL,
			observed_at		timestamp with time zone NOT NULL,
			created_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_locations PRIMARY KEY (location_id)
		);

		CREATE TABLE IF NOT EXISTS instruction_tokens (
			token			TEXT	NOT NULL,
			device_id		TEXT	NOT NULL,
			kind			TEXT	NOT NULL,
			issued_at		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at		timestamp with time zone NOT NULL,
			consumed		BOOLEAN	NOT NULL DEFAULT FALSE,
			CONSTRAINT pkey_instruction_tokens PRIMARY KEY (token)
		);

		CREATE INDEX IF NOT EXISTS locations_device_observed_idx ON locations (device_id, observed_at DESC);
		CREATE UNIQUE INDEX IF NOT EXISTS one_live_token_per_device_idx ON instruction_tokens (device_id) WHERE NOT consumed;
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

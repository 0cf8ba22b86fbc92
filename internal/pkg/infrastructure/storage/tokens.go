package storage

import (
	"context"
	"errors"
	"time"

	"github.com/opentracker/gps-device-mgmt/pkg/types"

	"github.com/jackc/pgx/v5"
)

// IssueToken stores a freshly minted token for a device unless a live one
// already exists, in which case the existing token is returned instead. The
// partial unique index on (device_id) WHERE NOT consumed turns concurrent
// issuance into a single-winner insert.
func (s *Storage) IssueToken(ctx context.Context, token types.InstructionToken) (types.InstructionToken, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return types.InstructionToken{}, err
	}
	defer tx.Rollback(ctx)

	// clear out an expired leftover so the insert below can take its slot
	_, err = tx.Exec(ctx, `
		DELETE FROM instruction_tokens
		WHERE device_id = @device_id AND NOT consumed AND expires_at <= CURRENT_TIMESTAMP
	`, pgx.NamedArgs{"device_id": token.DeviceID})
	if err != nil {
		return types.InstructionToken{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO instruction_tokens (token, device_id, kind, issued_at, expires_at)
		VALUES (@token, @device_id, @kind, @issued_at, @expires_at)
		ON CONFLICT (device_id) WHERE NOT consumed DO NOTHING
	`, pgx.NamedArgs{
		"token":      token.Token,
		"device_id":  token.DeviceID,
		"kind":       token.Kind,
		"issued_at":  token.IssuedAt.UTC(),
		"expires_at": token.ExpiresAt.UTC(),
	})
	if err != nil {
		return types.InstructionToken{}, err
	}

	live, err := getLiveToken(ctx, tx, token.DeviceID)
	if err != nil {
		return types.InstructionToken{}, err
	}

	return live, tx.Commit(ctx)
}

func (s *Storage) GetLiveToken(ctx context.Context, deviceID string) (types.InstructionToken, error) {
	return getLiveToken(ctx, s.pool, deviceID)
}

// ConsumeToken marks the token consumed if, and only if, it is still live.
// A stale or unknown token yields ErrNoRows.
func (s *Storage) ConsumeToken(ctx context.Context, deviceID, token string) (types.InstructionToken, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE instruction_tokens
		SET consumed = TRUE
		WHERE device_id = @device_id AND token = @token AND NOT consumed AND expires_at > CURRENT_TIMESTAMP
		RETURNING token, device_id, kind, issued_at, expires_at, consumed
	`, pgx.NamedArgs{
		"device_id": deviceID,
		"token":     token,
	})

	t, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.InstructionToken{}, ErrNoRows
		}
		return types.InstructionToken{}, err
	}

	return t, nil
}

func (s *Storage) ExpireTokens(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM instruction_tokens
		WHERE NOT consumed AND expires_at <= @before
	`, pgx.NamedArgs{"before": before.UTC()})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getLiveToken(ctx context.Context, q querier, deviceID string) (types.InstructionToken, error) {
	row := q.QueryRow(ctx, `
		SELECT token, device_id, kind, issued_at, expires_at, consumed
		FROM instruction_tokens
		WHERE device_id = @device_id AND NOT consumed AND expires_at > CURRENT_TIMESTAMP
	`, pgx.NamedArgs{"device_id": deviceID})

	t, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.InstructionToken{}, ErrNoRows
		}
		return types.InstructionToken{}, err
	}

	return t, nil
}

func scanToken(row pgx.Row) (types.InstructionToken, error) {
	var t types.InstructionToken
	err := row.Scan(&t.Token, &t.DeviceID, &t.Kind, &t.IssuedAt, &t.ExpiresAt, &t.Consumed)
	if err != nil {
		return types.InstructionToken{}, err
	}
	return t, nil
}

package storage

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	DeviceID string
	Owner    string

	Since time.Time

	sortDesc bool

	offset *int
	limit  *int
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.Owner != "" {
		args["owner"] = c.Owner
	}
	if !c.Since.IsZero() {
		args["since"] = c.Since.UTC()
	}
	if c.offset != nil {
		args["offset"] = *c.offset
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.DeviceID != "" {
		where = append(where, "device_id = @device_id")
	}

	if c.Owner != "" {
		where = append(where, "owner = @owner")
	}

	if !c.Since.IsZero() {
		where = append(where, "observed_at >= @since")
	}

	if len(where) == 0 {
		return "TRUE"
	}

	return strings.Join(where, " AND ")
}

func (c Condition) SortOrder() string {
	if c.sortDesc {
		return "DESC"
	}
	return "ASC"
}

func (c Condition) OffsetLimit() string {
	offsetLimit := ""

	if c.offset != nil {
		offsetLimit += "OFFSET @offset "
	}
	if c.limit != nil {
		offsetLimit += "LIMIT @limit "
	}

	return offsetLimit
}

func (c Condition) Offset() int {
	if c.offset != nil {
		return *c.offset
	}
	return 0
}

func (c Condition) Limit() int {
	if c.limit != nil {
		return *c.limit
	}
	return 0
}

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithOwner(owner string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Owner = owner
		return c
	}
}

func WithSince(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Since = ts
		return c
	}
}

func WithSortDesc() ConditionFunc {
	return func(c *Condition) *Condition {
		c.sortDesc = true
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

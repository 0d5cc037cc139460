package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// Field names accepted by [RecordValidator.Validate] to narrow validation.
const (
	FieldTable    = "table"
	FieldRows     = "rows"
	FieldCursor   = "cursor"
	FieldID       = "id"
	FieldClock    = "clock"
	FieldTimes    = "timestamps"
	FieldPayload  = "payload"
	FieldLogin    = "login"
	FieldPassword = "password"
)

const (
	minLoginLength    = 3
	maxLoginLength    = 64
	minPasswordLength = 8
)

// TableRecord is one row together with the table it belongs to.
type TableRecord struct {
	Table  models.Table
	Record models.Record
}

// RecordValidator checks sync requests and envelopes. Payload rules come from
// the table registry.
type RecordValidator struct {
	registry *tables.Registry
	maxRows  int
}

// NewRecordValidator returns a validator that accepts at most maxRows rows in
// one push. maxRows <= 0 disables the limit.
func NewRecordValidator(registry *tables.Registry, maxRows int) Validator {
	return &RecordValidator{registry: registry, maxRows: maxRows}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.PullRequest:
		return v.validatePullRequest(ctx, value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(ctx, *value, fields...)

	case models.StatsRequest:
		return v.validateStatsRequest(value)
	case *models.StatsRequest:
		return v.validateStatsRequest(*value)

	case TableRecord:
		return v.validateRecord(ctx, value, fields...)
	case *TableRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RecordValidator) validatePushRequest(_ context.Context, req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTable, FieldRows}
	}

	for _, field := range fields {
		switch field {
		case FieldTable:
			if err := v.validateTable(req.Table); err != nil {
				return err
			}
		case FieldRows:
			if len(req.Rows) == 0 {
				return ErrEmptyRows
			}
			if v.maxRows > 0 && len(req.Rows) > v.maxRows {
				return fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(req.Rows), v.maxRows)
			}
			seen := make(map[string]struct{}, len(req.Rows))
			for _, row := range req.Rows {
				if _, ok := seen[row.ID]; ok {
					return fmt.Errorf("%w: %q", ErrDuplicateID, row.ID)
				}
				seen[row.ID] = struct{}{}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *RecordValidator) validatePullRequest(_ context.Context, req models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTable, FieldCursor}
	}

	for _, field := range fields {
		switch field {
		case FieldTable:
			if err := v.validateTable(req.Table); err != nil {
				return err
			}
		case FieldCursor:
			if req.Cursor < 0 {
				return ErrInvalidCursor
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *RecordValidator) validateStatsRequest(req models.StatsRequest) error {
	if req.Table == "" {
		return nil
	}
	return v.validateTable(req.Table)
}

// validateRecord checks one envelope. Tombstones skip payload rules so a
// deletion never fails because of an outdated payload.
func (v *RecordValidator) validateRecord(_ context.Context, tr TableRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldClock, FieldTimes, FieldPayload}
	}

	r := tr.Record
	for _, field := range fields {
		switch field {
		case FieldID:
			if _, err := uuid.Parse(r.ID); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidID, r.ID)
			}
		case FieldClock:
			if r.Clock < 1 {
				return ErrInvalidClock
			}
		case FieldTimes:
			if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
				return ErrMissingTimestamp
			}
		case FieldPayload:
			if r.IsDeleted() {
				continue
			}
			d, err := v.registry.Lookup(tr.Table)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrUnknownTable, tr.Table)
			}
			if err = d.Validate(r.Payload); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *RecordValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldLogin:
			login := strings.TrimSpace(c.Login)
			if len(login) < minLoginLength || len(login) > maxLoginLength || login != c.Login {
				return ErrInvalidLogin
			}
		case FieldPassword:
			if len(c.Password) < minPasswordLength {
				return ErrInvalidPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *RecordValidator) validateTable(table models.Table) error {
	if _, err := v.registry.Lookup(table); err != nil {
		if errors.Is(err, tables.ErrUnknownTable) {
			return fmt.Errorf("%w: %q", ErrUnknownTable, table)
		}
		return err
	}
	return nil
}

// Package tables describes the synchronizable tables: their names, how their
// payloads are decoded and which rules a payload must satisfy. Push, pull and
// the device store work generically over a [Registry] instead of per-table code.
package tables

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-fin-keeper/models"
)

// Descriptor is the uniform view of one table.
type Descriptor interface {
	// Name is the table name used in SQL and on the wire.
	Name() models.Table
	// Decode strictly decodes a payload into the table's payload type.
	Decode(payload json.RawMessage) (any, error)
	// Validate decodes the payload and checks the table's rules.
	Validate(payload json.RawMessage) error
}

type descriptor[T any] struct {
	name  models.Table
	rules func(T) error
}

// NewDescriptor builds a descriptor for payload type T checked by rules.
func NewDescriptor[T any](name models.Table, rules func(T) error) Descriptor {
	return &descriptor[T]{name: name, rules: rules}
}

func (d *descriptor[T]) Name() models.Table {
	return d.name
}

func (d *descriptor[T]) Decode(payload json.RawMessage) (any, error) {
	return d.decode(payload)
}

func (d *descriptor[T]) decode(payload json.RawMessage) (T, error) {
	var value T
	if len(bytes.TrimSpace(payload)) == 0 {
		return value, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&value); err != nil {
		return value, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if dec.More() {
		return value, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}
	return value, nil
}

func (d *descriptor[T]) Validate(payload json.RawMessage) error {
	value, err := d.decode(payload)
	if err != nil {
		return err
	}
	if d.rules == nil {
		return nil
	}
	if err = d.rules(value); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	return nil
}

// Registry maps table names to descriptors.
type Registry struct {
	descriptors map[models.Table]Descriptor
	order       []models.Table
}

// NewRegistry registers descriptors in the given order. A later descriptor
// with the same name replaces an earlier one.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{descriptors: make(map[models.Table]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, ok := r.descriptors[d.Name()]; !ok {
			r.order = append(r.order, d.Name())
		}
		r.descriptors[d.Name()] = d
	}
	return r
}

// Lookup returns the descriptor for table or [ErrUnknownTable].
func (r *Registry) Lookup(table models.Table) (Descriptor, error) {
	d, ok := r.descriptors[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return d, nil
}

// Has reports whether table is registered.
func (r *Registry) Has(table models.Table) bool {
	_, ok := r.descriptors[table]
	return ok
}

// Tables returns the registered table names in registration order.
func (r *Registry) Tables() []models.Table {
	return slices.Clone(r.order)
}

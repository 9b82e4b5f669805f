package ui

import (
	"errors"
	"fmt"
)

const (
	// RowCapacity is the space of one component row.
	RowCapacity = 5
	// MaxRows is the number of rows a message may carry.
	MaxRows = 5
)

// ErrRowCapacity is returned when components do not fit a row.
var ErrRowCapacity = errors.New("row capacity exceeded")

// Row is an ordered group of components whose space sums to at most RowCapacity.
type Row struct {
	components []Component
}

// NewRow groups components into one row.
func NewRow(components ...Component) (Row, error) {
	if len(components) == 0 {
		return Row{}, errors.New("row has no components")
	}
	space := 0
	for _, c := range components {
		space += c.RequiredSpace()
	}
	if space > RowCapacity {
		return Row{}, fmt.Errorf("%w: %d of %d", ErrRowCapacity, space, RowCapacity)
	}
	return Row{components: components}, nil
}

// MustRow is NewRow that panics on error, for static menu definitions.
func MustRow(components ...Component) Row {
	r, err := NewRow(components...)
	if err != nil {
		panic(err)
	}
	return r
}

// Rows packs components greedily into as few rows as their order allows.
func Rows(components ...Component) ([]Row, error) {
	var (
		rows    []Row
		current []Component
		space   int
	)
	for _, c := range components {
		need := c.RequiredSpace()
		if need > RowCapacity {
			return nil, fmt.Errorf("%w: component %q needs %d", ErrRowCapacity, c.Name(), need)
		}
		if space+need > RowCapacity {
			rows = append(rows, Row{components: current})
			current, space = nil, 0
		}
		current = append(current, c)
		space += need
	}
	if len(current) > 0 {
		rows = append(rows, Row{components: current})
	}
	return rows, nil
}

// Components returns the components of the row in order.
func (r Row) Components() []Component {
	return append([]Component(nil), r.components...)
}

// Space is the summed space of the row.
func (r Row) Space() int {
	space := 0
	for _, c := range r.components {
		space += c.RequiredSpace()
	}
	return space
}

// Package cart holds the in-memory cart of the running storefront.
package cart

import (
	"errors"
	"strings"
	"sync"

	"glassstore/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRetiredID is returned when a line id that was removed earlier in the same cart
// lifetime is added again. Callers must generate a fresh id per configuration.
var ErrRetiredID = errors.New("line id already used in this cart")

// Engine is an ordered collection of cart lines. Totals are derived on every call.
type Engine struct {
	mu      sync.RWMutex
	order   []string
	lines   map[string]domain.CartLine
	retired map[string]struct{}
}

// Patch carries the fields to merge into an existing line. Nil fields are left untouched.
type Patch struct {
	Name          *string
	UnitPrice     *decimal.Decimal
	Quantity      *int
	Customization map[string]interface{}
}

func New() *Engine {
	return &Engine{
		lines:   make(map[string]domain.CartLine),
		retired: make(map[string]struct{}),
	}
}

// NewLineID returns an id that is distinct for every call, so two identical
// configurations of the same product end up as separate lines.
func NewLineID(productID string) string {
	return strings.TrimSpace(productID) + "-" + uuid.NewString()
}

// Add inserts line. A line with the same id is replaced entirely and keeps its
// position; quantities are not merged.
func (e *Engine) Add(line domain.CartLine) error {
	line.ID = strings.TrimSpace(line.ID)
	if line.ID == "" {
		return domain.Invalid("id", "required")
	}
	if err := validateLine(line.UnitPrice, line.Quantity); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.retired[line.ID]; ok {
		return &domain.ValidationError{Field: "id", Reason: ErrRetiredID.Error(), Err: ErrRetiredID}
	}
	if _, exists := e.lines[line.ID]; !exists {
		e.order = append(e.order, line.ID)
	}
	e.lines[line.ID] = line.Clone()
	return nil
}

// Update merges patch into the line with the given id. It reports false when the id
// is not in the cart.
func (e *Engine) Update(id string, patch Patch) (bool, error) {
	id = strings.TrimSpace(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.lines[id]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		line.Name = *patch.Name
	}
	if patch.UnitPrice != nil {
		line.UnitPrice = *patch.UnitPrice
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	if patch.Customization != nil {
		line.Customization = patch.Customization
	}
	if err := validateLine(line.UnitPrice, line.Quantity); err != nil {
		return true, err
	}
	e.lines[id] = line.Clone()
	return true, nil
}

// Remove deletes the line with the given id. Removing an absent id is a no-op that
// reports false.
func (e *Engine) Remove(id string) bool {
	id = strings.TrimSpace(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.lines[id]; !ok {
		return false
	}
	delete(e.lines, id)
	e.retired[id] = struct{}{}
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the cart and starts a new cart lifetime.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.order = nil
	e.lines = make(map[string]domain.CartLine)
	e.retired = make(map[string]struct{})
}

// Subtotal is the sum of unit price times quantity over the current lines.
func (e *Engine) Subtotal() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := decimal.Zero
	for _, id := range e.order {
		total = total.Add(e.lines[id].LineTotal())
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (e *Engine) Lines() []domain.CartLine {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.CartLine, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.lines[id].Clone())
	}
	return out
}

// Get returns the line with the given id.
func (e *Engine) Get(id string) (domain.CartLine, bool) {
	id = strings.TrimSpace(id)
	e.mu.RLock()
	defer e.mu.RUnlock()
	line, ok := e.lines[id]
	if !ok {
		return domain.CartLine{}, false
	}
	return line.Clone(), true
}

func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.order)
}

// ItemCount is the total quantity across all lines.
func (e *Engine) ItemCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, line := range e.lines {
		n += line.Quantity
	}
	return n
}

func validateLine(price decimal.Decimal, quantity int) error {
	if quantity < 1 {
		return domain.Invalid("quantity", "must be positive")
	}
	if price.IsNegative() {
		return domain.Invalid("price", "must not be negative")
	}
	return nil
}

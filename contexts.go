// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import (
	"fmt"
	"reflect"
)

// Contexts holds the ambient values of one top-level read.
//
// Each type identity owns either a LIFO stack or a single slot, never both.
// Values are keyed by the type argument of the accessor, so a value pushed as
// an interface type is found only through that interface type.
type Contexts struct {
	stacks map[reflect.Type][]any
	slots  map[reflect.Type]any
}

// NewContexts creates a collection whose stacks are seeded with values,
// each keyed by its dynamic type, in order.
func NewContexts(seed ...any) *Contexts {
	cs := &Contexts{}
	for _, v := range seed {
		if v == nil {
			continue
		}
		cs.push(reflect.TypeOf(v), v)
	}
	return cs
}

func (cs *Contexts) push(t reflect.Type, v any) {
	if cs.stacks == nil {
		cs.stacks = make(map[reflect.Type][]any)
	}
	cs.stacks[t] = append(cs.stacks[t], v)
}

func (cs *Contexts) isSlot(t reflect.Type) bool {
	_, ok := cs.slots[t]
	return ok
}

func (cs *Contexts) isStack(t reflect.Type) bool {
	_, ok := cs.stacks[t]
	return ok
}

func violation(t reflect.Type, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrContractViolation, t, reason)
}

// PushContextValue pushes v on the stack of T.
func PushContextValue[T any](cs *Contexts, v T) error {
	t := reflect.TypeFor[T]()
	if cs.isSlot(t) {
		return violation(t, "slot context cannot be pushed")
	}
	cs.push(t, v)
	return nil
}

// PopContextValue removes and returns the top of the stack of T.
func PopContextValue[T any](cs *Contexts) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	if cs.isSlot(t) {
		return zero, violation(t, "slot context cannot be popped")
	}
	stack := cs.stacks[t]
	if len(stack) == 0 {
		return zero, violation(t, "context stack is empty")
	}
	top := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	if len(stack) == 1 {
		delete(cs.stacks, t)
	} else {
		cs.stacks[t] = stack[:len(stack)-1]
	}
	v, _ := top.(T)
	return v, nil
}

// PeekContextValue returns the top of the stack of T without removing it.
// An empty stack yields None.
func PeekContextValue[T any](cs *Contexts) (Option[T], error) {
	t := reflect.TypeFor[T]()
	if cs.isSlot(t) {
		return None[T](), violation(t, "slot context cannot be peeked")
	}
	stack := cs.stacks[t]
	if len(stack) == 0 {
		return None[T](), nil
	}
	v, _ := stack[len(stack)-1].(T)
	return Some(v), nil
}

// SetContextValue fills the slot of T.
func SetContextValue[T any](cs *Contexts, v T) error {
	t := reflect.TypeFor[T]()
	if cs.isStack(t) {
		return violation(t, "stack context cannot be set")
	}
	if cs.isSlot(t) {
		return violation(t, "context is already set")
	}
	if cs.slots == nil {
		cs.slots = make(map[reflect.Type]any)
	}
	cs.slots[t] = v
	return nil
}

// GetContextValue returns the slot of T. An empty slot yields None.
func GetContextValue[T any](cs *Contexts) (Option[T], error) {
	t := reflect.TypeFor[T]()
	if cs.isStack(t) {
		return None[T](), violation(t, "stack context cannot be gotten")
	}
	v, ok := cs.slots[t]
	if !ok {
		return None[T](), nil
	}
	value, _ := v.(T)
	return Some(value), nil
}

// UnsetContextValue empties the slot of T.
func UnsetContextValue[T any](cs *Contexts) error {
	t := reflect.TypeFor[T]()
	if cs.isStack(t) {
		return violation(t, "stack context cannot be unset")
	}
	if !cs.isSlot(t) {
		return violation(t, "context is not set")
	}
	delete(cs.slots, t)
	return nil
}

// MIT License
//
// Copyright (c) 2024 talust-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/dispatch/registry.go
package dispatch

import "github.com/talust-core/go/src/message"

// NewRegistry creates an empty handler/validator registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[message.Type][]Handler),
		validators: make(map[message.Type]Validator),
	}
}

// AddHandler appends a handler for the given type. Handlers run in
// registration order for every matching envelope.
func (r *Registry) AddHandler(t message.Type, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = append(r.handlers[t], h)
}

// SetValidator installs the validator for the given type, replacing any
// previous one. Each type has at most one validator.
func (r *Registry) SetValidator(t message.Type, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[t] = v
}

// Handlers returns a snapshot of the handlers registered for t, in
// registration order.
func (r *Registry) Handlers(t message.Type) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hs := r.handlers[t]
	if len(hs) == 0 {
		return nil
	}
	out := make([]Handler, len(hs))
	copy(out, hs)
	return out
}

// Validator returns the validator registered for t, or nil.
func (r *Registry) Validator(t message.Type) Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validators[t]
}

// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cpu

import (
	"sort"

	"github.com/btcsuite/goleveldb/leveldb/errors"
)

// HookType distinguishes what kind of access a hook is interested in.
type HookType uint8

const (
	HookExec HookType = iota
	HookLoad
	HookStore
)

// Hook is a user-registered callback fired at a specific PC.
type Hook struct {
	PC      uint16
	Type    HookType
	IsPost  bool
	ID      int
	Name    string
	Fn      func(m *Machine, h *Hook)
	Private interface{}
}

type hookKey struct {
	pc     uint16
	typ    HookType
	isPost bool
}

// HookTable holds registered hooks and, once frozen, a lookup index
// keyed by (pc, type, is_post) so the executor can find the hooks
// matching a fetch with map lookups instead of scanning the whole list.
type HookTable struct {
	hooks  []*Hook
	lookup map[hookKey][]*Hook
	ready  bool
}

// ErrHooksNotReady is returned by Lookup before Freeze has been called.
var ErrHooksNotReady = errors.New("cpu: hook table not frozen")

// ErrDuplicateHook is returned by Freeze when two hooks share the full
// (pc, type, is_post, id) tuple.
var ErrDuplicateHook = errors.New("cpu: duplicate hook descriptor")

// Register appends a hook. It must be called before Freeze.
func (t *HookTable) Register(h *Hook) {
	t.hooks = append(t.hooks, h)
	t.ready = false
}

// Freeze sorts the registered hooks by (pc, type, is_post, id), rejects
// duplicate tuples, and builds the (pc, type) lookup index. No hooks may
// be registered after Freeze succeeds.
func (t *HookTable) Freeze() error {
	sort.Slice(t.hooks, func(i, j int) bool {
		a, b := t.hooks[i], t.hooks[j]
		if a.PC != b.PC {
			return a.PC < b.PC
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.IsPost != b.IsPost {
			return !a.IsPost
		}
		return a.ID < b.ID
	})
	for i := 1; i < len(t.hooks); i++ {
		a, b := t.hooks[i-1], t.hooks[i]
		if a.PC == b.PC && a.Type == b.Type && a.IsPost == b.IsPost && a.ID == b.ID {
			return ErrDuplicateHook
		}
	}
	idx := make(map[hookKey][]*Hook, len(t.hooks))
	for _, h := range t.hooks {
		k := hookKey{h.PC, h.Type, h.IsPost}
		idx[k] = append(idx[k], h)
	}
	t.lookup = idx
	t.ready = true
	return nil
}

// Lookup returns every hook matching (pc, type): the pre-hooks first,
// then the post-hooks, each group ordered by ID. It is an error to call
// Lookup before Freeze.
func (t *HookTable) Lookup(pc uint16, typ HookType) ([]*Hook, error) {
	if !t.ready {
		return nil, ErrHooksNotReady
	}
	pre := t.lookup[hookKey{pc, typ, false}]
	post := t.lookup[hookKey{pc, typ, true}]
	if len(post) == 0 {
		return pre, nil
	}
	out := make([]*Hook, 0, len(pre)+len(post))
	out = append(out, pre...)
	return append(out, post...), nil
}

// firePre runs every pre-hook (is_post=false) registered for (pc, Exec).
// Post-hooks are recognized by the data model but are not invoked; no
// caller in this core fires them.
func (t *HookTable) firePre(m *Machine, pc uint16, typ HookType) {
	if !t.ready {
		return
	}
	for _, h := range t.lookup[hookKey{pc, typ, false}] {
		if h.Fn != nil {
			h.Fn(m, h)
		}
	}
}

// Copyright 2026 the kolett authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transfer moves a single file to its destination. Strategies are
// selected by the manifest's process_method tag through a closed registry,
// so new variants plug in without touching the orchestrator.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultMethod is the strategy used when an item names none.
const DefaultMethod = "copy"

// 📋 Request describes one transfer. When DryRun is set a strategy must not
// touch the filesystem: no parent directories, no files, no links.
type Request struct {
	Source      string // absolute path to an existing readable file
	Destination string // resolved destination path
	DryRun      bool
}

// 🚚 Strategy performs the actual file transfer for one process_method.
type Strategy interface {
	// Name returns the process_method tag this strategy registers under.
	Name() string

	// Transfer delivers req.Source to req.Destination. Implementations
	// create the destination's parent directory (tolerating concurrent
	// creation) and overwrite whatever already occupies the destination.
	Transfer(ctx context.Context, req Request) error
}

// 🚫 SourceNotFoundError reports a source file missing or unreadable at
// transfer time.
type SourceNotFoundError struct {
	Path  string
	Cause error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source path does not exist: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Cause
}

// 🚫 TransferError reports a failed filesystem operation during a transfer,
// carrying the underlying cause.
type TransferError struct {
	Strategy    string
	Source      string
	Destination string
	Cause       error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Strategy, e.Source, e.Destination, e.Cause)
}

func (e *TransferError) Unwrap() error {
	return e.Cause
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Strategy{}
)

// 📝 Register adds a strategy to the registry under its Name. Strategies
// register at startup; later registrations under the same name win.
func Register(s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.Name()] = s
}

// 🎯 Get returns the strategy registered under name.
func Get(name string) (Strategy, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// 🔍 Registered reports whether a strategy is registered under name.
func Registered(name string) bool {
	_, ok := Get(name)
	return ok
}

// Methods returns the registered strategy names, sorted.
func Methods() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🔍 CheckSource verifies the transfer precondition that the source exists.
// Called before any strategy-specific action.
func CheckSource(source string) error {
	if _, err := os.Stat(source); err != nil {
		return &SourceNotFoundError{Path: source, Cause: err}
	}
	return nil
}

// ensureParent creates the destination's parent directory. MkdirAll treats
// an already-existing directory as success, which keeps concurrent items
// sharing a parent from failing each other.
func ensureParent(destination string) error {
	return os.MkdirAll(filepath.Dir(destination), 0o755)
}

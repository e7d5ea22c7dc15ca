// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"sort"
	"sync"
)

// Factory creates a driver instance.
type Factory func() Driver

// entry is one registered driver.
type entry struct {
	name      string
	priority  int
	factory   Factory
	available func() bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*entry)
)

// Register adds a driver to the registry. It is typically called from
// init() in driver packages.
//
// Parameters:
//   - name: unique identifier (e.g. "wgpu")
//   - priority: selection order, higher is preferred. Hardware drivers
//     use 100, test and software fallbacks use lower values.
//   - factory: creates driver instances
//   - available: reports whether the driver works on this system;
//     nil means always available
//
// Registering an existing name replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	registry[name] = &entry{
		name:      name,
		priority:  priority,
		factory:   factory,
		available: available,
	}
}

// Unregister removes a driver from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// List returns all registered driver names sorted by priority
// (highest first).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames(false)
}

// Available returns names of all available drivers sorted by priority.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedNames(true)
}

// ByName returns an instance of a specific named driver.
func ByName(name string) (Driver, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !e.available() {
		return nil, &UnavailableError{Name: name}
	}
	return e.factory(), nil
}

// Default returns the best available driver by priority, or ErrNoDriver
// when nothing is registered or available.
func Default() (Driver, error) {
	registryMu.RLock()
	names := sortedNames(true)
	registryMu.RUnlock()

	for _, name := range names {
		d, err := ByName(name)
		if err == nil {
			return d, nil
		}
	}
	return nil, ErrNoDriver
}

// sortedNames returns driver names sorted by priority (highest first).
// Must be called with the registry lock held.
func sortedNames(onlyAvailable bool) []string {
	if len(registry) == 0 {
		return nil
	}

	entries := make([]*entry, 0, len(registry))
	for _, e := range registry {
		if onlyAvailable && !e.available() {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

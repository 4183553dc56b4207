// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
)

// This file provides a registry for Dispatcher implementations. Packages
// providing a dispatcher register named configurations of it during their
// initialization; including such a package makes its configurations
// available under their names.

// NewDispatcher performs a lookup for the given name (case-insensitive) in
// the registry and creates a new Dispatcher using the given optional
// configuration. If no configuration is provided, the configuration
// registered under the name is used. An error is returned if no factory was
// registered under the given name.
func NewDispatcher(name string, config ...any) (Dispatcher, error) {
	if len(config) > 1 {
		return nil, fmt.Errorf("invalid configuration: too many arguments")
	}
	factory := GetDispatcherFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("dispatcher not found: %s", name)
	}
	c := any(nil)
	if len(config) > 0 {
		c = config[0]
	}
	return factory(c)
}

// GetDispatcherFactory performs a lookup for the given name (case-insensitive)
// in the registry. The result is nil if no factory was registered under the
// given name.
func GetDispatcherFactory(name string) DispatcherFactory {
	dispatcherRegistryLock.Lock()
	defer dispatcherRegistryLock.Unlock()
	return dispatcherRegistry[strings.ToLower(name)]
}

// GetAllRegisteredDispatchers obtains all registered factories.
func GetAllRegisteredDispatchers() map[string]DispatcherFactory {
	dispatcherRegistryLock.Lock()
	defer dispatcherRegistryLock.Unlock()
	return maps.Clone(dispatcherRegistry)
}

// RegisterDispatcherFactory registers a new Dispatcher factory under the given
// name. The name is not case-sensitive. Registering a nil factory or a second
// factory under the same name is an error.
func RegisterDispatcherFactory(name string, factory DispatcherFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	dispatcherRegistryLock.Lock()
	defer dispatcherRegistryLock.Unlock()
	if _, found := dispatcherRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	dispatcherRegistry[key] = factory
	return nil
}

// DispatcherFactory is the type of a function that creates a new Dispatcher
// using an implementation specific configuration.
type DispatcherFactory func(config any) (Dispatcher, error)

// dispatcherRegistry is a global registry for Dispatcher factories.
var dispatcherRegistry = map[string]DispatcherFactory{}

// dispatcherRegistryLock to protect access to the registry.
var dispatcherRegistryLock sync.Mutex

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"slices"

	"github.com/Fantom-foundation/tokenservice/go/contracts/relay"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/Fantom-foundation/tokenservice/go/processor/calls"
	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var ConfigsCmd = cli.Command{
	Action: doConfigs,
	Name:   "configs",
	Usage:  "Lists the registered precompile configurations",
}

func doConfigs(context *cli.Context) error {
	names := maps.Keys(hts.GetAllRegisteredDispatchers())
	slices.Sort(names)
	for _, name := range names {
		config, found := precompile.Configs[name]
		if !found {
			fmt.Printf("%s\n", name)
			continue
		}
		fmt.Printf("%s: %+v\n", name, config)
	}
	return nil
}

// newProcessor creates a transaction processor hosting the precompile in the
// named configuration. Contracts are run as relays.
func newProcessor(name string) (hts.Processor, error) {
	config, found := precompile.Configs[name]
	if !found {
		return nil, fmt.Errorf("unknown configuration %q", name)
	}
	dispatcher, err := hts.NewDispatcher(name)
	if err != nil {
		return nil, err
	}
	return calls.NewProcessor(relay.NewInterpreter(), dispatcher, config), nil
}

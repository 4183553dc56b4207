// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"slices"

	"github.com/Fantom-foundation/tokenservice/go/processor/precompile"
	"github.com/Fantom-foundation/tokenservice/go/sigs"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

type configFlagType struct {
	cli.StringSliceFlag
}

var ConfigFlag = &configFlagType{
	cli.StringSliceFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "precompile configurations to run, all registered configurations if empty",
	},
}

// Fetch returns the selected configuration names in sorted order.
func (f *configFlagType) Fetch(context *cli.Context) ([]string, error) {
	names := context.StringSlice(f.Name)
	if len(names) == 0 {
		names = maps.Keys(precompile.Configs)
	}
	for _, name := range names {
		if _, found := precompile.Configs[name]; !found {
			return nil, fmt.Errorf("unknown configuration %q, use one of %v", name, maps.Keys(precompile.Configs))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of jobs run simultaneously",
		Value:   runtime.NumCPU(),
	},
}

func (f *jobsFlagType) Fetch(context *cli.Context) int {
	if jobs := context.Int(f.Name); jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}

type seedFlagType struct {
	cli.Uint64Flag
}

var SeedFlag = &seedFlagType{
	cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed for the random number generator",
	},
}

func (f *seedFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type maxErrorsFlagType struct {
	cli.IntFlag
}

var MaxErrorsFlag = &maxErrorsFlagType{
	cli.IntFlag{
		Name:  "max-errors",
		Usage: "aborts after the given number of issues, unlimited if not positive",
		Value: -1,
	},
}

func (f *maxErrorsFlagType) Fetch(context *cli.Context) int {
	if limit := context.Int(f.Name); limit > 0 {
		return limit
	}
	return math.MaxInt
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 2,
	},
}

// Fetch installs a terminal logger with the selected level as the default
// logger.
func (f *verbosityFlagType) Fetch(context *cli.Context) {
	level := log.FromLegacyLevel(context.Int(f.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
}

type signatureCacheFlagType struct {
	cli.IntFlag
}

var SignatureCacheFlag = &signatureCacheFlagType{
	cli.IntFlag{
		Name:  "signature-cache",
		Usage: "number of signature verification results shared by all jobs",
		Value: sigs.DefaultCacheSize,
	},
}

// Fetch creates the verification cache shared by all replayed transactions.
func (f *signatureCacheFlagType) Fetch(context *cli.Context) (*sigs.Cache, error) {
	return sigs.NewCache(context.Int(f.Name))
}

var commonFlags = []cli.Flag{
	cpuProfileFlag,
	VerbosityFlag,
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

// AddCommonFlags extends the command by the profiling and logging flags
// shared by all commands.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {
		VerbosityFlag.Fetch(ctx)

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

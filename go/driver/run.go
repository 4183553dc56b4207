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
	"os"
	"path/filepath"
	"time"

	cliUtils "github.com/Fantom-foundation/tokenservice/go/driver/cli"
	"github.com/Fantom-foundation/tokenservice/go/hts"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Replays JSON scenarios on the precompile",
	ArgsUsage: "<scenario file or directory>...",
	Flags: []cli.Flag{
		cliUtils.ConfigFlag,
		cliUtils.JobsFlag,
		cliUtils.MaxErrorsFlag,
		cliUtils.SignatureCacheFlag,
	},
})

func doRun(context *cli.Context) error {
	if context.Args().Len() == 0 {
		return fmt.Errorf("missing scenario files")
	}
	paths, err := collectScenarioFiles(context.Args().Slice())
	if err != nil {
		return err
	}

	configs, err := cliUtils.ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	processors := make([]hts.Processor, 0, len(configs))
	for _, name := range configs {
		processor, err := newProcessor(name)
		if err != nil {
			return err
		}
		processors = append(processors, processor)
	}

	cache, err := cliUtils.SignatureCacheFlag.Fetch(context)
	if err != nil {
		return err
	}
	jobCount := cliUtils.JobsFlag.Fetch(context)
	maxErrors := cliUtils.MaxErrorsFlag.Fetch(context)

	issuesCollector := cliUtils.IssuesCollector{}
	printIssueCounts := func(relativeTime time.Duration, rate float64, current int64) {
		fmt.Printf(
			"[t=%4d:%02d] - Processing ~%s scenarios per second, total %d, found issues %d\n",
			int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), current, issuesCollector.NumIssues(),
		)
	}

	opRun := func(index int) consumerResult {
		if issuesCollector.NumIssues() >= maxErrors {
			return consumeAbort
		}
		path := paths[index/len(configs)]
		config := configs[index%len(configs)]
		scenario, err := cliUtils.ReadScenario(path)
		if err != nil {
			issuesCollector.AddIssue(nil, err)
			return consumeContinue
		}
		if _, err := scenario.Run(processors[index%len(configs)], cache); err != nil {
			issuesCollector.AddIssue(nil, fmt.Errorf("%s [%s]: %w", path, config, err))
			return consumeContinue
		}
		log.Debug("Scenario passed", "path", path, "config", config)
		return consumeContinue
	}

	fmt.Printf("Replaying %d scenarios on configurations %v ...\n", len(paths), configs)
	forEachCase(len(paths)*len(configs), opRun, printIssueCounts, jobCount)

	issues := issuesCollector.GetIssues()
	if len(issues) == 0 {
		fmt.Printf("All scenarios passed successfully!\n")
		return nil
	}
	if err := issuesCollector.ExportIssues(); err != nil {
		return err
	}
	return fmt.Errorf("failed to pass %d scenarios", len(issues))
}

// collectScenarioFiles expands directories into the JSON files they contain.
func collectScenarioFiles(args []string) ([]string, error) {
	var res []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			res = append(res, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		res = append(res, matches...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no scenario files found in %v", args)
	}
	return res, nil
}

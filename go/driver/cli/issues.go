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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type issue struct {
	input *Scenario
	err   error
}

func (i *issue) Error() error {
	return i.err
}

func (i *issue) Input() *Scenario {
	return i.input
}

// IssuesCollector gathers the issues found by concurrent workers.
type IssuesCollector struct {
	issues []issue
	mu     sync.Mutex
}

// AddIssue registers an issue. A copy of the scenario, if present, is kept
// for exporting.
func (c *IssuesCollector) AddIssue(scenario *Scenario, err error) {
	var clone *Scenario
	if scenario != nil {
		var cloneErr error
		if clone, cloneErr = scenario.Clone(); cloneErr != nil {
			err = errors.Join(err, fmt.Errorf("scenario not retained: %w", cloneErr))
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issue{clone, err})
}

func (c *IssuesCollector) NumIssues() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

func (c *IssuesCollector) GetIssues() []issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issues
}

// ExportIssues prints all issues and stores their scenarios in a temporary
// directory, from where they can be replayed by the run command.
func (c *IssuesCollector) ExportIssues() error {
	issues := c.GetIssues()
	if len(issues) == 0 {
		return nil
	}
	jsonDir, err := os.MkdirTemp("", "hts_issues_*")
	if err != nil {
		return fmt.Errorf("failed to create output directory for %d issues", len(issues))
	}
	for i, issue := range issues {
		fmt.Printf("----------------------------\n")
		fmt.Printf("%s\n", issue.err)

		if issue.input != nil {
			path := filepath.Join(jsonDir, fmt.Sprintf("issue_%06d.json", i))
			if err := WriteScenario(issue.input, path); err == nil {
				fmt.Printf("Scenario dumped to %s\n", path)
			} else {
				fmt.Printf("failed to dump scenario: %v\n", err)
			}
		}
	}
	return nil
}

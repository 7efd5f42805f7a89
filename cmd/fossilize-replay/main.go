// Copyright (C) 2026 Fossilize Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command fossilize-replay loads one serialized document from disk (plus any
// documents its references pull in from the resolve directory) and drives a
// counting StateCreatorInterface over it, reporting per-kind
// object counts and any resolution failures, without touching a real
// graphics driver (§4.11: "offline validation of a capture without
// requiring a live driver").
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/DuckSoft/Fossilize/cmd/fossilize-replay/internal/diskresolver"
	"github.com/DuckSoft/Fossilize/cmd/fossilize-replay/internal/nullcreator"
	"github.com/DuckSoft/Fossilize/replay"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// runCheck loads path, replays it against a counting no-op creator resolved
// against dir for any forward references, and prints a summary.
func runCheck(path, dir string, verbose bool) error {
	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
	}
	defer logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	creator := nullcreator.New(logger)
	resolver := diskresolver.New(dir)
	rp := replay.New(creator, resolver)

	if err := rp.Replay(data); err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	creator.PrintSummary(os.Stdout)
	return nil
}

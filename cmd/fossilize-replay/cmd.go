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

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fossilize-replay",
		Short:         "Offline validator for serialized pipeline-object documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	return root
}

func newCheckCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check <document.json>",
		Short: "Replay a document against a counting creator and report the result",
		Long: `check parses a serialized document and drives every enqueue_create_*
call a real replayer would, in section order, without touching a graphics
driver. Any base-pipeline or shader-module reference that isn't already in
the document is resolved by fetching <hash>.json from --resolve-dir.

Exit codes:
  0 - replay completed and every reference resolved
  1 - replay failed (parse error, unresolved reference, or a creator
      rejection)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], dir, verbose)
		},
	}

	cmd.Flags().StringVar(&dir, "resolve-dir", ".", "directory to search for <hash>.json when a reference is missing from the document")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every enqueue_create_* call")

	return cmd
}

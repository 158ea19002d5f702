// Copyright 2026 Dominik Schlosser
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

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dominikschlosser/bmpqr/internal/bmp"
	"github.com/dominikschlosser/bmpqr/internal/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <bmp_file>",
	Short: "Print the headers of a BMP file without decoding pixels",
	Long:  "Parses and validates the BMP file and info headers and prints their fields, the row order and the padded row stride.",
	Args:  exactlyOnePath,
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return &bmp.Error{Kind: bmp.OpenFailure, Path: path, Err: err}
	}
	defer f.Close()

	h, err := bmp.DecodeHeader(f, path)
	if err != nil {
		return err
	}

	output.PrintHeader(path, h, outputOptions())
	return nil
}

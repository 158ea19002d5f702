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
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dominikschlosser/bmpqr/internal/output"
)

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "bmpqr <bmp_file>",
	Short: "Decode QR codes from 24-bit BMP images",
	Long:  "Loads an uncompressed 24-bit BMP, converts it to 8-bit luminance and prints every QR code found in it.",
	Args:  exactlyOnePath,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	RunE:              runScan,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// usageError is printed verbatim, without the diagnostic prefix.
type usageError struct {
	line string
}

func (e *usageError) Error() string { return e.line }

// exactlyOnePath rejects anything but a single positional argument with a
// usage line.
func exactlyOnePath(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{line: fmt.Sprintf("usage: %s <bmp_file>", cmd.CommandPath())}
	}
	return nil
}

func outputOptions() output.Options {
	return output.Options{
		JSON:    jsonOutput,
		Verbose: verbose,
	}
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, usage.line)
		} else {
			output.PrintError(err.Error())
		}
		return err
	}
	return nil
}

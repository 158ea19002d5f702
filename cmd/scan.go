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
	"github.com/spf13/cobra"

	"github.com/dominikschlosser/bmpqr/internal/output"
	"github.com/dominikschlosser/bmpqr/internal/qr"
)

var (
	binarizer   string
	tryHarder   bool
	pureBarcode bool
	scale       int
)

func init() {
	rootCmd.Flags().StringVar(&binarizer, "binarizer", "hybrid", "Binarizer tried first: 'hybrid' or 'global'")
	rootCmd.Flags().BoolVar(&tryHarder, "try-harder", false, "Spend more time looking for codes")
	rootCmd.Flags().BoolVar(&pureBarcode, "pure", false, "Assume a single, unrotated code with no surroundings")
	rootCmd.Flags().IntVar(&scale, "scale", 1, "Upscale the image by this factor before recognition (1-8)")
}

func scanOptions() (qr.Options, error) {
	b, err := qr.ParseBinarizer(binarizer)
	if err != nil {
		return qr.Options{}, err
	}
	opts := qr.Options{
		Binarizer:   b,
		TryHarder:   tryHarder,
		PureBarcode: pureBarcode,
		Scale:       scale,
	}
	return opts, opts.Validate()
}

func runScan(cmd *cobra.Command, args []string) error {
	opts, err := scanOptions()
	if err != nil {
		return err
	}

	scan, err := qr.ScanFile(args[0], opts)
	if err != nil {
		return err
	}

	output.PrintScan(scan, outputOptions())
	return nil
}

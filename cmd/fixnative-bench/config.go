/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package main

import (
	"fmt"
	"os"

	spfcbr "github.com/spf13/cobra"

	"github.com/sabouaram/fixnative/rtconfig"
)

func newConfigCommand() *spfcbr.Command {
	var fromFile string

	cmd := &spfcbr.Command{
		Use:   "config",
		Short: "Print the effective runtime configuration as YAML",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			cfg := rtconfig.Default()

			if fromFile != "" {
				b, err := os.ReadFile(fromFile)
				if err != nil {
					return err
				}
				cfg, err = rtconfig.LoadYAML(b)
				if err != nil {
					return err
				}
			}

			out, err := cfg.DumpYAML()
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "from", "", "YAML file to load and merge over the defaults before printing")
	return cmd
}

// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	ok := &cobra.Command{
		Use: "ok",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	assert.NoError(t, Run(ok))

	failing := &cobra.Command{
		Use: "failing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("boom")
		},
	}
	failing.SilenceErrors = true
	failing.SilenceUsage = true
	assert.Error(t, Run(failing))
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("inventory-service")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print version", cmd.Short)
	assert.Empty(t, cmd.Commands())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, []string{})
	assert.Equal(t, "inventory-service version "+Version+"\n", buf.String())
}

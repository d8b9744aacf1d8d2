// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tinfer"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunScenarios(t *testing.T) {
	out, err := execute("run", "../../internal/fixture/testdata/scenarios.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "fold right")
	assert.NotContains(t, out, "FAIL")
}

func TestRunMissingFile(t *testing.T) {
	_, err := execute("run", "testdata/missing.toml")
	assert.Error(t, err)
}

func TestInferCommand(t *testing.T) {
	out, err := execute("infer", "T Function<T>(T)", "int")
	require.NoError(t, err)
	assert.Contains(t, out, "{T: int}")

	out, err = execute("infer", "--context", "List<num>", "List<T> Function<T>(T)", "int")
	require.NoError(t, err)
	assert.Contains(t, out, "{T: num}")

	out, err = execute("infer", "T Function<T extends int>(T)", "String")
	assert.ErrorIs(t, err, tinfer.ErrOverConstrained)
	assert.Contains(t, out, "OVER-CONSTRAINED")

	_, err = execute("infer", "int")
	assert.Error(t, err)
}

func TestInferMemberCommand(t *testing.T) {
	out, err := execute("--classes", "../../internal/fixture/testdata/scenarios.toml",
		"infer", "--member", "map", "Pair<int, String>", "double Function(int)")
	require.NoError(t, err)
	assert.Contains(t, out, "{R: double}")
}

func TestMatchCommand(t *testing.T) {
	out, err := execute("match", "List<X>", "List<num>")
	require.NoError(t, err)
	assert.Contains(t, out, "{_ <: X <: num}")

	out, err = execute("match", "--vars", "X", "String", "List<X>")
	require.NoError(t, err)
	assert.Contains(t, out, "NO MATCH")

	_, err = execute("match", "List<X>")
	assert.Error(t, err)
}

func TestBoundCommands(t *testing.T) {
	out, err := execute("up", "int", "double")
	require.NoError(t, err)
	assert.Contains(t, out, "num")

	out, err = execute("down", "int", "num")
	require.NoError(t, err)
	assert.Contains(t, out, "int")

	out, err = execute("subtype", "int?", "Object")
	require.NoError(t, err)
	assert.Contains(t, out, "false")
}

func TestClosureCommand(t *testing.T) {
	out, err := execute("closure", "--vars", "X", "X Function(X)")
	require.NoError(t, err)
	assert.Contains(t, out, "Never Function(Object?)")

	out, err = execute("closure", "--greatest", "Consumer<_>", "--classes", "../../internal/fixture/testdata/scenarios.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "Consumer<Never>")
}

func TestTraceFlag(t *testing.T) {
	out, err := execute("--trace", "match", "List<X>", "Iterable<num>")
	require.NoError(t, err)
	assert.Contains(t, out, "TRACE")
	assert.Contains(t, out, "superinterface")
}

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

package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tinfer"
	"github.com/wdamron/tinfer/ast"
	"github.com/wdamron/tinfer/types"
)

func TestParseRoundTrip(t *testing.T) {
	n := NewNotation(CoreEnv())
	sc, _, err := n.Bind(nil, "X")
	require.NoError(t, err)

	for _, src := range []string{
		"_",
		"Object?",
		"X?",
		"List<int>?",
		"FutureOr<List<num>>",
		"Map<String, List<X>>",
		"void Function(int, [String])",
		"T Function<T extends Comparable<T>>(T, T)",
		"int Function({required String name, num x})",
		"(int Function()) Function(String)",
		"(int Function())?",
		"Never Function(Object?)",
		"(int, String)",
		"(X,)",
		"(int, {String name})",
		"()",
		"Future<int>",
		"Function",
	} {
		e, err := ParseTypeExpr(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, ast.ExprString(e))

		ty, err := n.Resolve(e, sc)
		require.NoError(t, err, src)
		assert.Equal(t, src, types.TypeString(ty))
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"List<",
		"List<>",
		"int Function(",
		"(int",
		"{",
		"int Function({int})",
		"int Function([int], String)",
		"X Function<>(X)",
		"FutureOr",
		"int #",
		"int int",
	} {
		_, err := ParseTypeExpr(src)
		assert.Error(t, err, "expected a parse error for %q", src)
	}

	tp, err := ParseTypeParam("T extends Comparable<T>")
	require.NoError(t, err)
	assert.Equal(t, "T", tp.Name)
	assert.Equal(t, "Comparable<T>", ast.ExprString(tp.Bound))

	_, err = ParseTypeParam("_")
	assert.Error(t, err)
}

func TestResolveErrors(t *testing.T) {
	n := NewNotation(CoreEnv())
	sc, _, err := n.Bind(nil, "X")
	require.NoError(t, err)

	for _, src := range []string{
		"Undeclared",
		"List<int, int>",
		"Map<int>",
		"X<int>",
		"Object<int>",
		"T Function<T, T>(T)",
	} {
		_, err := n.ParseType(src, sc)
		assert.Error(t, err, "expected a resolution error for %q", src)
	}

	_, err = n.ParseFunction("List<int>", nil)
	assert.Error(t, err)
}

func TestFreeNames(t *testing.T) {
	n := NewNotation(CoreEnv())
	left, err := ParseTypeExpr("Map<K, List<V>>")
	require.NoError(t, err)
	right, err := ParseTypeExpr("T Function<T>(K, Never, W)")
	require.NoError(t, err)
	assert.Equal(t, []string{"K", "V", "W"}, n.FreeNames(left, right))
}

func TestDeclareClasses(t *testing.T) {
	n := NewNotation(CoreEnv())
	node := &ast.ClassDecl{
		Name:       "Node",
		TypeParams: []ast.TypeParam{{Name: "T"}},
		Interfaces: []ast.TypeExpr{mustParse(t, "Comparable<Node<T>>")},
		Members:    []ast.Member{{Name: "children", Signature: mustParse(t, "List<Node<T>> Function()").(*ast.Func)}},
	}
	leaf := &ast.ClassDecl{
		Name:       "Leaf",
		TypeParams: []ast.TypeParam{{Name: "T", Bound: mustParse(t, "num")}},
		Superclass: mustParse(t, "Node<T>"),
	}
	decls, err := n.DeclareClasses([]*ast.ClassDecl{leaf, node})
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Same(t, decls[1], n.Env.Lookup("Node"))
	assert.Same(t, decls[1], decls[0].Superclass.Decl)

	ctx := tinfer.NewContext(n.Env)
	leafInt, err := n.ParseType("Leaf<int>", nil)
	require.NoError(t, err)
	nodeNum, err := n.ParseType("Comparable<Node<int>>", nil)
	require.NoError(t, err)
	assert.True(t, ctx.IsSubtype(leafInt, nodeNum))

	_, err = n.DeclareClasses([]*ast.ClassDecl{{Name: "List"}})
	assert.Error(t, err)

	_, err = n.DeclareClasses([]*ast.ClassDecl{
		{Name: "A", Superclass: mustParse(t, "B")},
		{Name: "B", Superclass: mustParse(t, "A")},
	})
	assert.Error(t, err)
	assert.Nil(t, n.Env.Lookup("A"))

	_, err = n.DeclareClasses([]*ast.ClassDecl{{Name: "F", Interfaces: []ast.TypeExpr{mustParse(t, "int Function()")}}})
	assert.Error(t, err)

	_, err = n.DeclareClasses([]*ast.ClassDecl{{
		Name:       "Cyclic",
		TypeParams: []ast.TypeParam{{Name: "X", Bound: mustParse(t, "Y")}, {Name: "Y", Bound: mustParse(t, "X")}},
	}})
	assert.Error(t, err)
}

func mustParse(t *testing.T, src string) ast.TypeExpr {
	t.Helper()
	e, err := ParseTypeExpr(src)
	require.NoError(t, err)
	return e
}

func TestScenarios(t *testing.T) {
	s, err := Load("testdata/scenarios.toml")
	require.NoError(t, err)
	require.Len(t, s.Classes, 5)
	require.NotEmpty(t, s.Cases)

	for _, r := range s.Run(nil) {
		r := r
		t.Run(r.Case.Name, func(t *testing.T) {
			require.NoError(t, r.Err)
			assert.Equal(t, r.Want, r.Got)
			assert.True(t, r.Passed())
		})
	}
}

func TestScenarioFailures(t *testing.T) {
	s, err := Decode([]byte(`
[[case]]
name = "unexpected failure"
signature = "void Function<E>(List<E>)"
args = ["String"]
expect = { E = "String" }

[[case]]
name = "unexpected success"
signature = "T Function<T>(T)"
args = ["int"]
error = "no match"

[[case]]
name = "unknown type-parameter"
signature = "T Function<T>(T)"
args = ["int"]
expect = { U = "int" }

[[case]]
name = "unparsable argument"
signature = "T Function<T>(T)"
args = ["List<"]
`), "inline.toml")
	require.NoError(t, err)

	results := s.Run(nil)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.False(t, r.Passed(), r.Case.Name)
	}
	assert.True(t, strings.HasPrefix(results[0].Got, "error: no match"), results[0].Got)
	assert.Equal(t, "error: no match", results[1].Want)
	assert.Equal(t, "{T: int}", results[1].Got)
	assert.Error(t, results[2].Err)
	assert.Error(t, results[3].Err)
}

func TestDecodeErrors(t *testing.T) {
	for name, src := range map[string]string{
		"toml":          `[[case]`,
		"kind":          "[[case]]\nkind = \"unify\"",
		"param":         "[[class]]\nname = \"C\"\nparams = [\"T extends\"]",
		"variance":      "[[class]]\nname = \"C\"\nparams = [\"T\"]\nvariances = [\"sideways\"]",
		"member":        "[[class]]\nname = \"C\"\n[class.members]\nm = \"int\"",
		"hierarchy":     "[[class]]\nname = \"A\"\nextends = \"B\"\n[[class]]\nname = \"B\"\nextends = \"A\"",
		"undeclared":    "[[class]]\nname = \"A\"\nextends = \"Missing\"",
		"redeclaration": "[[class]]\nname = \"num\"",
	} {
		_, err := Decode([]byte(src), name+".toml")
		assert.Error(t, err, name)
	}
}

func TestTracedRun(t *testing.T) {
	s, err := Load("testdata/scenarios.toml")
	require.NoError(t, err)
	var lines int
	results := s.Run(tinfer.TracerFunc(func(format string, args ...interface{}) { lines++ }))
	assert.NotEmpty(t, results)
	assert.Greater(t, lines, 0)
}

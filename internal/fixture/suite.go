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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wdamron/tinfer"
	"github.com/wdamron/tinfer/ast"
	"github.com/wdamron/tinfer/types"
)

// Kinds of scenario cases
const (
	KindInfer           = "infer"
	KindMember          = "member"
	KindMatch           = "match"
	KindUp              = "up"
	KindDown            = "down"
	KindSubtype         = "subtype"
	KindLeastClosure    = "least-closure"
	KindGreatestClosure = "greatest-closure"
)

var kinds = []string{KindInfer, KindMember, KindMatch, KindUp, KindDown, KindSubtype, KindLeastClosure, KindGreatestClosure}

// NoMatch is the expected result of a match case which cannot be satisfied.
const NoMatch = "no match"

// tomlFile is the layout of a scenario file
type tomlFile struct {
	Classes []*tomlClass `toml:"class"`
	Cases   []*Case      `toml:"case"`
}

// tomlClass is a class declaration as it is encoded in TOML
type tomlClass struct {
	Name       string            `toml:"name"`
	Params     []string          `toml:"params"`
	Variances  []string          `toml:"variances"`
	Extends    string            `toml:"extends"`
	Implements []string          `toml:"implements"`
	With       []string          `toml:"with"`
	Members    map[string]string `toml:"members"`
}

// Case is a single scenario: an inference episode or a query against one of the
// underlying operations, with its expected outcome.
type Case struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`

	// infer and member cases
	Signature string            `toml:"signature"`
	Receiver  string            `toml:"receiver"`
	Member    string            `toml:"member"`
	Args      []string          `toml:"args"`
	Context   string            `toml:"context"`
	Expect    map[string]string `toml:"expect"`
	Error     string            `toml:"error"`

	// match, bound, subtype and closure cases
	Left   string   `toml:"left"`
	Right  string   `toml:"right"`
	Vars   []string `toml:"vars"`
	Result string   `toml:"result"`
}

// Suite is a decoded scenario file. Classes are declared in the notation's environment,
// whose parent holds the core class library.
type Suite struct {
	Path     string
	Notation *Notation
	Classes  []*types.Decl
	Cases    []*Case
}

// Load and decode a scenario file.
func Load(path string) (*Suite, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(buff, path)
}

// Decode a scenario file. The path is only used in error messages.
func Decode(buff []byte, path string) (*Suite, error) {
	f := &tomlFile{}
	if err := toml.Unmarshal(buff, f); err != nil {
		return nil, errors.Wrap(err, path)
	}

	s := &Suite{Path: path, Notation: NewNotation(CoreEnv()), Cases: f.Cases}
	decls := make([]*ast.ClassDecl, len(f.Classes))
	for i, c := range f.Classes {
		d, err := c.decl()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: class %s", path, c.Name)
		}
		decls[i] = d
	}
	classes, err := s.Notation.DeclareClasses(decls)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	s.Classes = classes

	for i, c := range s.Cases {
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if c.Kind == "" {
			c.Kind = KindInfer
		}
		if !slices.Contains(kinds, c.Kind) {
			return nil, errors.Errorf("%s: %s: unknown kind %q", path, c.Name, c.Kind)
		}
	}
	return s, nil
}

func (c *tomlClass) decl() (*ast.ClassDecl, error) {
	d := &ast.ClassDecl{Name: c.Name, Variances: c.Variances}
	for _, src := range c.Params {
		tp, err := ParseTypeParam(src)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", src)
		}
		d.TypeParams = append(d.TypeParams, tp)
	}
	var err error
	if c.Extends != "" {
		if d.Superclass, err = parseExpr(c.Extends); err != nil {
			return nil, err
		}
	}
	if d.Interfaces, err = parseExprs(c.Implements); err != nil {
		return nil, err
	}
	if d.Mixins, err = parseExprs(c.With); err != nil {
		return nil, err
	}
	names := maps.Keys(c.Members)
	slices.Sort(names)
	for _, name := range names {
		e, err := parseExpr(c.Members[name])
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", name)
		}
		fn, ok := e.(*ast.Func)
		if !ok {
			return nil, errors.Errorf("member %s: %q is not a function type", name, c.Members[name])
		}
		d.Members = append(d.Members, ast.Member{Name: name, Signature: fn})
	}
	return d, nil
}

func parseExpr(src string) (ast.TypeExpr, error) {
	e, err := ParseTypeExpr(src)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", src)
	}
	return e, nil
}

func parseExprs(srcs []string) ([]ast.TypeExpr, error) {
	var es []ast.TypeExpr
	for _, src := range srcs {
		e, err := parseExpr(src)
		if err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	return es, nil
}

// Result is the outcome of a single case. Err is set when the case itself could not be
// evaluated (for example, when a type does not parse); expected inference failures are
// reported through Got and Want.
type Result struct {
	Case *Case
	Got  string
	Want string
	Err  error
}

// Passed reports whether the case was evaluated and produced the expected outcome.
func (r *Result) Passed() bool { return r.Err == nil && r.Got == r.Want }

// Run evaluates every case of the suite in order, on a single inference context. A nil
// tracer disables tracing.
func (s *Suite) Run(tracer tinfer.Tracer) []*Result {
	ctx := tinfer.NewContext(s.Notation.Env)
	ctx.SetTracer(tracer)
	results := make([]*Result, len(s.Cases))
	for i, c := range s.Cases {
		results[i] = s.RunCase(ctx, c)
	}
	return results
}

// RunCase evaluates a single case.
func (s *Suite) RunCase(ctx *tinfer.InferenceContext, c *Case) *Result {
	r := &Result{Case: c}
	var err error
	switch c.Kind {
	case KindInfer, KindMember:
		err = s.runInfer(ctx, c, r)
	case KindMatch:
		err = s.runMatch(ctx, c, r)
	default:
		err = s.runQuery(ctx, c, r)
	}
	if err != nil {
		r.Err = errors.Wrapf(err, "%s: %s", s.Path, c.Name)
	}
	return r
}

func (s *Suite) parseArgs(c *Case) (args []types.Type, context types.Type, err error) {
	for _, src := range c.Args {
		t, err := s.Notation.ParseType(src, nil)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, t)
	}
	if c.Context != "" {
		if context, err = s.Notation.ParseType(c.Context, nil); err != nil {
			return nil, nil, err
		}
	}
	return args, context, nil
}

func (s *Suite) runInfer(ctx *tinfer.InferenceContext, c *Case, r *Result) error {
	args, context, err := s.parseArgs(c)
	if err != nil {
		return err
	}
	var (
		sig   *types.Function
		subst types.Substitution
	)
	if c.Kind == KindMember {
		receiver, err := s.Notation.ParseType(c.Receiver, nil)
		if err != nil {
			return err
		}
		it, ok := receiver.(*types.Interface)
		if !ok {
			return errors.Errorf("Receiver %q is not a class type", c.Receiver)
		}
		sig, subst, err = ctx.InferMember(it, c.Member, args, context)
		if sig == nil && err != nil {
			return err
		}
		if err != nil {
			return s.failure(c, r, err)
		}
	} else {
		if sig, err = s.Notation.ParseFunction(c.Signature, nil); err != nil {
			return err
		}
		if subst, err = ctx.Infer(sig, args, context); err != nil {
			return s.failure(c, r, err)
		}
	}

	byName := make(map[string]*types.Var, len(sig.TypeParams))
	for _, tv := range sig.TypeParams {
		byName[tv.Name()] = tv
	}
	names := maps.Keys(c.Expect)
	slices.Sort(names)
	got, want := make(types.Substitution, len(names)), make(types.Substitution, len(names))
	for _, name := range names {
		tv, ok := byName[name]
		if !ok {
			return errors.Errorf("%s is not a type-parameter of %v", name, sig)
		}
		t, err := s.Notation.ParseType(c.Expect[name], nil)
		if err != nil {
			return err
		}
		got[tv], want[tv] = subst[tv], t
	}
	if c.Error != "" {
		// an unexpected success reports the whole solution
		r.Got, r.Want = types.SubstitutionString(subst, sig.TypeParams), failureString(c.Error)
		return nil
	}
	r.Got, r.Want = types.SubstitutionString(got, sig.TypeParams), types.SubstitutionString(want, sig.TypeParams)
	return nil
}

func failureString(kind string) string { return "error: " + kind }

func (s *Suite) failure(c *Case, r *Result, err error) error {
	var f *tinfer.InferenceFailure
	if !errors.As(err, &f) {
		return err
	}
	r.Got = failureString(f.Kind.String())
	if c.Error != "" {
		r.Want = failureString(c.Error)
	} else {
		r.Want = "success"
		r.Got += " (" + f.Error() + ")"
	}
	return nil
}

// bind resolves the left and right types of c in a scope which binds c.Vars, or the free
// names of both types when c.Vars is empty.
func (s *Suite) bind(c *Case) (*Scope, []*types.Var, types.Type, types.Type, error) {
	left, err := parseExpr(c.Left)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	var right ast.TypeExpr
	exprs := []ast.TypeExpr{left}
	if c.Right != "" {
		if right, err = parseExpr(c.Right); err != nil {
			return nil, nil, nil, nil, err
		}
		exprs = append(exprs, right)
	}
	names := c.Vars
	if len(names) == 0 {
		names = s.Notation.FreeNames(exprs...)
	}
	sc, vars, err := s.Notation.Bind(nil, names...)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	l, err := s.Notation.Resolve(left, sc)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrapf(err, "%q", c.Left)
	}
	var rt types.Type
	if right != nil {
		if rt, err = s.Notation.Resolve(right, sc); err != nil {
			return nil, nil, nil, nil, errors.Wrapf(err, "%q", c.Right)
		}
	}
	return sc, vars, l, rt, nil
}

func (s *Suite) runMatch(ctx *tinfer.InferenceContext, c *Case, r *Result) error {
	if c.Right == "" {
		return errors.New("Missing right type")
	}
	_, vars, p, q, err := s.bind(c)
	if err != nil {
		return err
	}
	if cs, ok := ctx.Match(p, q, vars...); ok {
		r.Got = cs.String()
	} else {
		r.Got = NoMatch
	}
	r.Want = strings.TrimSpace(c.Result)
	return nil
}

func (s *Suite) runQuery(ctx *tinfer.InferenceContext, c *Case, r *Result) error {
	sc, vars, a, b, err := s.bind(c)
	if err != nil {
		return err
	}
	if b == nil && (c.Kind == KindUp || c.Kind == KindDown || c.Kind == KindSubtype) {
		return errors.New("Missing right type")
	}
	switch c.Kind {
	case KindSubtype:
		r.Got, r.Want = strconv.FormatBool(ctx.IsSubtype(a, b)), strings.TrimSpace(c.Result)
		return nil
	case KindUp:
		r.Got = types.TypeString(ctx.UpperBound(a, b))
	case KindDown:
		r.Got = types.TypeString(ctx.LowerBound(a, b))
	case KindLeastClosure, KindGreatestClosure:
		elim := tinfer.ElimUnknown
		if len(c.Vars) > 0 {
			elim = tinfer.ElimVars(vars...)
		}
		if c.Kind == KindLeastClosure {
			r.Got = types.TypeString(tinfer.LeastClosure(a, elim))
		} else {
			r.Got = types.TypeString(tinfer.GreatestClosure(a, elim))
		}
	}
	want, err := s.Notation.ParseType(c.Result, sc)
	if err != nil {
		return err
	}
	r.Want = types.TypeString(want)
	return nil
}

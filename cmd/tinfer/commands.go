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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wdamron/tinfer"
	"github.com/wdamron/tinfer/ast"
	"github.com/wdamron/tinfer/internal/fixture"
	"github.com/wdamron/tinfer/types"
)

type options struct {
	trace   bool
	classes string
}

// notation returns a notation over the core class library, extended with the classes of
// the scenario file named by --classes.
func (o *options) notation() (*fixture.Notation, error) {
	if o.classes == "" {
		return fixture.NewNotation(fixture.CoreEnv()), nil
	}
	s, err := fixture.Load(o.classes)
	if err != nil {
		return nil, err
	}
	return s.Notation, nil
}

func (o *options) context(cmd *cobra.Command) (*tinfer.InferenceContext, *fixture.Notation, display, error) {
	d := display{w: cmd.OutOrStdout()}
	n, err := o.notation()
	if err != nil {
		return nil, nil, d, err
	}
	ctx := tinfer.NewContext(n.Env)
	ctx.SetTracer(d.tracer(o.trace))
	return ctx, n, d, nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "tinfer",
		Short:         "Local type-argument inference for generic invocations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&o.trace, "trace", false, "trace matching rules and solving steps")
	root.PersistentFlags().StringVar(&o.classes, "classes", "", "declare the classes of a scenario file")

	root.AddCommand(
		newRunCmd(o),
		newInferCmd(o),
		newMatchCmd(o),
		newBoundCmd(o, "up", "Compute the least upper bound of two types"),
		newBoundCmd(o, "down", "Compute the greatest lower bound of two types"),
		newBoundCmd(o, "subtype", "Check whether the first type is a subtype of the second"),
		newClosureCmd(o),
	)
	return root
}

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE...",
		Short: "Run the cases of one or more scenario files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := display{w: cmd.OutOrStdout()}
			failed := 0
			for _, path := range args {
				s, err := fixture.Load(path)
				if err != nil {
					return err
				}
				for _, r := range s.Run(d.tracer(o.trace)) {
					switch {
					case r.Err != nil:
						failed++
						d.failure("FAIL", r.Err.Error())
					case !r.Passed():
						failed++
						d.failure("FAIL", fmt.Sprintf("%s: got %s, want %s", r.Case.Name, r.Got, r.Want))
					default:
						d.success("PASS", r.Case.Name)
					}
				}
			}
			if failed > 0 {
				return errors.Errorf("%d case(s) failed", failed)
			}
			return nil
		},
	}
}

func newInferCmd(o *options) *cobra.Command {
	var context, member string
	cmd := &cobra.Command{
		Use:   "infer SIGNATURE|RECEIVER [ARG...]",
		Short: "Infer the type-arguments of an invocation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, n, d, err := o.context(cmd)
			if err != nil {
				return err
			}
			argTypes := make([]types.Type, 0, len(args)-1)
			for _, src := range args[1:] {
				t, err := n.ParseType(src, nil)
				if err != nil {
					return err
				}
				argTypes = append(argTypes, t)
			}
			var contextType types.Type
			if context != "" {
				if contextType, err = n.ParseType(context, nil); err != nil {
					return err
				}
			}

			var (
				sig   *types.Function
				subst types.Substitution
			)
			if member != "" {
				receiver, err := n.ParseType(args[0], nil)
				if err != nil {
					return err
				}
				it, ok := receiver.(*types.Interface)
				if !ok {
					return errors.Errorf("Receiver %q is not a class type", args[0])
				}
				sig, subst, err = ctx.InferMember(it, member, argTypes, contextType)
				if sig == nil && err != nil {
					return err
				}
				if err != nil {
					return reportFailure(d, err)
				}
			} else {
				if sig, err = n.ParseFunction(args[0], nil); err != nil {
					return err
				}
				if subst, err = ctx.Infer(sig, argTypes, contextType); err != nil {
					return reportFailure(d, err)
				}
			}
			d.success("OK", types.SubstitutionString(subst, sig.TypeParams))
			return nil
		},
	}
	cmd.Flags().StringVar(&context, "context", "", "the type expected by the invocation's context")
	cmd.Flags().StringVar(&member, "member", "", "infer an invocation of the named member of the receiver")
	return cmd
}

func reportFailure(d display, err error) error {
	var f *tinfer.InferenceFailure
	if errors.As(err, &f) {
		d.failure(strings.ToUpper(f.Kind.String()), f.Error())
	}
	return err
}

// bind resolves srcs within a scope binding vars, or the free names of srcs when vars is
// empty.
func bind(n *fixture.Notation, vars []string, srcs ...string) ([]*types.Var, []types.Type, error) {
	exprs := make([]ast.TypeExpr, len(srcs))
	for i, src := range srcs {
		e, err := fixture.ParseTypeExpr(src)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%q", src)
		}
		exprs[i] = e
	}
	if len(vars) == 0 {
		vars = n.FreeNames(exprs...)
	}
	sc, tvs, err := n.Bind(nil, vars...)
	if err != nil {
		return nil, nil, err
	}
	ts := make([]types.Type, len(exprs))
	for i, e := range exprs {
		if ts[i], err = n.Resolve(e, sc); err != nil {
			return nil, nil, errors.Wrapf(err, "%q", srcs[i])
		}
	}
	return tvs, ts, nil
}

func newMatchCmd(o *options) *cobra.Command {
	var vars []string
	cmd := &cobra.Command{
		Use:   "match P Q",
		Short: "Derive the constraints under which P is a subtype of Q",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, n, d, err := o.context(cmd)
			if err != nil {
				return err
			}
			tvs, ts, err := bind(n, vars, args...)
			if err != nil {
				return err
			}
			cs, ok := ctx.Match(ts[0], ts[1], tvs...)
			if !ok {
				d.failure("NO MATCH", types.TypeString(ts[0])+" <: "+types.TypeString(ts[1]))
				return nil
			}
			d.success("OK", cs.String())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&vars, "vars", nil, "type-variables to infer (defaults to every undeclared name)")
	return cmd
}

func newBoundCmd(o *options, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " A B",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, n, d, err := o.context(cmd)
			if err != nil {
				return err
			}
			_, ts, err := bind(n, nil, args...)
			if err != nil {
				return err
			}
			switch use {
			case "up":
				d.info("UP", types.TypeString(ctx.UpperBound(ts[0], ts[1])))
			case "down":
				d.info("DOWN", types.TypeString(ctx.LowerBound(ts[0], ts[1])))
			default:
				d.info("SUBTYPE", strconv.FormatBool(ctx.IsSubtype(ts[0], ts[1])))
			}
			return nil
		},
	}
}

func newClosureCmd(o *options) *cobra.Command {
	var (
		vars     []string
		greatest bool
	)
	cmd := &cobra.Command{
		Use:   "closure T",
		Short: "Eliminate type-variables (or the unknown marker) from a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n, d, err := o.context(cmd)
			if err != nil {
				return err
			}
			tvs, ts, err := bind(n, vars, args[0])
			if err != nil {
				return err
			}
			elim := tinfer.ElimUnknown
			if len(vars) > 0 {
				elim = tinfer.ElimVars(tvs...)
			}
			if greatest {
				d.info("GREATEST", types.TypeString(tinfer.GreatestClosure(ts[0], elim)))
			} else {
				d.info("LEAST", types.TypeString(tinfer.LeastClosure(ts[0], elim)))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&vars, "vars", nil, "type-variables to eliminate (defaults to the unknown marker)")
	cmd.Flags().BoolVar(&greatest, "greatest", false, "compute the greatest closure instead of the least closure")
	return cmd
}

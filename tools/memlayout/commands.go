// Copyright 2024 Google LLC
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

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gx-org/memlayout/fmterr"
	"github.com/gx-org/memlayout/tools/config"
	"github.com/gx-org/memlayout/tools/layoutflag"
	"github.com/gx-org/memlayout/visualize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type app struct {
	logLevel string
	color    bool
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "memlayout",
		Short:         "Visualize how the elements of an array are laid out in memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.color, "color", true, "color the slots by kind")
	root.AddCommand(
		a.stridesCmd(),
		a.reshapeCmd(),
		a.exprCmd(),
		a.runCmd(),
	)
	return root
}

func (a *app) setupLogger(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return errors.Errorf("invalid log level %q", a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) options() []visualize.Option {
	return []visualize.Option{visualize.WithLogger(a.logger)}
}

// report prints the result of a computation or the error with its position if it has one.
func (a *app) report(cmd *cobra.Command, res *visualize.Result, err error) error {
	if err != nil {
		a.logger.Debug("command failed", "error", fmt.Sprintf("%+v", err))
		fmt.Fprintln(cmd.ErrOrStderr(), fmterr.Highlight(err))
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), newPrinter(a.color).sprint(res))
	return err
}

func (a *app) stridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strides",
		Short: "Layout of an array given its shape and its stride",
	}
	shape := layoutflag.IntList(cmd.Flags(), "shape", "length of each axis")
	stride := layoutflag.IntList(cmd.Flags(), "stride", "stride of each axis")
	masks := layoutflag.MaskList(cmd.Flags(), "masks", "valid lo:hi range of each axis")
	cmd.MarkFlagRequired("shape")
	cmd.MarkFlagRequired("stride")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		res, err := visualize.Strides(visualize.StridesRequest{
			Shape:  *shape,
			Stride: *stride,
			Masks:  *masks,
		}, a.options()...)
		return a.report(cmd, res, err)
	}
	return cmd
}

func (a *app) reshapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reshape",
		Short: "Layout of the memory of an array arranged into a new shape",
	}
	shape := layoutflag.IntList(cmd.Flags(), "shape", "current length of each axis")
	stride := layoutflag.IntList(cmd.Flags(), "stride", "current stride of each axis")
	toShape := layoutflag.IntList(cmd.Flags(), "to-shape", "new length of each axis")
	toStride := layoutflag.IntList(cmd.Flags(), "to-stride", "new stride of each axis")
	toMasks := layoutflag.MaskList(cmd.Flags(), "to-masks", "valid lo:hi range of each new axis")
	for _, name := range []string{"shape", "stride", "to-shape", "to-stride"} {
		cmd.MarkFlagRequired(name)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		res, err := visualize.Reshape(
			visualize.StridesRequest{Shape: *shape, Stride: *stride},
			visualize.StridesRequest{Shape: *toShape, Stride: *toStride, Masks: *toMasks},
			a.options()...,
		)
		return a.report(cmd, res, err)
	}
	return cmd
}

func (a *app) exprCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expr",
		Short: "Layout of an array given an index expression",
	}
	vars := layoutflag.VariableList(cmd.Flags(), "var", "variable declared as name=min:max, one per axis (default idx0=0:2,idx1=0:1)")
	src := cmd.Flags().String("expr", "idx0 * 2 + idx1", "index expression")
	valid := cmd.Flags().String("valid", "", "expression evaluating to 1 for valid elements")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req := visualize.ExpressionRequest{
			Variables:  *vars,
			Expression: *src,
			Valid:      *valid,
		}
		if len(req.Variables) == 0 {
			req.Variables = []visualize.Variable{
				{Name: "idx0", Min: 0, Max: 2},
				{Name: "idx1", Min: 0, Max: 1},
			}
		}
		res, err := visualize.Expression(req, a.options()...)
		return a.report(cmd, res, err)
	}
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Layout of an array described by a YAML scenario",
	}
	path := cmd.Flags().String("config", "", "path to the scenario")
	cmd.MarkFlagRequired("config")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scenario, err := config.Load(*path)
		if err != nil {
			return a.report(cmd, nil, err)
		}
		a.logger.Info("scenario loaded", "path", *path, "mode", scenario.Mode)
		res, err := scenario.Run(a.options()...)
		return a.report(cmd, res, err)
	}
	return cmd
}

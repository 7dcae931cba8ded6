/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/mimetic/InputParameters"
	"github.com/notargets/mimetic/batch"
)

// Dense printing is refused above this many entries
const maxPrintEntries = 40000

// InterpCmd represents the interp command
var InterpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Assemble an interpolation correction operator",
	Long: `
Assembles the interpolation correction for a 2-D (o = 0) or 3-D grid.
2-D grids accept the plain-neumann and edge topologies, 3-D grids also accept
curvilinear-plain, curvilinear-plain-pair, curvilinear-edge and
curvilinear-edge-pair.

mimetic interp -m 4 -n 6 -o 3 -t curvilinear-plain`,
	Run: func(cmd *cobra.Command, args []string) {
		runSingle(cmd, gridJob(cmd, InputParameters.FamilyInterpolation))
	},
}

// DivCorrCmd represents the divcorr command
var DivCorrCmd = &cobra.Command{
	Use:   "divcorr",
	Short: "Assemble a divergence/gradient correction operator",
	Long: `
Assembles the divergence/gradient correction that extends a 2-D (o = 0) or
3-D grid by one boundary element per axis.

mimetic divcorr -m 4 -n 4 -t edge`,
	Run: func(cmd *cobra.Command, args []string) {
		runSingle(cmd, gridJob(cmd, InputParameters.FamilyDivergence))
	},
}

// NodalCmd represents the nodal command
var NodalCmd = &cobra.Command{
	Use:   "nodal",
	Short: "Assemble a nodal first derivative operator",
	Long: `
Assembles the second order first derivative at the nodes of a 1-D (n = 0),
2-D (o = 0) or 3-D grid.

mimetic nodal -m 8 --dx 0.125`,
	Run: func(cmd *cobra.Command, args []string) {
		job := InputParameters.Job{Name: "nodal", Family: InputParameters.FamilyNodal}
		job.M, _ = cmd.Flags().GetInt("m")
		job.N, _ = cmd.Flags().GetInt("n")
		job.O, _ = cmd.Flags().GetInt("o")
		job.Order, _ = cmd.Flags().GetInt("order")
		dx, _ := cmd.Flags().GetFloat64("dx")
		dy, _ := cmd.Flags().GetFloat64("dy")
		dz, _ := cmd.Flags().GetFloat64("dz")
		job.Spacing = []float64{dx, dy, dz}
		runSingle(cmd, job)
	},
}

func init() {
	rootCmd.AddCommand(InterpCmd)
	rootCmd.AddCommand(DivCorrCmd)
	rootCmd.AddCommand(NodalCmd)
	for _, c := range []*cobra.Command{InterpCmd, DivCorrCmd} {
		c.Flags().IntP("m", "m", 4, "cells along x")
		c.Flags().IntP("n", "n", 4, "cells along y")
		c.Flags().IntP("o", "o", 0, "cells along z, 0 for a 2-D grid")
		c.Flags().StringP("topology", "t", "plain-neumann", "topology name or tag 1-6")
		addOutputFlags(c)
	}
	NodalCmd.Flags().IntP("m", "m", 4, "cells along x")
	NodalCmd.Flags().IntP("n", "n", 0, "cells along y, 0 for a 1-D grid")
	NodalCmd.Flags().IntP("o", "o", 0, "cells along z, 0 for a 2-D grid")
	NodalCmd.Flags().IntP("order", "k", 2, "order of accuracy, only 2 is implemented")
	NodalCmd.Flags().Float64("dx", 1, "grid step along x")
	NodalCmd.Flags().Float64("dy", 1, "grid step along y")
	NodalCmd.Flags().Float64("dz", 1, "grid step along z")
	addOutputFlags(NodalCmd)
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolP("print", "p", false, "print the dense operator")
	c.Flags().StringP("out", "w", "", "write the operator to this Matrix Market file")
}

func gridJob(cmd *cobra.Command, family string) (job InputParameters.Job) {
	job = InputParameters.Job{Name: family, Family: family}
	job.M, _ = cmd.Flags().GetInt("m")
	job.N, _ = cmd.Flags().GetInt("n")
	job.O, _ = cmd.Flags().GetInt("o")
	job.Topology, _ = cmd.Flags().GetString("topology")
	return
}

func runSingle(cmd *cobra.Command, job InputParameters.Job) {
	job.Output, _ = cmd.Flags().GetString("out")
	printDense, _ := cmd.Flags().GetBool("print")
	D, err := batch.Assemble(job)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	r := batch.Result{Job: job, Operator: D, NNZ: D.NNZ()}
	r.Rows, r.Cols = D.Dims()
	if job.Output != "" {
		r.Err = batch.WriteMatrixMarket(job.Output, D)
	}
	printSummary(os.Stdout, []batch.Result{r})
	if printDense {
		printOperator(os.Stdout, r)
	}
	if r.Err != nil {
		os.Exit(1)
	}
}

func printSummary(w io.Writer, results []batch.Result) {
	fmt.Fprintf(w, "%-24s %-14s %-24s %10s %10s %10s\n", "Name", "Family", "Topology", "Rows", "Cols", "NNZ")
	for _, r := range results {
		topology := r.Job.Topology
		if topology == "" {
			topology = "-"
		}
		if r.Err != nil {
			fmt.Fprintf(w, "%-24s %-14s %-24s error: %v\n", r.Job.Name, r.Job.Family, topology, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-24s %-14s %-24s %10d %10d %10d\n",
			r.Job.Name, r.Job.Family, topology, r.Rows, r.Cols, r.NNZ)
	}
}

func printOperator(w io.Writer, r batch.Result) {
	if r.Err != nil {
		return
	}
	if r.Rows == 0 || r.Cols == 0 || r.Rows*r.Cols > maxPrintEntries {
		fmt.Fprintf(w, "%s: %dx%d is not printable, use --out\n", r.Job.Name, r.Rows, r.Cols)
		return
	}
	fmt.Fprintf(w, "%s = \n%v\n", r.Job.Name, r.Operator.ToMatrix())
}

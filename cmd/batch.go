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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/mimetic/InputParameters"
	"github.com/notargets/mimetic/batch"
	"github.com/notargets/mimetic/utils"
)

// BatchCmd represents the batch command
var BatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assemble every operator listed in a YAML job file",
	Long: `
Reads a YAML job file and assembles its operators in parallel, printing the
shape and nonzero count of each. Jobs with an Output path are written in
Matrix Market format.

mimetic batch -I jobs.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		inputFile, _ := cmd.Flags().GetString("inputFile")
		workers, _ := cmd.Flags().GetInt("workers")
		doProfile, _ := cmd.Flags().GetBool("profile")
		profileDir, _ := cmd.Flags().GetString("profileDir")
		aj := processJobs(inputFile)
		if workers != 0 {
			aj.Workers = workers
		}
		if err = aj.Validate(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		aj.Print()
		if failed := runBatch(os.Stdout, aj, doProfile, profileDir); failed != 0 {
			os.Exit(1)
		}
	},
}

// runBatch assembles the jobs and prints the summary, returning the number of
// failed jobs. Any CPU profile is written before it returns.
func runBatch(w io.Writer, aj *InputParameters.AssemblyJobs, doProfile bool, profileDir string) (failed int) {
	if doProfile {
		prof := profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.NoShutdownHook)
		defer prof.Stop()
	}
	results := batch.Run(aj)
	printSummary(w, results)
	fmt.Fprintln(w, utils.GetMemUsage())
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	return
}

func processJobs(inputFile string) (aj *InputParameters.AssemblyJobs) {
	var (
		err  error
		data []byte
	)
	if len(inputFile) == 0 {
		err = fmt.Errorf("must supply a job file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Operators"
Workers: 4
Jobs:
  - Name: DI3
    Family: interpolation
    Topology: curvilinear-plain
    M: 4
    N: 5
    O: 6
  - Name: GI2
    Family: divergence
    Topology: edge
    M: 4
    N: 4
    Output: gi2.mtx
  - Name: nodal2D
    Family: nodal
    Order: 2
    M: 8
    N: 8
    Spacing: [0.125, 0.125]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if data, err = os.ReadFile(inputFile); err != nil {
		panic(err)
	}
	aj = &InputParameters.AssemblyJobs{}
	if err = aj.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(BatchCmd)
	BatchCmd.Flags().StringP("inputFile", "I", "", "YAML job file listing the operators to assemble")
	BatchCmd.Flags().IntP("workers", "j", 0, "number of parallel workers, overrides the job file, 0 uses all CPUs")
	BatchCmd.Flags().Bool("profile", false, "write a CPU profile of the assembly")
	BatchCmd.Flags().String("profileDir", ".", "directory for the CPU profile")
}

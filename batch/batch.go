package batch

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/notargets/mimetic/InputParameters"
	"github.com/notargets/mimetic/correction"
	"github.com/notargets/mimetic/nodal"
	"github.com/notargets/mimetic/utils"
)

// Result is the outcome of one job, Err is set instead of panicking
type Result struct {
	Job             InputParameters.Job
	Rows, Cols, NNZ int
	Operator        utils.DOK
	Err             error
}

// Assemble validates the job and builds its operator
func Assemble(job InputParameters.Job) (D utils.DOK, err error) {
	if err = job.Validate(); err != nil {
		return
	}
	switch job.Family {
	case InputParameters.FamilyInterpolation, InputParameters.FamilyDivergence:
		var t correction.Topology
		if t, err = correction.NewTopology(job.Topology); err != nil {
			return
		}
		var g correction.Grid
		if job.Dimensions() == 2 {
			g = correction.NewGrid2D(job.M, job.N)
		} else {
			g = correction.NewGrid3D(job.M, job.N, job.O)
		}
		if job.Family == InputParameters.FamilyInterpolation {
			if err = g.ValidateInterpolation(t); err != nil {
				return
			}
			if g.Is3D() {
				return correction.BuildInterpolationCorrection3D(g.M, g.N, g.O, t), nil
			}
			return correction.BuildInterpolationCorrection2D(g.M, g.N, t), nil
		}
		if err = g.ValidateDivergence(t); err != nil {
			return
		}
		if g.Is3D() {
			return correction.BuildDivergenceCorrection3D(g.M, g.N, g.O, t), nil
		}
		return correction.BuildDivergenceCorrection2D(g.M, g.N, t), nil
	case InputParameters.FamilyNodal:
		axes := nodalAxes(job)
		if err = nodal.Validate(job.Order, axes...); err != nil {
			return
		}
		return nodal.BuildNodalDifference(job.Order, axes...), nil
	}
	err = fmt.Errorf("job %q: unknown family %q", job.Name, job.Family)
	return
}

func nodalAxes(job InputParameters.Job) (axes []nodal.Axis) {
	cells := []int{job.M, job.N, job.O}[:job.Dimensions()]
	for d, c := range cells {
		spacing := 1.
		if d < len(job.Spacing) {
			spacing = job.Spacing[d]
		}
		axes = append(axes, nodal.Axis{Cells: c, Spacing: spacing})
	}
	return
}

// Run assembles every job, spreading them over workers goroutines. Results
// come back in job order. Each assembly is independent so no locking is needed
// beyond the per-result slot.
func Run(aj *InputParameters.AssemblyJobs) (results []Result) {
	var (
		NJ = len(aj.Jobs)
		NP = aj.Workers
		wg = sync.WaitGroup{}
	)
	results = make([]Result, NJ)
	if NJ == 0 {
		return
	}
	if NP < 1 {
		NP = runtime.NumCPU()
	}
	if NP > NJ {
		NP = NJ
	}
	pm := utils.NewPartitionMap(NP, NJ)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				results[k] = runJob(aj.Jobs[k])
			}
		}(np)
	}
	wg.Wait()
	return
}

func runJob(job InputParameters.Job) (r Result) {
	r.Job = job
	if r.Operator, r.Err = Assemble(job); r.Err != nil {
		return
	}
	r.Rows, r.Cols = r.Operator.Dims()
	r.NNZ = r.Operator.NNZ()
	if job.Output != "" {
		r.Err = WriteMatrixMarket(job.Output, r.Operator)
	}
	return
}

func WriteMatrixMarket(path string, D utils.DOK) (err error) {
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	if err = D.WriteMatrixMarket(f); err != nil {
		f.Close()
		return
	}
	return f.Close()
}

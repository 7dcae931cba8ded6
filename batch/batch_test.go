package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/mimetic/InputParameters"
	"github.com/notargets/mimetic/correction"
)

func testJobs() *InputParameters.AssemblyJobs {
	aj := &InputParameters.AssemblyJobs{Title: "test"}
	for _, tag := range correction.Topologies() {
		aj.Jobs = append(aj.Jobs,
			InputParameters.Job{Name: "DI3-" + tag.String(), Family: InputParameters.FamilyInterpolation,
				Topology: tag.String(), M: 3, N: 3, O: 3},
			InputParameters.Job{Name: "GI3-" + tag.String(), Family: InputParameters.FamilyDivergence,
				Topology: tag.String(), M: 3, N: 4, O: 2},
		)
	}
	aj.Jobs = append(aj.Jobs,
		InputParameters.Job{Name: "DI2", Family: InputParameters.FamilyInterpolation, Topology: "1", M: 2, N: 4},
		InputParameters.Job{Name: "GI2", Family: InputParameters.FamilyDivergence, Topology: "edge", M: 4, N: 4},
		InputParameters.Job{Name: "N1", Family: InputParameters.FamilyNodal, Order: 2, M: 4, Spacing: []float64{0.5}},
		InputParameters.Job{Name: "N3", Family: InputParameters.FamilyNodal, Order: 2, M: 4, N: 5, O: 6},
	)
	return aj
}

func TestAssemble(t *testing.T) {
	D, err := Assemble(InputParameters.Job{Name: "DI2", Family: InputParameters.FamilyInterpolation,
		Topology: "plain-neumann", M: 2, N: 4})
	require.NoError(t, err)
	nr, nc := D.Dims()
	assert.Equal(t, 24, nr)
	assert.Equal(t, 12, nc)
	assert.True(t, D.Equals(correction.BuildInterpolationCorrection2D(2, 4, correction.PlainNeumann), 0))

	D, err = Assemble(InputParameters.Job{Name: "N1", Family: InputParameters.FamilyNodal, Order: 2, M: 4,
		Spacing: []float64{0.5}})
	require.NoError(t, err)
	assert.Equal(t, -3., D.At(0, 0))
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(InputParameters.Job{Family: InputParameters.FamilyInterpolation, Topology: "bogus", M: 4, N: 4})
	assert.ErrorIs(t, err, correction.ErrUnsupportedTopology)
	_, err = Assemble(InputParameters.Job{Family: InputParameters.FamilyInterpolation, Topology: "curvilinear-plain", M: 4, N: 4})
	assert.ErrorIs(t, err, correction.ErrUnsupportedTopology)
	_, err = Assemble(InputParameters.Job{Family: InputParameters.FamilyDivergence, Topology: "edge", M: 4, N: 2})
	assert.ErrorIs(t, err, correction.ErrGridTooSmall)
	_, err = Assemble(InputParameters.Job{Family: InputParameters.FamilyNodal, Order: 4, M: 8})
	assert.Error(t, err)
	_, err = Assemble(InputParameters.Job{Name: "x", Family: "laplacian"})
	assert.Error(t, err)
	_, err = Assemble(InputParameters.Job{Name: "x", Family: InputParameters.FamilyNodal, Order: 2, M: 4, O: 4})
	assert.ErrorContains(t, err, "without N")
}

// A parallel run is the same as assembling the jobs one at a time, in job order
func TestRunMatchesSequential(t *testing.T) {
	aj := testJobs()
	for _, workers := range []int{1, 3, 64, 0} {
		aj.Workers = workers
		results := Run(aj)
		require.Len(t, results, len(aj.Jobs))
		for k, r := range results {
			require.NoError(t, r.Err, r.Job.Name)
			assert.Equal(t, aj.Jobs[k].Name, r.Job.Name)
			D, err := Assemble(aj.Jobs[k])
			require.NoError(t, err)
			assert.True(t, r.Operator.Equals(D, 0), r.Job.Name)
			assert.Equal(t, D.NNZ(), r.NNZ)
			nr, nc := D.Dims()
			assert.Equal(t, [2]int{nr, nc}, [2]int{r.Rows, r.Cols})
		}
	}
}

func TestRunKeepsGoingPastErrors(t *testing.T) {
	aj := &InputParameters.AssemblyJobs{
		Workers: 2,
		Jobs: []InputParameters.Job{
			{Name: "bad", Family: InputParameters.FamilyDivergence, Topology: "plain-neumann", M: 1, N: 1},
			{Name: "good", Family: InputParameters.FamilyDivergence, Topology: "plain-neumann", M: 3, N: 1},
		},
	}
	results := Run(aj)
	assert.ErrorIs(t, results[0].Err, correction.ErrGridTooSmall)
	assert.NoError(t, results[1].Err)
	assert.Empty(t, Run(&InputParameters.AssemblyJobs{}))
}

func TestRunWritesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n1.mtx")
	aj := &InputParameters.AssemblyJobs{
		Jobs: []InputParameters.Job{
			{Name: "N1", Family: InputParameters.FamilyNodal, Order: 2, M: 4, Spacing: []float64{0.5}, Output: path},
		},
	}
	results := Run(aj)
	require.NoError(t, results[0].Err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%%MatrixMarket matrix coordinate real general\n5 5 12\n"))

	aj.Jobs[0].Output = filepath.Join(t.TempDir(), "missing", "n1.mtx")
	assert.Error(t, Run(aj)[0].Err)
}

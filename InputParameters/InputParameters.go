package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// Operator families a job can request
const (
	FamilyInterpolation = "interpolation"
	FamilyDivergence    = "divergence"
	FamilyNodal         = "nodal"
)

// Job describes one operator to assemble. O == 0 selects the 2-D correction,
// for nodal jobs N == 0 selects 1-D and O == 0 selects 2-D.
type Job struct {
	Name     string    `json:"Name"`
	Family   string    `json:"Family"`
	Topology string    `json:"Topology"`
	M        int       `json:"M"`
	N        int       `json:"N"`
	O        int       `json:"O"`
	Order    int       `json:"Order"`
	Spacing  []float64 `json:"Spacing"`
	Output   string    `json:"Output"` // Matrix Market file, optional
}

// Parameters obtained from the YAML job file
type AssemblyJobs struct {
	Title   string `json:"Title"`
	Workers int    `json:"Workers"`
	Jobs    []Job  `json:"Jobs"`
}

func (aj *AssemblyJobs) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, aj); err != nil {
		return err
	}
	for i := range aj.Jobs {
		aj.Jobs[i].Family = strings.ToLower(strings.TrimSpace(aj.Jobs[i].Family))
		if aj.Jobs[i].Name == "" {
			aj.Jobs[i].Name = fmt.Sprintf("job%d", i)
		}
	}
	return nil
}

// Validate checks what can be checked without building anything
func (aj *AssemblyJobs) Validate() (err error) {
	if len(aj.Jobs) == 0 {
		return fmt.Errorf("job file %q lists no jobs", aj.Title)
	}
	var (
		names   = make(map[string]bool, len(aj.Jobs))
		outputs = make(map[string]string, len(aj.Jobs))
	)
	for _, job := range aj.Jobs {
		if err = job.Validate(); err != nil {
			return
		}
		if names[job.Name] {
			return fmt.Errorf("duplicate job name %q", job.Name)
		}
		names[job.Name] = true
		if job.Output != "" {
			if other, ok := outputs[job.Output]; ok {
				return fmt.Errorf("jobs %q and %q both write %q", other, job.Name, job.Output)
			}
			outputs[job.Output] = job.Name
		}
	}
	return
}

// Validate checks one job on its own
func (job Job) Validate() error {
	switch job.Family {
	case FamilyInterpolation, FamilyDivergence:
		if job.Topology == "" {
			return fmt.Errorf("job %q: %s needs a Topology", job.Name, job.Family)
		}
	case FamilyNodal:
		if job.N == 0 && job.O != 0 {
			return fmt.Errorf("job %q: nodal O = %d given without N", job.Name, job.O)
		}
	default:
		return fmt.Errorf("job %q: unknown family %q, use %s, %s or %s",
			job.Name, job.Family, FamilyInterpolation, FamilyDivergence, FamilyNodal)
	}
	return nil
}

// Dimensions is the number of axes the job spans
func (job Job) Dimensions() int {
	switch {
	case job.Family == FamilyNodal && job.N == 0:
		return 1
	case job.O == 0:
		return 2
	}
	return 3
}

func (aj *AssemblyJobs) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", aj.Title)
	fmt.Printf("[%d]\t\t\t\t= Workers\n", aj.Workers)
	for _, job := range aj.Jobs {
		fmt.Printf("Jobs[%s] = %s %dD %s m,n,o = %d,%d,%d",
			job.Name, job.Family, job.Dimensions(), job.Topology, job.M, job.N, job.O)
		if job.Family == FamilyNodal {
			fmt.Printf(" order = %d spacing = %v", job.Order, job.Spacing)
		}
		fmt.Printf("\n")
	}
}

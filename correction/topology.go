package correction

import (
	"fmt"
	"strings"
)

// Topology selects the grid-boundary family an assembled correction is built for
type Topology uint8

const (
	PlainNeumann Topology = iota + 1
	Edge
	CurvilinearPlain
	CurvilinearPlainPair
	CurvilinearEdge
	CurvilinearEdgePair
)

var topologyNames = map[Topology]string{
	PlainNeumann:         "plain-neumann",
	Edge:                 "edge",
	CurvilinearPlain:     "curvilinear-plain",
	CurvilinearPlainPair: "curvilinear-plain-pair",
	CurvilinearEdge:      "curvilinear-edge",
	CurvilinearEdgePair:  "curvilinear-edge-pair",
}

func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// NewTopology parses either a topology name or its numeric tag, 1 through 6
func NewTopology(label string) (t Topology, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for key, name := range topologyNames {
		if label == name || label == fmt.Sprintf("%d", uint8(key)) {
			return key, nil
		}
	}
	err = fmt.Errorf("%w: %q", ErrUnsupportedTopology, label)
	return
}

// Supports2D reports whether the tag has a two dimensional correction. The
// curvilinear corrections only arise once a third axis exists.
func (t Topology) Supports2D() bool {
	return t == PlainNeumann || t == Edge
}

func (t Topology) valid() bool {
	return t >= PlainNeumann && t <= CurvilinearEdgePair
}

// Topologies lists every tag in order
func Topologies() []Topology {
	return []Topology{PlainNeumann, Edge, CurvilinearPlain, CurvilinearPlainPair, CurvilinearEdge, CurvilinearEdgePair}
}

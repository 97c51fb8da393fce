package body

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PopulationVersion is incremented when the file format changes.
const PopulationVersion = 1

// ErrMalformedPopulation is returned for population documents that cannot
// be decoded into valid trees.
var ErrMalformedPopulation = errors.New("malformed population")

// Population is an ordered collection of body trees.
type Population []*Tree

// Equal reports whether both populations hold structurally equal trees in
// the same order.
func (p Population) Equal(o Population) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !Equal(p[i], o[i]) {
			return false
		}
	}
	return true
}

// Clone deep copies every tree.
func (p Population) Clone() Population {
	c := make(Population, len(p))
	for i, t := range p {
		c[i] = t.Clone()
	}
	return c
}

// populationJSON is the on-disk form. Genes are stored raw; scaled values
// are always recomputed.
type populationJSON struct {
	Version int        `json:"version"`
	Trees   []treeJSON `json:"trees"`
}

type treeJSON struct {
	Nodes []nodeJSON `json:"nodes"`
}

type nodeJSON struct {
	Parent  int         `json:"parent"`
	Joint   jointJSON   `json:"joint"`
	Segment segmentJSON `json:"segment"`
}

type jointJSON struct {
	Kind     string   `json:"kind"`
	Torque   *float64 `json:"torque,omitempty"`
	MaxSpeed *float64 `json:"max_speed,omitempty"`
}

type segmentJSON struct {
	Shape string    `json:"shape"`
	Genes []float64 `json:"genes"`
}

func (t *Tree) toJSON() treeJSON {
	tj := treeJSON{Nodes: make([]nodeJSON, len(t.nodes))}
	for i := range t.nodes {
		n := &t.nodes[i]
		j := jointJSON{Kind: n.joint.Kind.String()}
		if n.joint.Kind == Rotational {
			torque, speed := n.joint.Torque.Value, n.joint.MaxSpeed.Value
			j.Torque, j.MaxSpeed = &torque, &speed
		}
		tj.Nodes[i] = nodeJSON{
			Parent:  int(n.parent),
			Joint:   j,
			Segment: segmentJSON{Shape: n.segment.Shape.String(), Genes: n.segment.Raw()},
		}
	}
	return tj
}

func treeFromJSON(tj treeJSON) (*Tree, error) {
	if len(tj.Nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	t := &Tree{}
	for i, nj := range tj.Nodes {
		seg, err := segmentFromJSON(nj.Segment)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		joint, err := jointFromJSON(nj.Joint)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}

		if i == 0 {
			if nj.Parent != int(NoParent) {
				return nil, fmt.Errorf("root has parent %d", nj.Parent)
			}
			t.nodes = append(t.nodes, node{segment: seg, parent: NoParent, joint: joint})
			continue
		}
		// parents always precede their children
		if nj.Parent < 0 || nj.Parent >= i {
			return nil, fmt.Errorf("node %d: parent %d out of order", i, nj.Parent)
		}
		if _, err := t.AddChild(NodeID(nj.Parent), seg, joint); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	return t, nil
}

func segmentFromJSON(sj segmentJSON) (Segment, error) {
	shape, ok := ParseShape(sj.Shape)
	if !ok {
		return Segment{}, fmt.Errorf("unknown shape %q", sj.Shape)
	}
	for i, v := range sj.Genes {
		if v < 0 || v > 1 {
			return Segment{}, fmt.Errorf("gene %d = %v outside [0,1]", i, v)
		}
	}
	var seg Segment
	switch shape {
	case Cuboid:
		seg = NewCuboid([3]float64{}, [3]float64{}, [3]float64{})
	}
	if err := seg.SetRaw(sj.Genes); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

func jointFromJSON(jj jointJSON) (Joint, error) {
	kind, ok := ParseJointKind(jj.Kind)
	if !ok {
		return Joint{}, fmt.Errorf("unknown joint kind %q", jj.Kind)
	}
	if kind != Rotational {
		return Joint{Kind: kind}, nil
	}
	if jj.Torque == nil || jj.MaxSpeed == nil {
		return Joint{}, errors.New("rotational joint missing torque or max_speed")
	}
	for _, v := range []float64{*jj.Torque, *jj.MaxSpeed} {
		if v < 0 || v > 1 {
			return Joint{}, fmt.Errorf("joint gene %v outside [0,1]", v)
		}
	}
	return RotationalJoint(*jj.Torque, *jj.MaxSpeed), nil
}

// MarshalJSON encodes the population document.
func (p Population) MarshalJSON() ([]byte, error) {
	doc := populationJSON{Version: PopulationVersion, Trees: make([]treeJSON, len(p))}
	for i, t := range p {
		doc.Trees[i] = t.toJSON()
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a population document. Failures wrap
// ErrMalformedPopulation.
func (p *Population) UnmarshalJSON(data []byte) error {
	var doc populationJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPopulation, err)
	}
	if doc.Version != PopulationVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrMalformedPopulation, doc.Version, PopulationVersion)
	}
	pop := make(Population, 0, len(doc.Trees))
	for i, tj := range doc.Trees {
		t, err := treeFromJSON(tj)
		if err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrMalformedPopulation, i, err)
		}
		pop = append(pop, t)
	}
	*p = pop
	return nil
}

// EncodePopulation writes pop as indented JSON.
func EncodePopulation(w io.Writer, pop Population) error {
	data, err := json.MarshalIndent(pop, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal population: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write population: %w", err)
	}
	return nil
}

// DecodePopulation reads a population document from r.
func DecodePopulation(r io.Reader) (Population, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read population: %w", err)
	}
	var pop Population
	if err := json.Unmarshal(data, &pop); err != nil {
		if errors.Is(err, ErrMalformedPopulation) {
			return nil, err
		}
		// syntax errors are reported before UnmarshalJSON runs
		return nil, fmt.Errorf("%w: %v", ErrMalformedPopulation, err)
	}
	return pop, nil
}

// SavePopulation writes pop to path, creating parent directories.
func SavePopulation(path string, pop Population) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create population dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create population file: %w", err)
	}
	if err := EncodePopulation(f, pop); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadPopulation reads a population file.
func LoadPopulation(path string) (Population, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open population file: %w", err)
	}
	defer f.Close()
	return DecodePopulation(f)
}

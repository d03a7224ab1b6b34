// Package framefile reads grove frames from YAML files and re-applies them
// to a renderer whenever the file changes.
//
// A frame file looks like:
//
//	roots:
//	  - owner: 1
//	    hook: /space/stage
//	    nodes:
//	      - {id: 0, kind: transform, position: [0, 1, 0], children: [1]}
//	      - {id: 1, kind: model, model: models/cube.glb}
//	textures:
//	  - {owner: 1, handle: 42, width: 1024, height: 768, format: bgra8}
package framefile

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/grove"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a frame.
type File struct {
	Roots    []RootSpec    `yaml:"roots"`
	Textures []TextureSpec `yaml:"textures"`
}

// RootSpec is one application's graph.
type RootSpec struct {
	Owner uint32     `yaml:"owner"`
	Hook  string     `yaml:"hook"`
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec is one node. Only the fields its kind uses are read.
type NodeSpec struct {
	ID       uint32   `yaml:"id"`
	Kind     string   `yaml:"kind"`
	Children []uint32 `yaml:"children"`

	Origin      string      `yaml:"origin"`
	Position    []float64   `yaml:"position"`
	Rotation    []float64   `yaml:"rotation"` // x, y, z, w
	Scale       []float64   `yaml:"scale"`
	Model       string      `yaml:"model"`
	Interactive bool        `yaml:"interactive"`
	Volume      *VolumeSpec `yaml:"volume"`
}

// VolumeSpec is a collision volume.
type VolumeSpec struct {
	Type   string    `yaml:"type"` // sphere | box
	Radius float64   `yaml:"radius"`
	Min    []float64 `yaml:"min"`
	Max    []float64 `yaml:"max"`
}

// TextureSpec is a texture binding.
type TextureSpec struct {
	Owner   uint32 `yaml:"owner"`
	Handle  uint64 `yaml:"handle"`
	Width   uint32 `yaml:"width"`
	Height  uint32 `yaml:"height"`
	Format  string `yaml:"format"` // rgba8 | bgra8
	InvertY bool   `yaml:"invert_y"`
}

// Load reads and parses a frame file.
func Load(path string) (grove.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grove.Frame{}, fmt.Errorf("read frame %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return grove.Frame{}, fmt.Errorf("frame %s: %w", path, err)
	}
	return f, nil
}

// Parse parses frame file data.
func Parse(data []byte) (grove.Frame, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return grove.Frame{}, fmt.Errorf("parse frame: %w", err)
	}
	return file.Frame()
}

// Frame converts the file into a grove.Frame.
func (f *File) Frame() (grove.Frame, error) {
	out := grove.Frame{
		Roots:    make([]grove.Root, 0, len(f.Roots)),
		Textures: make([]grove.TextureBinding, 0, len(f.Textures)),
	}
	for i, rs := range f.Roots {
		root := grove.Root{Owner: rs.Owner, Hook: rs.Hook, Nodes: make([]grove.Node, 0, len(rs.Nodes))}
		for j, ns := range rs.Nodes {
			n, err := ns.node()
			if err != nil {
				return grove.Frame{}, fmt.Errorf("roots[%d].nodes[%d]: %w", i, j, err)
			}
			root.Nodes = append(root.Nodes, n)
		}
		out.Roots = append(out.Roots, root)
	}
	for i, ts := range f.Textures {
		tb, err := ts.binding()
		if err != nil {
			return grove.Frame{}, fmt.Errorf("textures[%d]: %w", i, err)
		}
		out.Textures = append(out.Textures, tb)
	}
	return out, nil
}

func (ns NodeSpec) node() (grove.Node, error) {
	kind := grove.NodeContainer
	if ns.Kind != "" {
		k, err := grove.ParseNodeKind(ns.Kind)
		if err != nil {
			return grove.Node{}, err
		}
		kind = k
	}
	n := grove.Node{
		ID:          ns.ID,
		Kind:        kind,
		Children:    ns.Children,
		Origin:      ns.Origin,
		ModelURI:    ns.Model,
		Interactive: ns.Interactive,
	}

	if kind == grove.NodeTransform {
		trs, err := ns.trs()
		if err != nil {
			return grove.Node{}, err
		}
		n.Transform = &trs
	}
	if ns.Volume != nil {
		v, err := ns.Volume.volume()
		if err != nil {
			return grove.Node{}, err
		}
		n.Volume = &v
	}
	return n, nil
}

func (ns NodeSpec) trs() (grove.TRS, error) {
	var trs grove.TRS
	if ns.Position != nil {
		p, err := vec3(ns.Position, "position")
		if err != nil {
			return trs, err
		}
		trs.Position = &p
	}
	if ns.Rotation != nil {
		if len(ns.Rotation) != 4 {
			return trs, fmt.Errorf("rotation needs 4 components, got %d", len(ns.Rotation))
		}
		q := mgl64.Quat{W: ns.Rotation[3], V: mgl64.Vec3{ns.Rotation[0], ns.Rotation[1], ns.Rotation[2]}}
		trs.Rotation = &q
	}
	if ns.Scale != nil {
		s, err := vec3(ns.Scale, "scale")
		if err != nil {
			return trs, err
		}
		trs.Scale = &s
	}
	return trs, nil
}

func (vs VolumeSpec) volume() (grove.Volume, error) {
	switch vs.Type {
	case "sphere", "":
		if vs.Radius <= 0 {
			return grove.Volume{}, fmt.Errorf("sphere radius must be > 0")
		}
		return grove.Sphere(vs.Radius), nil
	case "box":
		lo, err := vec3(vs.Min, "min")
		if err != nil {
			return grove.Volume{}, err
		}
		hi, err := vec3(vs.Max, "max")
		if err != nil {
			return grove.Volume{}, err
		}
		return grove.Box(lo, hi), nil
	default:
		return grove.Volume{}, fmt.Errorf("unknown volume type %q", vs.Type)
	}
}

func (ts TextureSpec) binding() (grove.TextureBinding, error) {
	tb := grove.TextureBinding{
		Owner:   ts.Owner,
		Handle:  ts.Handle,
		Width:   ts.Width,
		Height:  ts.Height,
		InvertY: ts.InvertY,
	}
	switch ts.Format {
	case "rgba8", "":
		tb.Format = grove.TextureR8G8B8A8
	case "bgra8":
		tb.Format = grove.TextureB8G8R8A8
	default:
		return tb, fmt.Errorf("unknown texture format %q", ts.Format)
	}
	return tb, nil
}

func vec3(v []float64, field string) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%s needs 3 components, got %d", field, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

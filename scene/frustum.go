package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space Normal·p + D >= 0. Normal points inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt, positive inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view volume.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromVP extracts normalized clip planes from a projection·view matrix
// (Gribb/Hartmann). mgl32 is column-major, so row i is vp.Row(i).
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)
	return Frustum{Planes: [6]Plane{
		planeFrom(r3.Add(r0)),
		planeFrom(r3.Sub(r0)),
		planeFrom(r3.Add(r1)),
		planeFrom(r3.Sub(r1)),
		planeFrom(r3.Add(r2)),
		planeFrom(r3.Sub(r2)),
	}}
}

func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// AABB is an axis-aligned bounding box. The zero value is empty.
type AABB struct {
	Min, Max mgl32.Vec3
	valid    bool
}

// NewAABB returns the box spanning lo and hi.
func NewAABB(lo, hi mgl32.Vec3) AABB {
	return AABB{Min: lo, Max: hi, valid: true}
}

// Empty reports whether the box holds no points.
func (b AABB) Empty() bool { return !b.valid }

// Extend grows the box to contain p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	if !b.valid {
		return NewAABB(p, p)
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union returns the smallest box holding both.
func (b AABB) Union(o AABB) AABB {
	if !o.valid {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Transform returns the world box of the eight transformed corners.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if !b.valid {
		return b
	}
	var out AABB
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// IntersectsFrustum is false only when the box lies wholly outside one plane.
// An empty box always intersects.
func (b AABB) IntersectsFrustum(f *Frustum) bool {
	if !b.valid {
		return true
	}
	for _, p := range f.Planes {
		// Corner furthest along the plane normal.
		var pv mgl32.Vec3
		for i := 0; i < 3; i++ {
			pv[i] = b.Max[i]
			if p.Normal[i] < 0 {
				pv[i] = b.Min[i]
			}
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// Bounds returns the local-space box of the mesh vertices.
func (m *Mesh) Bounds() AABB {
	var b AABB
	for _, v := range m.Vertices {
		b = b.Extend(v.Position)
	}
	return b
}

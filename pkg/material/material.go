package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface interacts with light under the Phong model.
// Materials are shared by reference between shapes and are read-only while rendering.
type Material struct {
	ke Parameter // emissive
	ka Parameter // ambient
	ks Parameter // specular
	kd Parameter // diffuse
	kr Parameter // reflective
	kt Parameter // transmissive

	shininess Parameter
	index     Parameter // index of refraction

	reflective   bool // specular reflector
	transmissive bool // specular transmitter
	recursive    bool // either one
	specular     bool // any kind of specular
	both         bool // reflection and transmission
}

// MaterialConfig holds constant coefficients for NewMaterial
type MaterialConfig struct {
	Emissive     core.Vec3
	Ambient      core.Vec3
	Specular     core.Vec3
	Diffuse      core.Vec3
	Reflective   core.Vec3
	Transmissive core.Vec3
	Shininess    float64 // Fraction of 128, the exponent used by the shader
	Index        float64 // Index of refraction; 0 means 1 (air)
}

// NewMaterial creates a material from constant coefficients
func NewMaterial(config MaterialConfig) *Material {
	index := config.Index
	if index == 0 {
		index = 1.0
	}

	m := &Material{
		ke:        Constant(config.Emissive),
		ka:        Constant(config.Ambient),
		ks:        Constant(config.Specular),
		kd:        Constant(config.Diffuse),
		kr:        Constant(config.Reflective),
		kt:        Constant(config.Transmissive),
		shininess: Scalar(config.Shininess),
		index:     Scalar(index),
	}
	m.updateFlags()
	return m
}

// NewDefaultMaterial creates a black, non-specular material with index 1
func NewDefaultMaterial() *Material {
	return NewMaterial(MaterialConfig{})
}

// Ke returns the emissive coefficient at the surface point
func (m *Material) Ke(si *SurfaceInteraction) core.Vec3 { return m.ke.Value(si) }

// Ka returns the ambient coefficient at the surface point
func (m *Material) Ka(si *SurfaceInteraction) core.Vec3 { return m.ka.Value(si) }

// Ks returns the specular coefficient at the surface point
func (m *Material) Ks(si *SurfaceInteraction) core.Vec3 { return m.ks.Value(si) }

// Kd returns the diffuse coefficient at the surface point
func (m *Material) Kd(si *SurfaceInteraction) core.Vec3 { return m.kd.Value(si) }

// Kr returns the reflective coefficient at the surface point
func (m *Material) Kr(si *SurfaceInteraction) core.Vec3 { return m.kr.Value(si) }

// Kt returns the transmissive coefficient at the surface point
func (m *Material) Kt(si *SurfaceInteraction) core.Vec3 { return m.kt.Value(si) }

// Shininess returns the scalar shininess at the surface point, as a fraction of 128
func (m *Material) Shininess(si *SurfaceInteraction) float64 { return m.shininess.Intensity(si) }

// Index returns the scalar index of refraction at the surface point
func (m *Material) Index(si *SurfaceInteraction) float64 { return m.index.Intensity(si) }

// SetEmissive sets the emissive coefficient
func (m *Material) SetEmissive(p Parameter) { m.ke = p; m.updateFlags() }

// SetAmbient sets the ambient coefficient
func (m *Material) SetAmbient(p Parameter) { m.ka = p; m.updateFlags() }

// SetSpecular sets the specular coefficient
func (m *Material) SetSpecular(p Parameter) { m.ks = p; m.updateFlags() }

// SetDiffuse sets the diffuse coefficient
func (m *Material) SetDiffuse(p Parameter) { m.kd = p; m.updateFlags() }

// SetReflective sets the reflective coefficient
func (m *Material) SetReflective(p Parameter) { m.kr = p; m.updateFlags() }

// SetTransmissive sets the transmissive coefficient
func (m *Material) SetTransmissive(p Parameter) { m.kt = p; m.updateFlags() }

// SetShininess sets the shininess
func (m *Material) SetShininess(p Parameter) { m.shininess = p; m.updateFlags() }

// SetIndex sets the index of refraction
func (m *Material) SetIndex(p Parameter) { m.index = p; m.updateFlags() }

// Reflective reports whether the material has a non-zero reflective coefficient
func (m *Material) Reflective() bool { return m.reflective }

// Transmissive reports whether the material has a non-zero transmissive coefficient
func (m *Material) Transmissive() bool { return m.transmissive }

// Recursive reports whether hits on this material spawn secondary rays
func (m *Material) Recursive() bool { return m.recursive }

// Specular reports whether the material has any specular component
func (m *Material) Specular() bool { return m.specular }

// Both reports whether the material both reflects and transmits
func (m *Material) Both() bool { return m.both }

func (m *Material) updateFlags() {
	m.reflective = !m.kr.IsZero()
	m.transmissive = !m.kt.IsZero()
	m.recursive = m.reflective || m.transmissive
	m.specular = m.reflective || !m.ks.IsZero()
	m.both = m.reflective && m.transmissive
}

// Package glbackend implements core.Renderer on OpenGL 3.2 core.
package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/brakewood/thicket/engine/core"
)

type glPipeline struct {
	program   uint32
	depthTest bool
	blend     bool
	uniforms  map[string]int32 // location cache
}

type glTexture struct {
	id uint32
}

type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertCap       int // floats
	indCap        int
}

type RendererGL struct {
	win      core.Window
	fbHeight int
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	_, h := r.win.FramebufferSize()
	r.fbHeight = h
	return nil
}

func (r *RendererGL) Shutdown() {}

func (r *RendererGL) Resize(w, h int) {
	r.fbHeight = h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(nullTerminate(desc.VertexSource), nullTerminate(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	return &glPipeline{
		program:   prog,
		depthTest: desc.DepthTest,
		blend:     desc.Blend,
		uniforms:  make(map[string]int32),
	}, nil
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return nil, fmt.Errorf("texture size %dx%d invalid", desc.Width, desc.Height)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterEnum(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterEnum(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapEnum(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapEnum(desc.WrapV))

	var internal int32 = gl.RGBA8
	var format uint32 = gl.RGBA
	if desc.Format == core.TextureR8 {
		internal, format = gl.R8, gl.RED
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}
	var ptr unsafe.Pointer
	if len(desc.Pixels) > 0 {
		ptr = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, ptr)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return &glTexture{id: id}, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &glMesh{vertCap: len(desc.Vertices), indCap: len(desc.Indices)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), gl.DYNAMIC_DRAW)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}
	m.indexCount = int32(len(desc.Indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return m, nil
}

func (r *RendererGL) UpdateMesh(mesh core.Mesh, verts []float32, inds []uint32) error {
	m, ok := mesh.(*glMesh)
	if !ok {
		return fmt.Errorf("mesh %T not created by this backend", mesh)
	}
	if len(verts) > m.vertCap || len(inds) > m.indCap {
		return fmt.Errorf("mesh update %d/%d exceeds capacity %d/%d",
			len(verts), len(inds), m.vertCap, m.indCap)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(inds)*4, gl.Ptr(inds))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	m.indexCount = int32(len(inds))
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	pipe, ok := cmd.Pipe.(*glPipeline)
	if !ok {
		return
	}
	mesh, ok := cmd.Mesh.(*glMesh)
	if !ok {
		return
	}

	gl.UseProgram(pipe.program)
	if pipe.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if pipe.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	for name, v := range cmd.Uniforms {
		setUniform(pipe, name, v)
	}
	unit := int32(0)
	for name, t := range cmd.Samplers {
		tex, ok := t.(*glTexture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(uniformLoc(pipe, name), unit)
		unit++
	}

	count := mesh.indexCount
	if cmd.IndexCount > 0 && int32(cmd.IndexCount) < count {
		count = int32(cmd.IndexCount)
	}
	gl.BindVertexArray(mesh.vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// SetScissor takes top-left origin coordinates; GL wants bottom-left.
func (r *RendererGL) SetScissor(x, y, w, h int32) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, int32(r.fbHeight)-y-h, w, h)
}

func (r *RendererGL) ClearScissor() {
	gl.Disable(gl.SCISSOR_TEST)
}

func uniformLoc(p *glPipeline, name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func setUniform(p *glPipeline, name string, v any) {
	loc := uniformLoc(p, name)
	if loc < 0 {
		return
	}
	switch val := v.(type) {
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &val[0])
	case [4]float32:
		gl.Uniform4f(loc, val[0], val[1], val[2], val[3])
	case [2]float32:
		gl.Uniform2f(loc, val[0], val[1])
	case float32:
		gl.Uniform1f(loc, val)
	case int:
		gl.Uniform1i(loc, int32(val))
	case int32:
		gl.Uniform1i(loc, val)
	}
}

func filterEnum(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapEnum(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func nullTerminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}

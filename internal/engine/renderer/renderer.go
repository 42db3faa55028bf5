// Package renderer draws a scene graph with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// gpuMesh holds the GL objects for one geode.
type gpuMesh struct {
	vao, vbo, ebo uint32
	strips        []stripRange
	primitive     uint32
}

// Renderer uploads geodes on first sight and draws them every frame.
type Renderer struct {
	width, height int
	program       *shader.Program
	meshes        map[*scene.Geode]*gpuMesh
	textures      map[*scene.TextureLayer]uint32
	log           *zap.Logger
}

// New initializes OpenGL. It must be called after the GL context is current.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:    width,
		height:   height,
		meshes:   make(map[*scene.Geode]*gpuMesh),
		textures: make(map[*scene.TextureLayer]uint32),
		log:      logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.Resize(width, height)
	return r, nil
}

// Close frees every GL object the renderer created.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		if m == nil {
			continue
		}
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	for _, id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	r.meshes = map[*scene.Geode]*gpuMesh{}
	r.textures = map[*scene.TextureLayer]uint32{}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize sets the viewport.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return nil, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, r.width, r.height
}

// Render clears the frame and draws every geode under root.
func (r *Renderer) Render(root scene.Node, view, proj math.Mat4) {
	f := collect(root)

	bg := math.Black
	if f.clear != nil {
		bg = *f.clear
	}
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	viewProj := proj.Mul(view)
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform1i(r.program.Uniform("uTexture0"), 0)
	gl.Uniform1i(r.program.Uniform("uTexture1"), 1)

	for _, item := range f.items {
		r.draw(item)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) draw(item drawItem) {
	mesh := r.meshFor(item.geode)
	if mesh == nil {
		return
	}

	mode := shadingMode(item.geode)
	if mode != modeFlat {
		layer, _ := item.geode.Texture(0)
		r.bindTexture(0, layer)
	}
	if mode == modeInterpolate {
		layer, _ := item.geode.Texture(1)
		r.bindTexture(1, layer)
	}
	gl.Uniform1i(r.program.Uniform("uMode"), mode)

	world := item.world
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, world.Ptr())

	gl.BindVertexArray(mesh.vao)
	for _, s := range mesh.strips {
		gl.DrawElementsWithOffset(mesh.primitive, s.count, gl.UNSIGNED_INT, uintptr(s.offset*4))
	}
}

// meshFor returns the uploaded mesh for g, uploading it on first use.
func (r *Renderer) meshFor(g *scene.Geode) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}

	geom := g.Geometry()
	vertices := packVertices(geom)
	indices, strips := flattenStrips(geom.Strips)
	if len(vertices) == 0 || len(indices) == 0 {
		r.meshes[g] = nil
		return nil
	}

	m := &gpuMesh{strips: strips, primitive: gl.TRIANGLE_STRIP}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(3)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.meshes[g] = m

	r.log.Debug("mesh uploaded",
		zap.String("geode", g.Name()),
		zap.Int("vertices", len(vertices)/floatsPerVertex),
		zap.Int("indices", len(indices)),
		zap.Int("strips", len(strips)),
	)
	return m
}

// bindTexture binds layer to unit, uploading it on first use.
func (r *Renderer) bindTexture(unit uint32, layer *scene.TextureLayer) {
	id, ok := r.textures[layer]
	if !ok {
		id = r.uploadTexture(layer)
		r.textures[layer] = id
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// uploadTexture copies the layer's image to the GPU. Rows are flipped so
// that texcoord v=0 samples the bottom of the image.
func (r *Renderer) uploadTexture(layer *scene.TextureLayer) uint32 {
	img := texture.FlipVertical(layer.Image)
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
	if w == 0 || h == 0 {
		r.log.Warn("empty texture not uploaded", zap.String("source", layer.Source))
		return 0
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(layer.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(layer.WrapT))

	r.log.Debug("texture uploaded", zap.String("source", layer.Source), zap.Int32("width", w), zap.Int32("height", h))
	return id
}

func glWrap(m scene.WrapMode) int32 {
	if m == scene.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

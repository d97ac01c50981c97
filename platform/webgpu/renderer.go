package webgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/letterbox"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed lit_blit.wgsl
var litBlitWGSL string

// blit uniform block, see struct Blit in lit_blit.wgsl
const blitUniformSize = 80

type renderer struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface
	config   *wgpu.SurfaceConfiguration

	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler
	blitBuf  *wgpu.Buffer
	lightBuf *wgpu.Buffer
	// bound when no lighting program is attached to a blit
	unlit *letterbox.UniformTable

	frameTex  *wgpu.Texture
	frameView *wgpu.TextureView
	frameSize letterbox.Size
	bindGroup *wgpu.BindGroup
	bound     *letterbox.UniformTable
}

func newRenderer(window *glfw.Window, vsync bool) (*renderer, error) {
	r := &renderer{unlit: letterbox.NewUniformTable(letterbox.LightingLayout(letterbox.MaxLights))}
	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting adapter: %w", err)
	}
	r.adapter = adapter

	r.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("requesting device: %w", err)
	}
	r.queue = r.device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := r.surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	presentMode := wgpu.PresentModeFifo
	if !vsync && slices.Contains(caps.PresentModes, wgpu.PresentModeImmediate) {
		presentMode = wgpu.PresentModeImmediate
	}
	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(adapter, r.device, r.config)

	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Lit blit",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: litBlitWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compiling lit blit shader: %w", err)
	}
	defer module.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Lit Blit Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating blit pipeline: %w", err)
	}

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("creating sampler: %w", err)
	}

	r.blitBuf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Blit Uniforms",
		Size:  blitUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating blit buffer: %w", err)
	}
	r.lightBuf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Lighting Uniforms",
		Size:  uint64(len(r.unlit.Bytes())),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating lighting buffer: %w", err)
	}
	return r, nil
}

func (r *renderer) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.config.Width = uint32(w)
	r.config.Height = uint32(h)
	r.surface.Configure(r.adapter, r.device, r.config)
}

// ensureFrameTexture (re)creates the texture the CPU framebuffer is
// uploaded into.
func (r *renderer) ensureFrameTexture(size letterbox.Size) error {
	if r.frameTex != nil && r.frameSize == size {
		return nil
	}
	if r.frameTex != nil {
		r.bindGroup.Release()
		r.frameView.Release()
		r.frameTex.Release()
		r.bindGroup = nil
	}

	var err error
	r.frameTex, err = r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Virtual Framebuffer",
		Size:          wgpu.Extent3D{Width: uint32(size.Width), Height: uint32(size.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("creating framebuffer texture: %w", err)
	}
	r.frameView, err = r.frameTex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating framebuffer view: %w", err)
	}
	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: r.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: r.frameView},
			{Binding: 1, Sampler: r.sampler},
			{Binding: 2, Buffer: r.blitBuf, Size: wgpu.WholeSize},
			{Binding: 3, Buffer: r.lightBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("creating blit bind group: %w", err)
	}
	r.frameSize = size
	return nil
}

func (r *renderer) upload(pix []byte, size letterbox.Size) {
	r.queue.WriteTexture(r.frameTex.AsImageCopy(), pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(size.Width * 4),
		RowsPerImage: uint32(size.Height),
	}, &wgpu.Extent3D{Width: uint32(size.Width), Height: uint32(size.Height), DepthOrArrayLayers: 1})
}

func (r *renderer) writeLighting(table *letterbox.UniformTable) {
	if table == r.bound && !table.Dirty() {
		return
	}
	r.queue.WriteBuffer(r.lightBuf, 0, table.Bytes())
	table.ClearDirty()
	r.bound = table
}

func putFloats(b []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
}

// blitUniforms packs a BlitCommand. The source start is moved to the far
// edge of a negative extent so the shader can walk it with a signed size.
func blitUniforms(cmd letterbox.BlitCommand, window, tex letterbox.Size, lit bool) []byte {
	b := make([]byte, blitUniformSize)
	x0 := cmd.Source.X - min(cmd.Source.Width, 0)
	y0 := cmd.Source.Y - min(cmd.Source.Height, 0)
	flag := float32(0)
	if lit {
		flag = 1
	}
	putFloats(b,
		cmd.Dest.X, cmd.Dest.Y, cmd.Dest.Width, cmd.Dest.Height,
		x0, y0, cmd.Source.Width, cmd.Source.Height,
		float32(window.Width), float32(window.Height),
		float32(tex.Width), float32(tex.Height),
		float32(cmd.Tint.R)/255, float32(cmd.Tint.G)/255, float32(cmd.Tint.B)/255, float32(cmd.Tint.A)/255,
		flag, 0, 0, 0,
	)
	return b
}

// draw clears the surface and runs the queued blits.
func (r *renderer) draw(blits []queuedBlit) error {
	next, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquiring surface texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating surface view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	window := letterbox.Size{Width: int(r.config.Width), Height: int(r.config.Height)}
	// one framebuffer texture and uniform buffer: only the last blit of a
	// frame is drawn
	if n := len(blits); n > 0 {
		b := blits[n-1]
		if err := r.ensureFrameTexture(b.size); err != nil {
			pass.End()
			return err
		}
		r.upload(b.pix, b.size)
		table, lit := b.cmd.Program.(*letterbox.UniformTable)
		if !lit {
			table = r.unlit
		}
		r.writeLighting(table)
		r.queue.WriteBuffer(r.blitBuf, 0, blitUniforms(b.cmd, window, b.size, lit))

		pass.SetPipeline(r.pipeline)
		pass.SetBindGroup(0, r.bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("ending blit pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing encoder: %w", err)
	}
	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

func (r *renderer) release() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.frameView.Release()
		r.frameTex.Release()
	}
	r.lightBuf.Release()
	r.blitBuf.Release()
	r.sampler.Release()
	r.pipeline.Release()
	r.queue.Release()
	r.device.Release()
	r.adapter.Release()
	r.surface.Release()
	r.instance.Release()
}

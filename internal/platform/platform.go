// Package platform names the narrow host-service interfaces the
// editor core's external dependencies are carved down to: a GPU
// command surface, a font rasterizer, and a system clipboard. Nothing under
// internal/ outside of internal/host imports a concrete implementation
// of these — only the interfaces, so the core compiles and tests
// without any window system or GPU driver attached.
package platform

// GlyphCoverage is what the FontService hands back on a rasterization
// request: single-channel 8-bit coverage plus the metrics the atlas and
// renderer need to place it.
type GlyphCoverage struct {
	Pixels          []byte // WidthPx*HeightPx, row-major, one byte per pixel
	WidthPx         int
	HeightPx        int
	AdvanceX        float32
	BearingX        float32
	BearingY        float32
}

// FontService rasterizes a monospace font at a given pixel size. The
// core calls it only on an atlas cache miss.
type FontService interface {
	// Rasterize returns c's coverage bitmap at sizePx, or an error if the
	// glyph cannot be produced (missing in the font, zero-width, etc).
	Rasterize(c rune, sizePx float32) (GlyphCoverage, error)
	// LineHeightPx and AdvanceWidthPx report the font's fixed metrics at
	// sizePx, used to size the Viewport and the atlas's ASCII prepass.
	LineHeightPx(sizePx float32) float32
	AdvanceWidthPx(sizePx float32) float32
}

// Clipboard is the system clipboard contract: UTF-8 plain text only,
// no rich formats.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// ColorRGBA8 is a GPU-side straight-alpha color, the wire format every
// Quad's per-vertex color travels in.
type ColorRGBA8 struct {
	R, G, B, A uint8
}

// Vec2 is a screen-pixel-space 2D point.
type Vec2 struct{ X, Y float32 }

// ColorQuad is one vertex set of the colored-rect pipeline:
// a solid rectangle used for cell backgrounds, selection highlight, and
// the cursor.
type ColorQuad struct {
	Pos   [4]Vec2 // top-left, top-right, bottom-right, bottom-left
	Color ColorRGBA8
}

// GlyphQuad is one vertex set of the glyph pipeline: a textured
// rectangle sampling the atlas's coverage texture, modulated by Color.
type GlyphQuad struct {
	Pos   [4]Vec2
	UV    [4]Vec2
	Color ColorRGBA8
}

// Frame is the batch of quads + scissor rects one render pass submits.
// GPU owns turning this into actual draw calls; the core never touches
// a command buffer or shader handle directly.
type Frame struct {
	Background []ColorQuad
	Glyphs     []GlyphQuad
	Cursor     []ColorQuad
	// ScissorRows, if non-empty, restricts the whole frame's draws to
	// these screen-pixel-space rectangles.
	ScissorRows []ScissorRect
}

// ScissorRect is one dirty-region scissor rectangle in screen pixels.
type ScissorRect struct {
	X, Y, W, H float32
}

// GPU is the command-buffer surface the renderer draws through: textured-quad
// draws with alpha blending, a single-channel coverage texture, scissor
// rectangles, and per-drawable presentation. AtlasTextureUpload is
// called whenever the atlas packs a newly-rasterized glyph; Present
// submits one Frame and blocks until it's queued (not until it's on
// screen — the GPU's own swap cadence is its business, not the core's).
type GPU interface {
	// AtlasTextureUpload uploads or updates the single-channel coverage
	// texture backing the glyph pipeline. x, y, w, h are the dirty
	// sub-rectangle within the atlas texture; pixels is row-major,
	// w*h bytes.
	AtlasTextureUpload(x, y, w, h int, pixels []byte)
	// Present submits frame for display. It never allocates on the
	// core's behalf — Frame's slices are the renderer's own persistent
	// buffers, reused across calls.
	Present(frame Frame)
	// ViewportSize reports the current drawable size in screen pixels.
	ViewportSize() (w, h uint32)
}

// ColoredRectVertexShader and ColoredRectFragmentShader are the
// portable-HLSL-style sources for the colored-rect pipeline. A GPU host backend compiles these (or a hand-translated
// equivalent) for its native shading language; the core never links
// against a graphics API directly.
const ColoredRectVertexShader = `
cbuffer Uniforms : register(b0) {
    float2 screenSize;
};

struct VSInput {
    float2 pos   : POSITION;
    float4 color : COLOR0;
};

struct VSOutput {
    float4 pos   : SV_Position;
    float4 color : COLOR0;
};

VSOutput main(VSInput input) {
    VSOutput output;
    float2 ndc = (input.pos / screenSize) * 2.0 - 1.0;
    output.pos = float4(ndc.x, -ndc.y, 0.0, 1.0);
    output.color = input.color;
    return output;
}
`

const ColoredRectFragmentShader = `
struct PSInput {
    float4 pos   : SV_Position;
    float4 color : COLOR0;
};

float4 main(PSInput input) : SV_Target {
    return input.color;
}
`

// GlyphVertexShader and GlyphFragmentShader are the portable sources
// for the glyph pipeline: position + UV + per-vertex color in,
// coverage-modulated color out.
const GlyphVertexShader = `
cbuffer Uniforms : register(b0) {
    float2 screenSize;
};

struct VSInput {
    float2 pos   : POSITION;
    float2 uv    : TEXCOORD0;
    float4 color : COLOR0;
};

struct VSOutput {
    float4 pos   : SV_Position;
    float2 uv    : TEXCOORD0;
    float4 color : COLOR0;
};

VSOutput main(VSInput input) {
    VSOutput output;
    float2 ndc = (input.pos / screenSize) * 2.0 - 1.0;
    output.pos = float4(ndc.x, -ndc.y, 0.0, 1.0);
    output.uv = input.uv;
    output.color = input.color;
    return output;
}
`

const GlyphFragmentShader = `
Texture2D coverageTex : register(t0);
SamplerState coverageSampler : register(s0);

struct PSInput {
    float4 pos   : SV_Position;
    float2 uv    : TEXCOORD0;
    float4 color : COLOR0;
};

float4 main(PSInput input) : SV_Target {
    float coverage = coverageTex.Sample(coverageSampler, input.uv).r;
    return float4(input.color.rgb, input.color.a * coverage);
}
`

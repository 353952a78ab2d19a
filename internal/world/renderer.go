package world

import (
	"proto3d/internal/components"
	"proto3d/internal/engine"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const ShadowMapResolution = 2048

const (
	ShadowNear float32 = 1.0
	ShadowFar  float32 = 150.0
)

type Renderer struct {
	Shader      rl.Shader
	ShadowMap   rl.RenderTexture2D
	Light       *components.DirectionalLight
	LightCamera rl.Camera3D
	MatLightVP  rl.Matrix
	floorSize   float32
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Initialize(floorSize float32) {
	r.floorSize = floorSize

	// Load lighting shader
	r.Shader = rl.LoadShader("assets/shaders/lighting.vs", "assets/shaders/lighting.fs")

	// Set shader locations for material maps so raylib knows where to bind them
	// Normal map goes to texture slot 1 (texture1 in our shader)
	locs := unsafe.Slice(r.Shader.Locs, rl.ShaderLocMapCubemap+1) // Enough for all shader locs
	locs[rl.ShaderLocMapNormal] = rl.GetShaderLocation(r.Shader, "texture1")

	// Create shadowmap render texture
	r.ShadowMap = loadShadowmapRenderTexture(ShadowMapResolution, ShadowMapResolution)
}

func (r *Renderer) SetLight(light *components.DirectionalLight) {
	r.Light = light
	r.updateLightCamera()
	r.updateShaderUniforms()
}

func (r *Renderer) updateLightCamera() {
	if r.Light == nil {
		return
	}
	r.LightCamera = r.Light.GetLightCamera(r.floorSize + 20)
}

func (r *Renderer) updateShaderUniforms() {
	if r.Light == nil {
		return
	}

	lightDirLoc := rl.GetShaderLocation(r.Shader, "lightDir")
	rl.SetShaderValue(r.Shader, lightDirLoc, []float32{r.Light.Direction.X, r.Light.Direction.Y, r.Light.Direction.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(r.Shader, "lightColor")
	rl.SetShaderValue(r.Shader, lightColorLoc, r.Light.GetColorFloat(), rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(r.Shader, "ambient")
	rl.SetShaderValue(r.Shader, ambientLoc, r.Light.GetAmbientFloat(), rl.ShaderUniformVec4)
}

func (r *Renderer) DrawShadowMap(gameObjects []*engine.GameObject) {
	rl.BeginTextureMode(r.ShadowMap)
	rl.ClearBackground(rl.White)

	rl.BeginMode3D(r.LightCamera)

	halfSize := r.LightCamera.Fovy / 2.0
	shadowProj := rl.MatrixOrtho(
		-halfSize, halfSize,
		-halfSize, halfSize,
		ShadowNear, ShadowFar,
	)
	rl.SetMatrixProjection(shadowProj)

	lightView := rl.GetMatrixModelview()
	lightProj := rl.GetMatrixProjection()

	rl.SetCullFace(0)
	// No frustum culling here: off-screen objects still cast shadows.
	for _, g := range gameObjects {
		if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
			mr.Draw()
		}
	}
	rl.SetCullFace(1)

	rl.EndMode3D()
	rl.EndTextureMode()

	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	r.MatLightVP = rl.MatrixMultiply(lightView, lightProj)
}

// DrawWithShadows renders the main camera pass. Must be called inside
// BeginMode3D for the same camera that is passed in.
func (r *Renderer) DrawWithShadows(camera rl.Camera3D, gameObjects []*engine.GameObject) {
	viewPosLoc := rl.GetShaderLocation(r.Shader, "viewPos")
	rl.SetShaderValue(r.Shader, viewPosLoc, []float32{camera.Position.X, camera.Position.Y, camera.Position.Z}, rl.ShaderUniformVec3)

	lightVPLoc := rl.GetShaderLocation(r.Shader, "matLightVP")
	rl.SetShaderValueMatrix(r.Shader, lightVPLoc, r.MatLightVP)

	shadowMapLoc := rl.GetShaderLocation(r.Shader, "shadowMap")
	rl.EnableShader(r.Shader.ID)

	textureSlot := int32(10)
	rl.ActiveTextureSlot(textureSlot)
	rl.EnableTexture(r.ShadowMap.Depth.ID)
	rl.SetUniform(shadowMapLoc, []int32{textureSlot}, int32(rl.ShaderUniformInt), 1)

	frustum := ExtractFrustum(camera)
	for _, g := range gameObjects {
		mr := engine.GetComponent[*components.ModelRenderer](g)
		if mr == nil {
			continue
		}
		if !frustum.ContainsSphere(g.WorldPosition(), cullRadius(g, mr)) {
			continue
		}
		mr.Draw()
	}
}

// cullRadius gives a conservative bounding-sphere radius for a renderer.
func cullRadius(g *engine.GameObject, mr *components.ModelRenderer) float32 {
	var base float32 = 1.0
	for _, s := range mr.MeshSize {
		if s > base {
			base = s
		}
	}
	scale := g.WorldScale()
	maxScale := scale.X
	if scale.Y > maxScale {
		maxScale = scale.Y
	}
	if scale.Z > maxScale {
		maxScale = scale.Z
	}
	if maxScale < 1.0 {
		maxScale = 1.0
	}
	return base * maxScale * 1.5
}

func (r *Renderer) MoveLightDir(dx, dy, dz float32) {
	if r.Light == nil {
		return
	}
	r.Light.MoveLightDir(dx, dy, dz)
	r.updateLightCamera()

	lightDirLoc := rl.GetShaderLocation(r.Shader, "lightDir")
	rl.SetShaderValue(r.Shader, lightDirLoc, []float32{r.Light.Direction.X, r.Light.Direction.Y, r.Light.Direction.Z}, rl.ShaderUniformVec3)
}

func (r *Renderer) Unload(gameObjects []*engine.GameObject) {
	rl.UnloadShader(r.Shader)
	rl.UnloadRenderTexture(r.ShadowMap)

	for _, g := range gameObjects {
		if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
			mr.Unload()
		}
	}
}

func loadShadowmapRenderTexture(width, height int32) rl.RenderTexture2D {
	target := rl.RenderTexture2D{}

	target.ID = rl.LoadFramebuffer()
	target.Texture.Width = width
	target.Texture.Height = height

	if target.ID > 0 {
		rl.EnableFramebuffer(target.ID)

		target.Depth.ID = rl.LoadTextureDepth(width, height, false)
		target.Depth.Width = width
		target.Depth.Height = height
		target.Depth.Format = 19
		target.Depth.Mipmaps = 1

		rl.FramebufferAttach(target.ID, target.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)

		rl.DisableFramebuffer()
	}

	return target
}

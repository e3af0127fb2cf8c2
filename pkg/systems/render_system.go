package systems

import (
	"image/color"
	"math"

	"github.com/decker502/viewcam/pkg/config"
	"github.com/decker502/viewcam/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// textureSize 程序生成贴图的边长（像素）
const textureSize = 32

// textureCount 贴图种类数
const textureCount = 4

// RenderSystem 在世界空间绘制贴图方块，并叠加镜头目标标记
//
// 每帧先取 CameraSystem.ComposeTransform()，再平移半个视口，
// 之后所有世界坐标都经由这个 GeoM 映射到屏幕。
type RenderSystem struct {
	camera *CameraSystem
	world  config.WorldConfig

	textures []*ebiten.Image // 首次 Draw 时生成
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(camera *CameraSystem, world config.WorldConfig) *RenderSystem {
	return &RenderSystem{
		camera: camera,
		world:  world,
	}
}

// SetWorld 替换世界配置（配置热加载）
func (rs *RenderSystem) SetWorld(world config.WorldConfig) {
	rs.world = world
}

// ViewTransform 镜头变换 + 平移到视口中心
func (rs *RenderSystem) ViewTransform(viewportWidth, viewportHeight int) ebiten.GeoM {
	geoM := rs.camera.ComposeTransform()
	geoM.Translate(float64(viewportWidth)/2, float64(viewportHeight)/2)
	return geoM
}

// TileOrigin 第 (col, row) 个方块左上角的世界坐标
// 整个方块阵列以世界原点为中心
func (rs *RenderSystem) TileOrigin(col, row int) types.Vector2 {
	half := float64(rs.world.Tiles) * rs.world.TileSize / 2
	return types.Vec2(
		float64(col)*rs.world.TileSize-half,
		float64(row)*rs.world.TileSize-half,
	)
}

// TileGeoM 把一张 textureSize 边长的贴图放到 (col, row) 方块上
func (rs *RenderSystem) TileGeoM(col, row int, view ebiten.GeoM) ebiten.GeoM {
	origin := rs.TileOrigin(col, row)
	s := rs.world.TileSize / textureSize

	var geoM ebiten.GeoM
	geoM.Scale(s, s)
	geoM.Translate(origin.X, origin.Y)
	geoM.Concat(view)
	return geoM
}

// TileVisible 方块是否可能出现在视口内（按外接圆粗略剔除）
func (rs *RenderSystem) TileVisible(col, row int, view ebiten.GeoM, viewportWidth, viewportHeight int) bool {
	origin := rs.TileOrigin(col, row)
	half := rs.world.TileSize / 2
	cx, cy := view.Apply(origin.X+half, origin.Y+half)
	r := half * math.Sqrt2 * rs.camera.Zoom()

	return cx+r >= 0 && cy+r >= 0 &&
		cx-r <= float64(viewportWidth) && cy-r <= float64(viewportHeight)
}

// Draw 绘制世界
func (rs *RenderSystem) Draw(screen *ebiten.Image) {
	if rs.textures == nil {
		rs.textures = generateTextures()
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := rs.ViewTransform(w, h)

	screen.Fill(color.RGBA{R: 0x12, G: 0x14, B: 0x1c, A: 0xff})

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	for row := 0; row < rs.world.Tiles; row++ {
		for col := 0; col < rs.world.Tiles; col++ {
			if !rs.TileVisible(col, row, view, w, h) {
				continue
			}
			op.GeoM = rs.TileGeoM(col, row, view)
			op.ColorScale.Reset()
			tint := tileTint(col, row, rs.world.Tiles)
			op.ColorScale.Scale(tint[0], tint[1], tint[2], 1)
			screen.DrawImage(rs.textures[(col+row)%len(rs.textures)], op)
		}
	}

	rs.drawAxes(screen, view)
	rs.drawTargetMarker(screen, view)
}

// drawAxes 绘制世界坐标轴（X 红，Y 绿）
func (rs *RenderSystem) drawAxes(screen *ebiten.Image, view ebiten.GeoM) {
	extent := float64(rs.world.Tiles) * rs.world.TileSize / 2
	strokeWorldLine(screen, view, types.Vec2(-extent, 0), types.Vec2(extent, 0), color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff})
	strokeWorldLine(screen, view, types.Vec2(0, -extent), types.Vec2(0, extent), color.RGBA{R: 0x40, G: 0xe0, B: 0x40, A: 0xff})
}

// drawTargetMarker 在镜头目标点画十字；视口中心的小圆点表示当前视点
func (rs *RenderSystem) drawTargetMarker(screen *ebiten.Image, view ebiten.GeoM) {
	target := rs.camera.Target()
	x, y := view.Apply(target.X, target.Y)
	const arm = 8
	clr := color.RGBA{R: 0xff, G: 0xd0, B: 0x30, A: 0xff}
	vector.StrokeLine(screen, float32(x-arm), float32(y), float32(x+arm), float32(y), 2, clr, true)
	vector.StrokeLine(screen, float32(x), float32(y-arm), float32(x), float32(y+arm), 2, clr, true)

	cx, cy := view.Apply(rs.camera.Position().X, rs.camera.Position().Y)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), 3, color.White, true)
}

func strokeWorldLine(screen *ebiten.Image, view ebiten.GeoM, a, b types.Vector2, clr color.Color) {
	x0, y0 := view.Apply(a.X, a.Y)
	x1, y1 := view.Apply(b.X, b.Y)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, true)
}

// tileTint 按方块位置渐变着色
func tileTint(col, row, tiles int) [3]float32 {
	if tiles <= 1 {
		return [3]float32{1, 1, 1}
	}
	u := float32(col) / float32(tiles-1)
	v := float32(row) / float32(tiles-1)
	return [3]float32{0.55 + 0.45*u, 0.55 + 0.45*v, 0.55 + 0.45*(1-u)}
}

// generateTextures 程序生成几种贴图（棋盘、条纹、边框、圆点）
func generateTextures() []*ebiten.Image {
	textures := make([]*ebiten.Image, 0, textureCount)
	for kind := 0; kind < textureCount; kind++ {
		img := ebiten.NewImage(textureSize, textureSize)
		img.WritePixels(texturePixels(kind))
		textures = append(textures, img)
	}
	return textures
}

// texturePixels 返回第 kind 种贴图的 RGBA 像素
func texturePixels(kind int) []byte {
	pix := make([]byte, 4*textureSize*textureSize)
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			var on bool
			switch kind {
			case 0:
				on = (x/8+y/8)%2 == 0
			case 1:
				on = (x+y)/4%2 == 0
			case 2:
				on = x < 2 || y < 2 || x >= textureSize-2 || y >= textureSize-2
			default:
				dx, dy := x-textureSize/2, y-textureSize/2
				on = dx*dx+dy*dy < (textureSize/4)*(textureSize/4)
			}

			v := byte(0x70)
			if on {
				v = 0xe0
			}
			i := 4 * (y*textureSize + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xff
		}
	}
	return pix
}

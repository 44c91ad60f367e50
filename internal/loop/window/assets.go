package window

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
)

// Asset file names inside the asset directory.
const (
	backgroundFile = "space.jpg"
	shipFile       = "space-shooter-ship.png"
	meteorFile     = "meteors.webp"
	bulletFile     = "bullets.png"
	explosionFile  = "explosion.jpg"
	laserFile      = "laser.wav"
	boomFile       = "explosion.wav"
)

// Assets holds every sprite the window frontend draws.
type Assets struct {
	Background *ebiten.Image
	Ship       *ebiten.Image
	Meteor     *ebiten.Image // Color-keyed, scaled per meteor at draw time
	Bullet     *ebiten.Image
	Explosion  *ebiten.Image
}

// LoadAssets reads the sprites from dir. A sprite that cannot be loaded
// is replaced by a drawn stand-in; the returned errors say which.
func LoadAssets(dir string) (*Assets, []error) {
	var errs []error
	load := func(name string, fallback func() *ebiten.Image, keyed bool) *ebiten.Image {
		img, err := loadImage(filepath.Join(dir, name), keyed)
		if err != nil {
			errs = append(errs, err)
			return fallback()
		}
		return img
	}

	a := &Assets{
		Background: load(backgroundFile, fallbackBackground, false),
		Ship:       load(shipFile, fallbackShip, false),
		Meteor:     load(meteorFile, fallbackMeteor, true),
		Bullet:     load(bulletFile, fallbackBullet, true),
		Explosion:  load(explosionFile, fallbackExplosion, true),
	}
	return a, errs
}

func loadImage(path string, keyed bool) (*ebiten.Image, error) {
	img, src, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if keyed {
		return ebiten.NewImageFromImage(colorKey(src, color.Black)), nil
	}
	return img, nil
}

// colorKey returns a copy of img where every pixel equal to key is fully
// transparent.
func colorKey(img image.Image, key color.Color) *image.NRGBA {
	kr, kg, kb, _ := key.RGBA()
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			r, g, bl, _ := c.RGBA()
			if r == kr && g == kg && bl == kb {
				continue
			}
			out.Set(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return out
}

func fallbackBackground() *ebiten.Image {
	img := ebiten.NewImage(config.ScreenWidth, config.ScreenHeight)
	img.Fill(color.RGBA{R: 5, G: 5, B: 20, A: 255})

	// Fixed star pattern.
	for i := range 120 {
		x := float32((i * 7919) % config.ScreenWidth)
		y := float32((i * 104729) % config.ScreenHeight)
		vector.DrawFilledRect(img, x, y, 1, 1, color.RGBA{R: 200, G: 200, B: 220, A: 255}, false)
	}
	return img
}

func fallbackShip() *ebiten.Image {
	w, h := float32(object.PlayerWidth), float32(object.PlayerHeight)
	img := ebiten.NewImage(object.PlayerWidth, object.PlayerHeight)

	var path vector.Path
	path.MoveTo(w/2, 0)
	path.LineTo(w, h)
	path.LineTo(w/2, h*0.75)
	path.LineTo(0, h)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 0, 0.9, 1, 1
	}
	img.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	return img
}

func fallbackMeteor() *ebiten.Image {
	const size = 64
	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, size/2, size/2, size/2-2, color.RGBA{R: 140, G: 110, B: 80, A: 255}, true)
	vector.DrawFilledCircle(img, size*0.35, size*0.4, size/8, color.RGBA{R: 100, G: 80, B: 60, A: 255}, true)
	return img
}

func fallbackBullet() *ebiten.Image {
	img := ebiten.NewImage(object.BulletWidth, object.BulletHeight)
	img.Fill(colorBullet)
	return img
}

func fallbackExplosion() *ebiten.Image {
	const size = 64
	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, size/2, size/2, size/2, color.RGBA{R: 255, G: 140, B: 0, A: 255}, true)
	vector.DrawFilledCircle(img, size/2, size/2, size/4, color.RGBA{R: 255, G: 230, B: 120, A: 255}, true)
	return img
}

var whiteImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

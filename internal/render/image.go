package render

import (
	"time"

	"github.com/filamentd/filament/internal/geometry"
)

// ImageSource selects which of the notification's images an ImageElement
// shows.
type ImageSource string

const (
	// ImageSourceApp shows the sender's application image.
	ImageSourceApp ImageSource = "app"
	// ImageSourceHint shows the image supplied via hints.
	ImageSourceHint ImageSource = "hint"
	// ImageSourceAny prefers the hint image and falls back to the app
	// image.
	ImageSourceAny ImageSource = "any"
)

// ImageElement renders one of the notification's images scaled into a
// fixed box. When the selected image is absent the block degenerates to
// an anchored zero-size rect, exactly like empty text.
type ImageElement struct {
	Padding geometry.Padding
	Source  ImageSource
	// ScaleWidth and ScaleHeight are the content box the image is
	// scaled into.
	ScaleWidth  float64
	ScaleHeight float64

	// Cached at init.
	path string
	rect geometry.Rect
}

func (i *ImageElement) selectPath(env *Env) string {
	n := env.Notification
	switch i.Source {
	case ImageSourceApp:
		return n.AppImage
	case ImageSourceHint:
		return n.HintImage
	default:
		if n.HasHintImage() {
			return n.HintImage
		}
		return n.AppImage
	}
}

// PredictRectAndInit resolves the image path and caches the padded box.
func (i *ImageElement) PredictRectAndInit(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	i.path = i.selectPath(env)

	if i.path == "" {
		i.rect = geometry.Rect{}
		return emptyRectAt(hook, offset, parentRect)
	}

	rect := geometry.NewRect(0, 0, i.ScaleWidth, i.ScaleHeight).Pad(i.Padding)
	pos := FindAnchorPos(hook, offset, parentRect, rect)
	rect.SetXY(pos.X, pos.Y)
	i.rect = rect
	return rect
}

// Draw paints the cached image into its content box.
func (i *ImageElement) Draw(hook Hook, offset geometry.Vec2, parentRect geometry.Rect, env *Env) geometry.Rect {
	if i.path == "" {
		return emptyRectAt(hook, offset, parentRect)
	}

	rect := i.rect
	pos := FindAnchorPos(hook, offset, parentRect, rect)

	content := geometry.NewRect(pos.X+i.Padding.Left, pos.Y+i.Padding.Top, i.ScaleWidth, i.ScaleHeight)
	env.Canvas.PaintImage(i.path, content)

	if env.Debug {
		env.Canvas.StrokeRect(content, debugColor)
	}

	rect.SetXY(pos.X, pos.Y)
	return rect
}

// Update is a no-op; images are static.
func (i *ImageElement) Update(time.Duration, *Env) bool {
	return false
}

package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/textscene/internal/engine/camera"
)

// DrawSceneTexture draws a rendered scene as a borderless background
// window covering (x, y, w, h). The window takes no input so the mouse
// falls through to whatever handles the camera.
func DrawSceneTexture(x, y, w, h float32, textureID uint32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// DrawNotice shows msg centred near the bottom of a width x height window.
func DrawNotice(msg string, width, height float32) {
	msgWidth := float32(360)
	imgui.SetNextWindowPos(imgui.NewVec2((width-msgWidth)/2, height-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Notice", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), msg)
	}
	imgui.End()
}

// FPS returns the frame rate ImGui measures.
func FPS() float32 {
	return imgui.CurrentIO().Framerate()
}

// Pointer samples the mouse for the orbit controls. When ImGui wants the
// mouse (a panel is hovered or being dragged) buttons and wheel read as
// released so the camera ignores them.
func Pointer() camera.PointerState {
	io := imgui.CurrentIO()
	pos := imgui.MousePos()
	p := camera.PointerState{X: pos.X, Y: pos.Y}
	if io.WantCaptureMouse() {
		return p
	}
	p.Left = imgui.IsMouseDown(imgui.MouseButtonLeft)
	p.Right = imgui.IsMouseDown(imgui.MouseButtonRight)
	p.Wheel = io.MouseWheel()
	return p
}

// FormatStats renders a one-line frame summary.
func FormatStats(fps float32, drawCalls, triangles int) string {
	return fmt.Sprintf("%.0f FPS | %d draw calls | %d triangles", fps, drawCalls, triangles)
}

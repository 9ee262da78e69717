package platform

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	gekko "github.com/gekko3d/gekko-forward"
)

// Window is a GLFW window with a current OpenGL 4.3 core context. It must be
// created and used from the main, OS-locked thread.
type Window struct {
	glfw *glfw.Window
	size image.Point
	char []rune

	resized bool
}

func NewWindow(width, height int, title string) (*Window, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Gekko"
	}
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{glfw: win}
	fw, fh := win.GetFramebufferSize()
	w.size = image.Pt(fw, fh)
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.char = append(w.char, char)
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.size = image.Pt(width, height)
		w.resized = true
	})
	return w, nil
}

// FramebufferSize is the drawable size in pixels.
func (w *Window) FramebufferSize() image.Point { return w.size }

// Resized reports whether the framebuffer changed size since the last call.
func (w *Window) Resized() bool {
	r := w.resized
	w.resized = false
	return r
}

func (w *Window) ShouldClose() bool { return w.glfw.ShouldClose() }

func (w *Window) SwapBuffers() { w.glfw.SwapBuffers() }

func (w *Window) Destroy() {
	if w.glfw == nil {
		return
	}
	w.glfw.Destroy()
	w.glfw = nil
	glfw.Terminate()
}

// Poll pumps the event queue and copies key, mouse and window state into
// input. It implements gekko.InputSource.
func (w *Window) Poll(input *gekko.Input) {
	glfw.PollEvents()

	input.CharBuffer = append(input.CharBuffer, w.char...)
	w.char = w.char[:0]

	for key, glfwKey := range keyToGlfw {
		input.SetKey(key, w.glfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range mouseToGlfw {
		input.SetKey(btn, w.glfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.SetCursor(w.glfw.GetCursorPos())
	input.WindowWidth, input.WindowHeight = w.glfw.GetSize()

	if input.MouseCaptured {
		w.glfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.glfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

var mouseToGlfw = map[int]glfw.MouseButton{
	gekko.MouseButtonLeft:   glfw.MouseButtonLeft,
	gekko.MouseButtonRight:  glfw.MouseButtonRight,
	gekko.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[int]glfw.Key{
	gekko.KeyA:         glfw.KeyA,
	gekko.KeyB:         glfw.KeyB,
	gekko.KeyC:         glfw.KeyC,
	gekko.KeyD:         glfw.KeyD,
	gekko.KeyE:         glfw.KeyE,
	gekko.KeyF:         glfw.KeyF,
	gekko.KeyG:         glfw.KeyG,
	gekko.KeyH:         glfw.KeyH,
	gekko.KeyI:         glfw.KeyI,
	gekko.KeyJ:         glfw.KeyJ,
	gekko.KeyK:         glfw.KeyK,
	gekko.KeyL:         glfw.KeyL,
	gekko.KeyM:         glfw.KeyM,
	gekko.KeyN:         glfw.KeyN,
	gekko.KeyO:         glfw.KeyO,
	gekko.KeyP:         glfw.KeyP,
	gekko.KeyQ:         glfw.KeyQ,
	gekko.KeyR:         glfw.KeyR,
	gekko.KeyS:         glfw.KeyS,
	gekko.KeyT:         glfw.KeyT,
	gekko.KeyU:         glfw.KeyU,
	gekko.KeyV:         glfw.KeyV,
	gekko.KeyW:         glfw.KeyW,
	gekko.KeyX:         glfw.KeyX,
	gekko.KeyY:         glfw.KeyY,
	gekko.KeyZ:         glfw.KeyZ,
	gekko.Key0:         glfw.Key0,
	gekko.Key1:         glfw.Key1,
	gekko.Key2:         glfw.Key2,
	gekko.Key3:         glfw.Key3,
	gekko.Key4:         glfw.Key4,
	gekko.Key5:         glfw.Key5,
	gekko.Key6:         glfw.Key6,
	gekko.Key7:         glfw.Key7,
	gekko.Key8:         glfw.Key8,
	gekko.Key9:         glfw.Key9,
	gekko.KeySpace:     glfw.KeySpace,
	gekko.KeyEnter:     glfw.KeyEnter,
	gekko.KeyEscape:    glfw.KeyEscape,
	gekko.KeyTab:       glfw.KeyTab,
	gekko.KeyBackspace: glfw.KeyBackspace,
	gekko.KeyInsert:    glfw.KeyInsert,
	gekko.KeyDelete:    glfw.KeyDelete,
	gekko.KeyRight:     glfw.KeyRight,
	gekko.KeyLeft:      glfw.KeyLeft,
	gekko.KeyDown:      glfw.KeyDown,
	gekko.KeyUp:        glfw.KeyUp,
	gekko.KeyF1:        glfw.KeyF1,
	gekko.KeyF2:        glfw.KeyF2,
	gekko.KeyF3:        glfw.KeyF3,
	gekko.KeyF4:        glfw.KeyF4,
	gekko.KeyF5:        glfw.KeyF5,
	gekko.KeyF6:        glfw.KeyF6,
	gekko.KeyF7:        glfw.KeyF7,
	gekko.KeyF8:        glfw.KeyF8,
	gekko.KeyF9:        glfw.KeyF9,
	gekko.KeyF10:       glfw.KeyF10,
	gekko.KeyF11:       glfw.KeyF11,
	gekko.KeyF12:       glfw.KeyF12,
	gekko.KeyMinus:     glfw.KeyMinus,
	gekko.KeyEqual:     glfw.KeyEqual,
	gekko.KeyKPPlus:    glfw.KeyKPAdd,
	gekko.KeyKPMinus:   glfw.KeyKPSubtract,
	gekko.KeyShift:     glfw.KeyLeftShift,
	gekko.KeyControl:   glfw.KeyLeftControl,
	gekko.KeyLeftAlt:   glfw.KeyLeftAlt,
}

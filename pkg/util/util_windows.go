package util

import (
	"fmt"

	"github.com/kroppt/winfileask"
	"github.com/veandco/go-sdl2/sdl"
)

// OpenFileDialog uses a system file picker to get a filename from the user.
// The picker is parented to win, which is required on this platform.
func OpenFileDialog(win *sdl.Window, title string) (string, error) {
	if win == nil {
		return "", fmt.Errorf("file dialog needs a window")
	}
	var wm *sdl.SysWMInfo
	var err error
	if wm, err = win.GetWMInfo(); err != nil {
		return "", err
	}
	info := wm.GetWindowsInfo()
	filter := winfileask.FileFilter{winfileask.Filter{}}
	str, ok, err := winfileask.GetOpenFileName(info.Window, title, filter, "")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoFileChosen
	}
	return str, nil
}

package util

import (
	"github.com/jcmuller/gozenity"
	"github.com/veandco/go-sdl2/sdl"
)

// OpenFileDialog uses a system file picker to get a filename from the user.
// The window may be nil.
func OpenFileDialog(win *sdl.Window, title string) (string, error) {
	files, err := gozenity.FileSelection(title, nil)
	if err != nil {
		return "", err
	}
	if len(files) == 0 || files[0] == "" {
		return "", ErrNoFileChosen
	}
	return files[0], nil
}

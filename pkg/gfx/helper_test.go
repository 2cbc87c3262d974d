package gfx

import (
	"testing"

	"github.com/gregjohnson2017/glwrap/pkg/gfx/gfxtest"
)

var _ Driver = (*gfxtest.Driver)(nil)

// useFakeDriver installs a fresh fake driver and an empty block registry for
// the duration of the test.
func useFakeDriver(t *testing.T) *gfxtest.Driver {
	t.Helper()
	d := gfxtest.New()
	prev := SetDriver(d)
	blocks = newBlockRegistry()
	t.Cleanup(func() {
		SetDriver(prev)
		blocks = newBlockRegistry()
	})
	return d
}

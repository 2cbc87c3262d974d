package gfx

import (
	"sort"

	"github.com/gregjohnson2017/glwrap/pkg/log"
)

// sharedBlock is the storage of one named uniform block, shared by every
// program declaring a block of that name.
type sharedBlock struct {
	name string
	ubo  *UniformBuffer
	refs int
	// variables written through SetUniformOfBlock
	vars map[string]struct{}
}

// blockRegistry maps block names to live storage. An entry lives exactly as
// long as some program holds a reference to it. It is not synchronized and
// must only be used from the thread owning the context.
type blockRegistry struct {
	entries map[string]*sharedBlock
}

var blocks = newBlockRegistry()

func newBlockRegistry() *blockRegistry {
	return &blockRegistry{entries: make(map[string]*sharedBlock)}
}

func (r *blockRegistry) lookup(name string) *sharedBlock {
	return r.entries[name]
}

// create allocates storage for a name that has no live entry and returns it
// holding one reference.
func (r *blockRegistry) create(name string, size int) (*sharedBlock, error) {
	if b, ok := r.entries[name]; ok {
		r.acquire(b)
		return b, nil
	}
	ubo, err := NewUniformBuffer(size)
	if err != nil {
		return nil, err
	}
	b := &sharedBlock{name: name, ubo: ubo, refs: 1, vars: make(map[string]struct{})}
	r.entries[name] = b
	log.Debugf("uniform block %q allocated with %v bytes", name, size)
	return b, nil
}

func (r *blockRegistry) acquire(b *sharedBlock) {
	b.refs++
}

// release drops one reference. The last one frees the storage and removes
// the entry, so a later program declaring the name starts from fresh storage.
func (r *blockRegistry) release(b *sharedBlock) {
	b.refs--
	if b.refs > 0 {
		return
	}
	if r.entries[b.name] == b {
		delete(r.entries, b.name)
	}
	b.ubo.Delete()
	log.Debugf("uniform block %q released", b.name)
}

func (r *blockRegistry) names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SharedBlocks returns the names of the uniform blocks with live storage.
func SharedBlocks() []string {
	return blocks.names()
}

// SharedBlockBuffer returns the storage of a live uniform block.
func SharedBlockBuffer(name string) (*UniformBuffer, bool) {
	b := blocks.lookup(name)
	if b == nil {
		return nil, false
	}
	return b.ubo, true
}

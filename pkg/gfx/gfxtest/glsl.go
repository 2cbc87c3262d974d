package gfxtest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// glslType is the std140 base alignment and size of a type and the setter
// family that may upload it.
type glslType struct {
	align  int
	size   int
	setter string
}

var glslTypes = map[string]glslType{
	"bool":  {4, 4, "1i"},
	"int":   {4, 4, "1i"},
	"uint":  {4, 4, "1ui"},
	"float": {4, 4, "1f"},
	"vec2":  {8, 8, "2f"},
	"vec3":  {16, 12, "3f"},
	"vec4":  {16, 16, "4f"},
	"ivec2": {8, 8, "2i"},
	"ivec3": {16, 12, "3i"},
	"ivec4": {16, 16, "4i"},
	"mat2":  {16, 32, "m2"},
	"mat3":  {16, 48, "m3"},
	"mat4":  {16, 64, "m4"},
}

func isSampler(typ string) bool {
	return strings.HasPrefix(typ, "sampler") || strings.HasPrefix(typ, "isampler") || strings.HasPrefix(typ, "usampler")
}

func setterOf(typ string) string {
	if isSampler(typ) {
		return "1i"
	}
	return glslTypes[typ].setter
}

type declaration struct {
	name     string
	typ      string
	arrayLen int
}

// reportedName is the name the driver reports, with "[0]" for arrays.
func (d declaration) reportedName() string {
	if d.arrayLen > 0 {
		return d.name + "[0]"
	}
	return d.name
}

type blockDeclaration struct {
	name     string
	instance string
	members  []declaration
}

type reflection struct {
	uniforms []declaration
	blocks   []blockDeclaration
}

var (
	lineComment   = regexp.MustCompile(`//[^\n]*`)
	blockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	layoutQual    = regexp.MustCompile(`layout\s*\([^)]*\)`)
	uniformBlock  = regexp.MustCompile(`(?s)\buniform\s+(\w+)\s*\{([^}]*)\}\s*(\w*)\s*;`)
	uniformDecl   = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	memberDecl    = regexp.MustCompile(`(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	mainFunc      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	errorDirectve = regexp.MustCompile(`(?m)^\s*#error\b(.*)$`)
)

// reflect extracts the uniform declarations of one shader source.
func reflect(source string) (reflection, error) {
	if m := errorDirectve.FindStringSubmatch(source); m != nil {
		return reflection{}, fmt.Errorf("0:1: error: #error%v", m[1])
	}
	src := blockComment.ReplaceAllString(source, "")
	src = lineComment.ReplaceAllString(src, "")
	src = layoutQual.ReplaceAllString(src, "")
	if !mainFunc.MatchString(src) {
		return reflection{}, fmt.Errorf("0:1: error: missing main function")
	}

	var r reflection
	for _, m := range uniformBlock.FindAllStringSubmatch(src, -1) {
		b := blockDeclaration{name: m[1], instance: m[3]}
		for _, mm := range memberDecl.FindAllStringSubmatch(m[2], -1) {
			decl, err := declare(mm)
			if err != nil {
				return reflection{}, err
			}
			if isSampler(decl.typ) {
				return reflection{}, fmt.Errorf("0:1: error: sampler %v inside block %v", decl.name, b.name)
			}
			b.members = append(b.members, decl)
		}
		r.blocks = append(r.blocks, b)
	}
	src = uniformBlock.ReplaceAllString(src, "")
	for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
		decl, err := declare(m)
		if err != nil {
			return reflection{}, err
		}
		r.uniforms = append(r.uniforms, decl)
	}
	return r, nil
}

func declare(m []string) (declaration, error) {
	decl := declaration{typ: m[1], name: m[2]}
	if _, ok := glslTypes[decl.typ]; !ok && !isSampler(decl.typ) {
		return declaration{}, fmt.Errorf("0:1: error: unknown type %v", decl.typ)
	}
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil || n <= 0 {
			return declaration{}, fmt.Errorf("0:1: error: bad array size %v", m[3])
		}
		decl.arrayLen = n
	}
	return decl, nil
}

func roundUp(n, multiple int) int {
	return (n + multiple - 1) / multiple * multiple
}

// std140 returns the offset of every member and the block data size.
func std140(members []declaration) ([]int, int) {
	offsets := make([]int, len(members))
	offset := 0
	for i, m := range members {
		t := glslTypes[m.typ]
		align, size := t.align, t.size
		if m.arrayLen > 0 {
			align = roundUp(align, 16)
			size = roundUp(size, 16) * m.arrayLen
		}
		offset = roundUp(offset, align)
		offsets[i] = offset
		offset += size
	}
	return offsets, roundUp(offset, 16)
}

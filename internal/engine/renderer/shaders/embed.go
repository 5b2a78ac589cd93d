// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MatcapVertexShader transforms meshes into view space for matcap lookup.
//
//go:embed matcap.vert
var MatcapVertexShader string

// MatcapFragmentShader shades with the matcap texture.
//
//go:embed matcap.frag
var MatcapFragmentShader string

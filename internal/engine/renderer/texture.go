package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// uploadTexture creates a mipmapped 2D texture from img. Colour data should pass
// srgb so the sampler returns linear values.
func uploadTexture(img *image.RGBA, srgb bool) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	replaceTexture(id, img, srgb)
	return id
}

// replaceTexture overwrites the contents of an existing texture.
func replaceTexture(id uint32, img *image.RGBA, srgb bool) {
	internal := int32(gl.RGBA8)
	if srgb {
		internal = gl.SRGB8_ALPHA8
	}
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// deleteTexture frees the texture and zeroes id.
func deleteTexture(id *uint32) {
	if *id != 0 {
		gl.DeleteTextures(1, id)
		*id = 0
	}
}

package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleSquareRoom = `
v 0 0 0
v 1 10 0
v 2 10 10
v 3 0 10
s 0 0 10 1 2 255 4 0 1 x 0 0 0 1 2 x 0 0 0 2 3 x 0 0 0 3 0 x 0 0 0
p 5 5 0
`

func TestLoadSingleSquareRoom(t *testing.T) {
	w, err := Load(strings.NewReader(singleSquareRoom))
	require.NoError(t, err)

	assert.Equal(t, 4, len(w.Vertices))
	assert.Equal(t, 1, w.NumSectors())
	assert.Equal(t, 5.0, w.Player.Pos.X())
	assert.Equal(t, 5.0, w.Player.Pos.Y())
	assert.Equal(t, 0.0, w.Player.Pos.Z(), "player z snaps to starting sector's floor")

	sect := w.Sector(0)
	assert.Len(t, sect.Walls, 4)
	for _, wl := range sect.Walls {
		assert.False(t, wl.HasNeighbor())
	}
}

const twoRoomsWithPortal = `
v 0 0 0
v 1 10 0
v 2 10 10
v 3 0 10
v 4 20 0
v 5 20 10
s 0 0 10 1 2 255 4 0 1 x 0 0 0 1 2 1 0 0 0 2 3 x 0 0 0 3 0 x 0 0 0
s 1 0 10 1 2 255 4 2 1 0 0 0 0 1 4 x 0 0 0 4 5 x 0 0 0 5 2 x 0 0 0
p 5 5 0
`

func TestLoadPortalReciprocity(t *testing.T) {
	w, err := Load(strings.NewReader(twoRoomsWithPortal))
	require.NoError(t, err)
	require.NoError(t, w.Validate())
}

func TestLoadRejectsMalformedRow(t *testing.T) {
	_, err := Load(strings.NewReader("v 0 not-a-number 0\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnreciprocatedPortal(t *testing.T) {
	bad := `
v 0 0 0
v 1 10 0
v 2 10 10
v 3 0 10
s 0 0 10 1 2 255 4 0 1 1 0 0 0 1 2 x 0 0 0 2 3 x 0 0 0 3 0 x 0 0 0
s 1 0 10 1 2 255 4 0 1 x 0 0 0 1 2 x 0 0 0 2 3 x 0 0 0 3 0 x 0 0 0
p 5 5 0
`
	_, err := Load(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestTextureWrap(t *testing.T) {
	tex := &Texture{W: 2, H: 2, Pix: []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	}, XScale: 1, YScale: 1}

	r, _, _, _ := tex.At(0, 0)
	assert.Equal(t, uint8(1), r)
	r, _, _, _ = tex.At(2, 0) // wraps to x=0
	assert.Equal(t, uint8(1), r)
	r, _, _, _ = tex.At(-1, 0) // wraps to x=1
	assert.Equal(t, uint8(2), r)
}

func TestTextureOutOfRangeIsNoTexture(t *testing.T) {
	w := New()
	w.Textures = []*Texture{{W: 1, H: 1, Pix: []byte{0, 0, 0, 0}, XScale: 1, YScale: 1}}
	_, ok := w.Texture(NoTexture)
	assert.False(t, ok)
	_, ok = w.Texture(5)
	assert.False(t, ok)
	_, ok = w.Texture(0)
	assert.True(t, ok)
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filamentd/filament/internal/geometry"
)

func TestFindAnchorPos_Symmetric(t *testing.T) {
	parent := geometry.NewRect(10, 20, 100, 50)
	own := geometry.NewRect(0, 0, 20, 10)

	tests := []struct {
		hook Hook
		want geometry.Vec2
	}{
		{HookTopLeft, geometry.NewVec2(10, 20)},
		{HookTopMiddle, geometry.NewVec2(50, 20)},
		{HookTopRight, geometry.NewVec2(90, 20)},
		{HookMiddleLeft, geometry.NewVec2(10, 40)},
		{HookCenter, geometry.NewVec2(50, 40)},
		{HookMiddleRight, geometry.NewVec2(90, 40)},
		{HookBottomLeft, geometry.NewVec2(10, 60)},
		{HookBottomMiddle, geometry.NewVec2(50, 60)},
		{HookBottomRight, geometry.NewVec2(90, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.hook.String(), func(t *testing.T) {
			got := FindAnchorPos(tt.hook, geometry.Vec2{}, parent, own)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAnchorPos_ParentSelfPair(t *testing.T) {
	parent := geometry.NewRect(10, 20, 100, 50)
	own := geometry.NewRect(0, 0, 20, 10)

	tests := []struct {
		name string
		hook Hook
		want geometry.Vec2
	}{
		{
			"below parent",
			Hook{Parent: AnchorBottomLeft, Self: AnchorTopLeft},
			geometry.NewVec2(10, 70),
		},
		{
			"above parent",
			Hook{Parent: AnchorTopLeft, Self: AnchorBottomLeft},
			geometry.NewVec2(10, 10),
		},
		{
			"right of parent",
			Hook{Parent: AnchorTopRight, Self: AnchorTopLeft},
			geometry.NewVec2(110, 20),
		},
		{
			"below, centered",
			Hook{Parent: AnchorBottomMiddle, Self: AnchorTopMiddle},
			geometry.NewVec2(50, 70),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAnchorPos(tt.hook, geometry.Vec2{}, parent, own)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAnchorPos_Offset(t *testing.T) {
	parent := geometry.NewRect(0, 0, 100, 100)
	own := geometry.NewRect(0, 0, 10, 10)

	got := FindAnchorPos(HookTopLeft, geometry.NewVec2(5, -7), parent, own)
	assert.Equal(t, geometry.NewVec2(5, -7), got)
}

func TestFindAnchorPos_IgnoresOwnPosition(t *testing.T) {
	parent := geometry.NewRect(0, 0, 100, 100)

	a := FindAnchorPos(HookBottomRight, geometry.Vec2{}, parent, geometry.NewRect(0, 0, 10, 10))
	b := FindAnchorPos(HookBottomRight, geometry.Vec2{}, parent, geometry.NewRect(-33, 44, 10, 10))
	assert.Equal(t, a, b)
}

func TestParseAnchor(t *testing.T) {
	for anchor, name := range anchorNames {
		parsed, err := ParseAnchor(name)
		require.NoError(t, err)
		assert.Equal(t, anchor, parsed)
	}

	_, err := ParseAnchor("upper-left")
	assert.Error(t, err)
}

func TestHook_String(t *testing.T) {
	assert.Equal(t, "bottom-left", HookBottomLeft.String())
	assert.Equal(t, "bottom-left/top-left",
		Hook{Parent: AnchorBottomLeft, Self: AnchorTopLeft}.String())
}

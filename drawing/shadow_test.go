package drawing

import (
	"testing"

	"github.com/0xDB6/Avalonia/media"
)

func TestOutsetShadowAppearsOutsideShape(t *testing.T) {
	c := newTestContext(t, 40, 40)
	rect := media.NewRoundedRect(media.NewRect(15, 15, 10, 10), 0)
	shadow := media.BoxShadow{Blur: 4, Color: media.Black}

	err := c.DrawRectangle(media.NewSolidColorBrush(media.White), nil, rect, shadow)
	if err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	if got := pixelAt(c, 14, 20); got[3] == 0 {
		t.Error("no shadow just outside the left edge")
	}
	if got := pixelAt(c, 20, 20); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("fill center = %v, want pure white over the shadow", got)
	}
	if got := pixelAt(c, 2, 2); got[3] != 0 {
		t.Errorf("far corner alpha = %d, want 0", got[3])
	}
}

func TestOutsetShadowFollowsOffset(t *testing.T) {
	c := newTestContext(t, 40, 40)
	rect := media.NewRoundedRect(media.NewRect(15, 15, 10, 10), 0)
	shadow := media.BoxShadow{OffsetX: 6, OffsetY: 0, Blur: 2, Color: media.Black}

	if err := c.DrawRectangle(nil, nil, rect, shadow); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	if got := pixelAt(c, 28, 20); got[3] == 0 {
		t.Error("no shadow on the offset side")
	}
	if got := pixelAt(c, 12, 20); got[3] != 0 {
		t.Errorf("opposite side alpha = %d, want 0", got[3])
	}
}

func TestInsetShadowTintsInteriorEdge(t *testing.T) {
	c := newTestContext(t, 40, 40)
	rect := media.NewRoundedRect(media.NewRect(10, 10, 20, 20), 0)
	shadow := media.BoxShadow{Blur: 4, Color: media.Black, Inset: true}

	err := c.DrawRectangle(media.NewSolidColorBrush(media.White), nil, rect, shadow)
	if err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	edge := pixelAt(c, 11, 20)
	center := pixelAt(c, 20, 20)
	if edge[0] >= center[0] {
		t.Errorf("interior edge red = %d, want darker than center %d", edge[0], center[0])
	}
	if got := pixelAt(c, 5, 20); got[3] != 0 {
		t.Errorf("outside the shape alpha = %d, want 0 for inset shadows", got[3])
	}
}

func TestShadowSizeLimitDisablesShadows(t *testing.T) {
	c := newTestContext(t, 40, 40, WithShadowSizeLimit(4))
	rect := media.NewRoundedRect(media.NewRect(15, 15, 10, 10), 0)
	shadow := media.BoxShadow{Blur: 4, Color: media.Black}

	if err := c.DrawRectangle(media.NewSolidColorBrush(media.White), nil, rect, shadow); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	if got := pixelAt(c, 13, 20); got[3] != 0 {
		t.Errorf("shadow alpha = %d, want 0 when over the size limit", got[3])
	}
	if got := pixelAt(c, 20, 20); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("fill = %v, want the plain fill to survive", got)
	}
}

func TestInvisibleShadowIsSkipped(t *testing.T) {
	c := newTestContext(t, 20, 20)
	rect := media.NewRoundedRect(media.NewRect(5, 5, 10, 10), 0)
	shadow := media.BoxShadow{Blur: 4, Color: media.Black.WithAlpha(0)}

	if err := c.DrawRectangle(nil, nil, rect, shadow); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}
	for _, p := range [][2]int{{4, 10}, {10, 4}, {16, 10}} {
		if got := pixelAt(c, p[0], p[1]); got[3] != 0 {
			t.Errorf("pixel %v alpha = %d, want 0 for an invisible shadow", p, got[3])
		}
	}
}

func TestShadowSpreadGrowsHardShadow(t *testing.T) {
	c := newTestContext(t, 40, 40)
	rect := media.NewRoundedRect(media.NewRect(15, 15, 10, 10), 0)
	shadow := media.BoxShadow{Spread: 4, Color: media.Black}

	if err := c.DrawRectangle(nil, nil, rect, shadow); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}

	if got := pixelAt(c, 12, 20); got[3] != 255 {
		t.Errorf("spread region alpha = %d, want 255 with no blur", got[3])
	}
	if got := pixelAt(c, 9, 20); got[3] != 0 {
		t.Errorf("beyond spread alpha = %d, want 0", got[3])
	}
}

func TestShadowHonorsAmbientOpacity(t *testing.T) {
	c := newTestContext(t, 40, 40)
	rect := media.NewRoundedRect(media.NewRect(15, 15, 10, 10), 0)
	shadow := media.BoxShadow{OffsetX: 6, Color: media.Black}

	if err := c.PushOpacity(0.5); err != nil {
		t.Fatalf("PushOpacity: %v", err)
	}
	if err := c.DrawRectangle(nil, nil, rect, shadow); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}
	if err := c.PopOpacity(); err != nil {
		t.Fatalf("PopOpacity: %v", err)
	}

	got := pixelAt(c, 28, 20)
	if got[3] < 120 || got[3] > 136 {
		t.Errorf("shadow alpha = %d, want about half strength inside an opacity scope", got[3])
	}
}

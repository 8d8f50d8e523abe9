package imageutil

import (
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBAImageFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.Set(10, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	img := RGBAImageFromImage(src)
	if img.Width() != 4 || img.Height() != 2 {
		t.Fatalf("Expected 4x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{1, 2, 3}) {
		t.Errorf("Expected origin pixel {1 2 3}, got %v", got)
	}
}

func TestLuminance(t *testing.T) {
	if v := White.Luminance(); v != 1 {
		t.Errorf("White should be exactly 1, got %v", v)
	}
	if v := (RGB{}).Luminance(); v != 0 {
		t.Errorf("Black should be 0, got %v", v)
	}
	// Green dominates BT.709 luminance
	if v := (RGB{G: 255}).Luminance(); math.Abs(v-0.7152) > 1e-9 {
		t.Errorf("Pure green should be 0.7152, got %v", v)
	}
}

func TestPadToPowerOfTwo(t *testing.T) {
	img := CreateSolidImage(5, 3, RGB{})
	padded := PadToPowerOfTwo(img)

	if padded.Width() != 8 || padded.Height() != 4 {
		t.Fatalf("Expected 8x4, got %dx%d", padded.Width(), padded.Height())
	}
	// 5 wide centered in 8 leaves a 1 pixel left margin, 3 tall in 4 none on top
	if padded.GetRGB(0, 0) != White {
		t.Error("Left margin should be white")
	}
	if padded.GetRGB(1, 0) != (RGB{}) {
		t.Error("Image should start at x=1")
	}
	if padded.GetRGB(5, 2) != (RGB{}) {
		t.Error("Image should end at x=5")
	}
	if padded.GetRGB(6, 2) != White {
		t.Error("Right margin should start at x=6")
	}
	if padded.GetRGB(6, 3) != White || padded.GetRGB(7, 0) != White {
		t.Error("Bottom and right margins should be white")
	}
}

func TestCreateGradientImageSingleColumn(t *testing.T) {
	img := CreateGradientImage(1, 3)
	if img.Width() != 1 || img.Height() != 3 {
		t.Fatalf("Expected 1x3, got %dx%d", img.Width(), img.Height())
	}
	if img.GetRGB(0, 2) != (RGB{}) {
		t.Error("Single column gradient should be black")
	}
}

func TestPadToPowerOfTwoKeepsExactSizes(t *testing.T) {
	img := CreateGradientImage(16, 8)
	padded := PadToPowerOfTwo(img)
	if padded.Width() != 16 || padded.Height() != 8 {
		t.Fatalf("Expected 16x8, got %dx%d", padded.Width(), padded.Height())
	}
	for x := 0; x < 16; x++ {
		if padded.GetRGB(x, 3) != img.GetRGB(x, 3) {
			t.Fatalf("Pixel %d changed by padding", x)
		}
	}
}

func TestCellBrightness(t *testing.T) {
	img := CreateCheckerboardImage(8, 8, 4)

	cells, err := CellBrightness(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 || len(cells[0]) != 2 {
		t.Fatalf("Expected 2x2 cells, got %dx%d", len(cells), len(cells[0]))
	}
	want := [][]float64{{1, 0}, {0, 1}}
	for y := range want {
		for x := range want[y] {
			if cells[y][x] != want[y][x] {
				t.Errorf("Cell (%d,%d): expected %v, got %v", x, y, want[y][x], cells[y][x])
			}
		}
	}

	// One column averages the whole checkerboard
	cells, err = CellBrightness(img, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 || cells[0][0] != 0.5 {
		t.Errorf("Expected single 0.5 cell, got %v", cells)
	}
}

func TestCellBrightnessRows(t *testing.T) {
	img := CreateSolidImage(16, 4, White)
	cells, err := CellBrightness(img, 8)
	if err != nil {
		t.Fatal(err)
	}
	// side = 2, rows = 4/2
	if len(cells) != 2 || len(cells[0]) != 8 {
		t.Fatalf("Expected 2 rows of 8, got %d rows", len(cells))
	}
}

func TestCellBrightnessInvalidResolution(t *testing.T) {
	img := CreateSolidImage(8, 8, White)
	for _, res := range []int{0, -1, 9} {
		if _, err := CellBrightness(img, res); err == nil {
			t.Errorf("Resolution %d should fail", res)
		}
	}
}

func TestCellBrightnessBelowMinimumResolution(t *testing.T) {
	img := CreateSolidImage(512, 16, White)
	min, _ := ResolutionBounds(img)
	if _, err := CellBrightness(img, min); err != nil {
		t.Fatalf("Minimum resolution %d should succeed: %v", min, err)
	}
	_, err := CellBrightness(img, min/2)
	if !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Resolution %d should fail with ErrInvalidResolution, got %v", min/2, err)
	}
}

func TestResolutionBounds(t *testing.T) {
	min, max := ResolutionBounds(CreateSolidImage(100, 30, White))
	// padded to 128x32
	if min != 4 || max != 128 {
		t.Errorf("Expected bounds 4..128, got %d..%d", min, max)
	}
	min, max = ResolutionBounds(CreateSolidImage(10, 60, White))
	if min != 1 || max != 16 {
		t.Errorf("Expected bounds 1..16, got %d..%d", min, max)
	}
}

func TestSaveAndLoadPNG(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.png")

	img := CreateGradientImage(50, 50)
	if err := SavePNG(img, path); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("Image file was not created")
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load image: %v", err)
	}

	if loaded.Width() != img.Width() || loaded.Height() != img.Height() {
		t.Errorf("Loaded image dimensions mismatch: %dx%d vs %dx%d",
			loaded.Width(), loaded.Height(), img.Width(), img.Height())
	}
	if loaded.GetRGB(49, 10) != img.GetRGB(49, 10) {
		t.Error("PNG round trip should be lossless")
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Loading a missing file should fail")
	}
}

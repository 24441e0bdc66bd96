package config

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, fileName)

	want := Default()
	want.WorkerPoolSize = 8
	want.TileSourceDir = "/tiles"

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.WorkerPoolSize != want.WorkerPoolSize {
		t.Fatalf("WorkerPoolSize = %d, want %d", got.WorkerPoolSize, want.WorkerPoolSize)
	}
	if got.TileSourceDir != want.TileSourceDir {
		t.Fatalf("TileSourceDir = %q, want %q", got.TileSourceDir, want.TileSourceDir)
	}
	if got.InactiveAssetSizeLimitBytes != want.InactiveAssetSizeLimitBytes {
		t.Fatalf("InactiveAssetSizeLimitBytes = %d, want %d", got.InactiveAssetSizeLimitBytes, want.InactiveAssetSizeLimitBytes)
	}
}

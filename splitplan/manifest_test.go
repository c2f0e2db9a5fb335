package splitplan

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lsycxyj/disableSplitChunks/chunkname"
)

func TestSaveLoad(t *testing.T) {
	p, err := Build(siteGraph(), mustNamer(t, chunkname.PolicyPrefix))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, name := range []string{"plan.json", "plan.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := p.Save(path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.ID != p.ID || got.Digest != p.Digest || !got.CreatedAt.Equal(p.CreatedAt) {
				t.Errorf("header mismatch: got %s/%s/%v", got.ID, got.Digest, got.CreatedAt)
			}
			if !reflect.DeepEqual(got.Groups, p.Groups) {
				t.Errorf("groups = %+v, want %+v", got.Groups, p.Groups)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("loaded plan should validate: %v", err)
			}
		})
	}
}

func TestSaveIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	p, err := Build(siteGraph(), mustNamer(t, chunkname.PolicySegment))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := p.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Policy != chunkname.PolicySegment {
		t.Errorf("policy = %s", got.Policy)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	p := &Plan{}
	var buf bytes.Buffer
	if err := p.Encode(&buf, Format("toml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Decode(strings.NewReader("{}"), Format("toml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"plan.json": FormatJSON,
		"plan.YAML": FormatYAML,
		"plan.yml":  FormatYAML,
		"plan":      FormatJSON,
		"dir/x.txt": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestWriteAtomicKeepsOldFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("encode failed")
	err := writeAtomic(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, `{"partial":`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("writeAtomic() error = %v, want %v", err, boom)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("manifest = %q, want the previous content", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Build(siteGraph(), mustNamer(t, chunkname.PolicyPrefix))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Digest != p.Digest {
		t.Errorf("digest = %s, want %s", got.Digest, p.Digest)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	p, err := Build(siteGraph(), mustNamer(t, chunkname.PolicyPrefix))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := p.Save(filepath.Join(t.TempDir(), "missing", "plan.json")); err == nil {
		t.Error("Save into a missing directory should fail")
	}
}

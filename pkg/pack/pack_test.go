package pack_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrhapile/respack/pkg/manifest"
	"github.com/mrhapile/respack/pkg/pack"
	"github.com/mrhapile/respack/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPack(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, srcDir, "x.bin", "AB")
	writeFile(t, srcDir, "y.bin", "CDE")

	decls, err := manifest.Parse([]byte(`[image]{key="a";path="x.bin";};[image]{key="b";path="y.bin";};`))
	if err != nil {
		t.Fatal(err)
	}

	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	result, err := pack.Pack(decls,
		pack.WithOutputDir(outDir),
		pack.WithSourceDir(srcDir),
		pack.WithTimestamp(fixedTime),
		pack.WithReport(),
	)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	blob, err := os.ReadFile(result.DataPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "ABCDE" {
		t.Errorf("blob = %q, want %q", blob, "ABCDE")
	}
	if result.ResourceCount != 2 || result.SizeBytes != 5 {
		t.Errorf("count=%d size=%d", result.ResourceCount, result.SizeBytes)
	}
	if !result.Report.GeneratedAt.Equal(fixedTime) {
		t.Error("Report timestamp mismatch")
	}

	store := pack.NewStore(outDir)
	recs, err := store.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	want := []types.IndexRecord{
		{Key: "a", Offset: 0, Length: 2, Type: "image"},
		{Key: "b", Offset: 2, Length: 3, Type: "image"},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d", len(recs), len(want))
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, recs[i], want[i])
		}
	}

	for key, content := range map[string]string{"a": "AB", "b": "CDE"} {
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", key, err)
		}
		if string(got) != content {
			t.Errorf("Load(%q) = %q, want %q", key, got, content)
		}
	}
	if _, err := store.Load("c"); !errors.Is(err, pack.ErrResourceNotFound) {
		t.Errorf("Load(c) = %v, want ErrResourceNotFound", err)
	}

	report, err := pack.ReadReport(result.ReportPath)
	if err != nil {
		t.Fatalf("ReadReport failed: %v", err)
	}
	if report.TotalResources != 2 || report.ContentHash != result.Report.ContentHash || report.BuildID == "" {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestPackEmptyPathWritesNothing(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	decls, err := manifest.Parse([]byte(`[image]{key="a";path="";};`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = pack.Pack(decls, pack.WithOutputDir(outDir))
	if !errors.Is(err, manifest.ErrEmptyField) {
		t.Fatalf("got %v, want ErrEmptyField", err)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("output directory was created: %v", err)
	}
}

func TestPackDuplicateKeyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cgures")
	b := filepath.Join(dir, "b.cgures")
	writeFile(t, dir, "a.cgures", `[image]{key="shared";path="x.bin";};`)
	writeFile(t, dir, "b.cgures", `[image]{key="shared";path="y.bin";};`)

	var all []types.Declaration
	for _, p := range []string{a, b} {
		decls, err := manifest.ParseFile(p, manifest.EncodingAuto)
		if err != nil {
			t.Fatal(err)
		}
		all = append(all, decls...)
	}

	outDir := filepath.Join(dir, "out")
	_, err := pack.Pack(all, pack.WithOutputDir(outDir))
	if !errors.Is(err, manifest.ErrDuplicateKey) {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, pack.DataFileName)); !os.IsNotExist(err) {
		t.Errorf("data blob was written: %v", err)
	}
}

func TestPackMissingSource(t *testing.T) {
	dir := t.TempDir()
	decls := []types.Declaration{{Type: "text", Key: "k", Path: "missing.txt"}}
	_, err := pack.Pack(decls, pack.WithOutputDir(dir))
	if !errors.Is(err, pack.ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want ErrIO wrapping os.ErrNotExist", err)
	}
}

func TestPackRebuildIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "first")
	writeFile(t, dir, "two.txt", "second")
	decls := []types.Declaration{
		{Type: "text", Key: "one", Path: "one.txt"},
		{Type: "text", Key: "two", Path: "two.txt"},
	}

	first, err := pack.Pack(decls, pack.WithOutputDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	second, err := pack.Pack(decls, pack.WithOutputDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	if first.Report.ContentHash != second.Report.ContentHash {
		t.Error("content hash changed between identical runs")
	}
	if first.Report.BuildID == second.Report.BuildID {
		t.Error("build id reused between runs")
	}

	store := pack.NewStore(dir)
	for _, d := range decls {
		want, _ := os.ReadFile(filepath.Join(dir, d.Path))
		got, err := store.Load(d.Key)
		if err != nil || !bytes.Equal(got, want) {
			t.Errorf("Load(%q) = %q, %v; want %q", d.Key, got, err, want)
		}
	}
}

func TestPackCustomFileNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	decls := []types.Declaration{{Type: "text", Key: "a", Path: "a.txt"}}

	result, err := pack.Pack(decls, pack.WithOutputDir(dir), pack.WithFileNames("data.bin", "index.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(result.DataPath) != "data.bin" || filepath.Base(result.IndexPath) != "index.bin" {
		t.Errorf("paths = %s, %s", result.DataPath, result.IndexPath)
	}

	store := pack.NewStore(dir, pack.DataFile("data.bin"), pack.IndexFile("index.bin"))
	got, err := store.Load("a")
	if err != nil || string(got) != "hello" {
		t.Errorf("Load = %q, %v", got, err)
	}
}

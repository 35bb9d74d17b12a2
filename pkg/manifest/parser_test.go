package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/mrhapile/respack/pkg/manifest"
)

const sample = `[image]
{
    key = "player_sprite";
    path = "assets/player.png";
};
[text]
{
    key = "title_text";
    path = "assets/title.txt";
};
# a comment
`

func TestParse(t *testing.T) {
	decls, err := manifest.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}

	first, second := decls[0], decls[1]
	if first.Type != "image" || first.Key != "player_sprite" || first.Path != "assets/player.png" {
		t.Errorf("unexpected first declaration: %+v", first)
	}
	if second.Type != "text" || second.Key != "title_text" || second.Path != "assets/title.txt" {
		t.Errorf("unexpected second declaration: %+v", second)
	}
	if first.Line != 1 || second.Line != 6 {
		t.Errorf("lines = %d, %d; want 1, 6", first.Line, second.Line)
	}
}

func TestParseCompact(t *testing.T) {
	text := `[image]{key="a";path="x.bin";};[image]{key="b";path="y.bin";};`
	decls, err := manifest.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 2 || decls[0].Key != "a" || decls[1].Path != "y.bin" {
		t.Errorf("unexpected declarations: %+v", decls)
	}
}

func TestParseMultipleBlocks(t *testing.T) {
	text := `[sound] { key = "boom"; }; { path = "boom.wav"; unused = "x"; };`
	decls, err := manifest.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	if decls[0].Key != "boom" || decls[0].Path != "boom.wav" {
		t.Errorf("unexpected declaration: %+v", decls[0])
	}
}

func TestParseStrayTokens(t *testing.T) {
	text := `junk here; "top level string"; [text]{ "key" = "k"; path = "p"; };`
	decls, err := manifest.Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(decls) != 1 || decls[0].Key != "k" || decls[0].Path != "p" {
		t.Errorf("unexpected declarations: %+v", decls)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
		line int
	}{
		{"unterminated quote", "[image]\n{\n  key = \"abc;\n  path = x;\n", manifest.ErrUnterminatedSegment, 3},
		{"unterminated bracket", "\n[image\n{", manifest.ErrUnterminatedSegment, 2},
		{"missing equals", "[image]{\n key \"a\"; };", manifest.ErrExpectedCharacter, 2},
		{"missing semicolon", "[image]{ key = \"a\"\n path = \"b\"; };", manifest.ErrExpectedCharacter, 2},
		{"unquoted value", "[image]{ key = a; };", manifest.ErrExpectedCharacter, 1},
		{"bad leading character", "[image]{\n\n = \"a\"; };", manifest.ErrUnexpectedCharacter, 3},
		{"unclosed block", "[image]{ key = \"a\";\n", manifest.ErrMalformedManifest, 2},
		{"block without semicolon", "[image]{ key = \"a\"; }\n[text]", manifest.ErrMalformedManifest, 2},
		{"empty type", "[  ]{ key = \"a\"; };", manifest.ErrEmptyField, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.text))
			if !errors.Is(err, tt.kind) {
				t.Fatalf("got %v, want %v", err, tt.kind)
			}
			var merr *manifest.Error
			if !errors.As(err, &merr) {
				t.Fatalf("error %v is not a *manifest.Error", err)
			}
			if merr.Line != tt.line {
				t.Errorf("line = %d, want %d", merr.Line, tt.line)
			}
		})
	}
}

func TestParseFilesDuplicateAcrossManifests(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cgures")
	b := filepath.Join(dir, "b.cgures")
	writeFile(t, a, `[image]{key="shared";path="x.bin";};`)
	writeFile(t, b, "\n\n[text]{key=\"shared\";path=\"y.bin\";};")

	_, err := manifest.ParseFiles([]string{a, b}, manifest.EncodingAuto)
	if !errors.Is(err, manifest.ErrDuplicateKey) {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}
	var merr *manifest.Error
	if errors.As(err, &merr) {
		if merr.Source != b || merr.Line != 3 {
			t.Errorf("diagnostic at %s:%d, want %s:3", merr.Source, merr.Line, b)
		}
	}
}

func TestParseFilesEmptyPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resource.cgures")
	writeFile(t, path, "[image]\n{\n  key = \"a\";\n  path = \"\";\n};\n")

	_, err := manifest.ParseFiles([]string{path}, manifest.EncodingAuto)
	if !errors.Is(err, manifest.ErrEmptyField) {
		t.Fatalf("got %v, want ErrEmptyField", err)
	}
}

func TestParseFilesMerge(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cgures")
	b := filepath.Join(dir, "b.cgures")
	writeFile(t, a, `[image]{key="one";path="1.bin";};`)
	writeFile(t, b, `[image]{key="two";path="2.bin";};`)

	decls, err := manifest.ParseFiles([]string{a, b}, manifest.EncodingAuto)
	if err != nil {
		t.Fatalf("ParseFiles failed: %v", err)
	}
	if len(decls) != 2 || decls[0].Key != "one" || decls[1].Key != "two" {
		t.Fatalf("unexpected declarations: %+v", decls)
	}
	if decls[0].Source != a || decls[1].Source != b {
		t.Errorf("sources = %s, %s", decls[0].Source, decls[1].Source)
	}
}

func TestParseFileUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.Bytes([]byte(`[text]{key="t";path="t.txt";};`))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "wide.cgures")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	for _, e := range []manifest.Encoding{manifest.EncodingAuto, manifest.EncodingUTF16LE} {
		decls, err := manifest.ParseFile(path, e)
		if err != nil {
			t.Fatalf("ParseFile(%s) failed: %v", e, err)
		}
		if len(decls) != 1 || decls[0].Key != "t" || decls[0].Path != "t.txt" {
			t.Errorf("ParseFile(%s) = %+v", e, decls)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := manifest.ParseFile(filepath.Join(t.TempDir(), "nope.cgures"), manifest.EncodingAuto)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

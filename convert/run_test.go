package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/kleczekr/html-to-shopify-richtext/config"
	"github.com/kleczekr/html-to-shopify-richtext/state"
)

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page10.html", "page2.html", "page1.HTM", "notes.txt", "sub/page3.html"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<p>x</p>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("single_file", func(t *testing.T) {
		got, err := collectInputs(filepath.Join(dir, "notes.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// explicitly named files are taken as is, extension filtering only
		// applies to directory scans
		if len(got) != 1 {
			t.Fatalf("expected the named file, got %v", got)
		}
	})

	t.Run("directory_in_natural_order", func(t *testing.T) {
		got, err := collectInputs(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var names []string
		for _, p := range got {
			rel, _ := filepath.Rel(dir, p)
			names = append(names, rel)
		}
		want := []string{"page1.HTM", "page2.html", "page10.html", filepath.Join("sub", "page3.html")}
		if strings.Join(names, "|") != strings.Join(want, "|") {
			t.Fatalf("wrong order: got %v, want %v", names, want)
		}
	})

	t.Run("missing_source", func(t *testing.T) {
		if _, err := collectInputs(filepath.Join(dir, "nope")); err == nil {
			t.Fatalf("expected error for missing source")
		}
	})
}

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	return &state.LocalEnv{Cfg: cfg, Log: zaptest.NewLogger(t)}
}

func TestConvertFile(t *testing.T) {
	env := testEnv(t)
	log := env.Log

	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "post.html")
	if err := os.WriteFile(src, []byte("<h1>Hi</h1>"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := convertFile(src, destDir, env, log); err != nil {
		t.Fatalf("unexpected conversion error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "post.json"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := `{"type":"root","children":[{"type":"heading","level":1,"children":[{"type":"text","value":"Hi"}]}]}`
	if string(data) != want {
		t.Fatalf("wrong output\n got: %s\nwant: %s", data, want)
	}

	t.Run("existing_destination_is_guarded", func(t *testing.T) {
		if err := convertFile(src, destDir, env, log); err == nil {
			t.Fatalf("expected error without --overwrite")
		}
		env.Overwrite = true
		if err := convertFile(src, destDir, env, log); err != nil {
			t.Fatalf("unexpected error with overwrite: %v", err)
		}
	})
}

func TestConvertFilePretty(t *testing.T) {
	env := testEnv(t)
	env.Cfg.Document.Pretty = true

	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "post.html")
	if err := os.WriteFile(src, []byte("<p>x</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := convertFile(src, destDir, env, env.Log); err != nil {
		t.Fatalf("unexpected conversion error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "post.json"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Fatalf("output is not indented: %s", data)
	}
}

func TestConvertFileNonUTF8Input(t *testing.T) {
	env := testEnv(t)

	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "legacy.html")

	// windows-1252 quotes around "hi", declared via meta so sniffing works
	body := []byte("<meta charset=\"windows-1252\"><p>\x93hi\x94</p>")
	if err := os.WriteFile(src, body, 0644); err != nil {
		t.Fatal(err)
	}

	if err := convertFile(src, destDir, env, env.Log); err != nil {
		t.Fatalf("unexpected conversion error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(destDir, "legacy.json"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "hi") {
		t.Fatalf("content lost in transcoding: %s", data)
	}
}

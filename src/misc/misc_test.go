package misc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExt(t *testing.T) {
	exts := []string{"png", "svg", "pdf"}
	for file, ok := range map[string]bool{
		"fig.png":       true,
		"out/fig.SVG":   true,
		"fig.pdf.gz":    true,
		"fig.txt":       false,
		"png":           false,
		"figure.csv.gz": false,
	} {
		if err := CheckExt(file, exts); (err == nil) != ok {
			t.Fatalf("CheckExt(%q) returned %v", file, err)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exists.sig")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CheckFile(file); err != nil {
		t.Fatal(err)
	}
	if err := CheckFile(filepath.Join(dir, "missing.sig")); err == nil {
		t.Fatal("missing file should fail the check")
	}
}

func TestCheckSTDIN(t *testing.T) {
	stdin := os.Stdin
	defer func() { os.Stdin = stdin }()

	// redirected from a file
	file := filepath.Join(t.TempDir(), "reads.sig")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	fh, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	os.Stdin = fh
	if err := CheckFile("-"); err != nil {
		t.Fatalf("redirected STDIN should be accepted: %v", err)
	}

	// piped
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	os.Stdin = r
	if err := CheckSTDIN(); err != nil {
		t.Fatalf("piped STDIN should be accepted: %v", err)
	}

	// a character device, as with an interactive terminal
	null, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("no null device")
	}
	defer null.Close()
	os.Stdin = null
	if err := CheckSTDIN(); err == nil {
		t.Fatal("a character device should not count as STDIN")
	}
}

func TestWriteOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "out.csv")
	if err := CheckOutDir(file); err != nil {
		t.Fatal(err)
	}
	err := WriteOutput(file, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "count,n_count")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "count,n_count\n" {
		t.Fatalf("unexpected file contents: %q", data)
	}

	// errors from the writer func are passed back
	err = WriteOutput(file, func(w io.Writer) error { return fmt.Errorf("write failed") })
	if err == nil {
		t.Fatal("expected the writer error to be returned")
	}
}

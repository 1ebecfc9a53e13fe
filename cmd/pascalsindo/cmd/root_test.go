package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCompileRejectsNonPasExtension(t *testing.T) {
	path := writeTempSource(t, "program.txt", "program contoh;\nmulai\nselesai.")

	err := runCompile(nil, []string{path})
	if err == nil {
		t.Fatal("runCompile: want an extension error, got nil")
	}
	if !strings.Contains(err.Error(), ".pas") {
		t.Fatalf("err = %q, want it to mention .pas", err)
	}
}

func TestRunCompileSucceedsOnWellFormedProgram(t *testing.T) {
	const src = `program contoh;
variabel a: integer;
mulai
  a := 1
selesai.`
	path := writeTempSource(t, "program.pas", src)

	if err := runCompile(nil, []string{path}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
}

func TestRunCompileReportsSemanticError(t *testing.T) {
	const src = `program contoh;
mulai
  a := 1
selesai.`
	path := writeTempSource(t, "program.pas", src)

	err := runCompile(nil, []string{path})
	if err == nil {
		t.Fatal("runCompile: want a semantic error, got nil")
	}
	if !strings.Contains(err.Error(), "Semantic error") {
		t.Fatalf("err = %q, want it to carry a Semantic phase banner", err)
	}
}

func TestRunCompileReportsSyntaxError(t *testing.T) {
	const src = `program contoh
mulai
selesai.`
	path := writeTempSource(t, "program.pas", src)

	err := runCompile(nil, []string{path})
	if err == nil {
		t.Fatal("runCompile: want a syntax error, got nil")
	}
	if !strings.Contains(err.Error(), "Syntax error") {
		t.Fatalf("err = %q, want it to carry a Syntax phase banner", err)
	}
}

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/sannyeinphyo/internlink-sub001/pkg/crypto"
)

func TestResolvePassword(t *testing.T) {
	t.Setenv("HASH_GEN_PASSWORD", "")
	if _, err := resolvePassword(nil); err == nil {
		t.Fatal("expected usage error without password")
	}
	if got, err := resolvePassword([]string{"abc"}); err != nil || got != "abc" {
		t.Fatalf("unexpected arg password: %s %v", got, err)
	}

	t.Setenv("HASH_GEN_PASSWORD", "from-env")
	if got, err := resolvePassword(nil); err != nil || got != "from-env" {
		t.Fatalf("unexpected env password: %s %v", got, err)
	}
}

func TestGenerateHash(t *testing.T) {
	hash, err := generateHash("my-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !crypto.CheckPassword("my-pass", hash) {
		t.Fatal("expected hash to verify")
	}
}

func TestMain_PrintsHash(t *testing.T) {
	origArgs := os.Args
	origStdout := os.Stdout
	defer func() {
		os.Args = origArgs
		os.Stdout = origStdout
	}()

	os.Args = []string{"hash-gen", "my-pass"}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	main()

	_ = w.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(r)
	text := out.String()
	if strings.Contains(text, "my-pass") {
		t.Fatalf("password must not be printed: %s", text)
	}
	if !strings.Contains(text, "Bcrypt Hash: $2") {
		t.Fatalf("hash output missing: %s", text)
	}
}

func TestMain_FailsWhenHashingFails(t *testing.T) {
	origArgs := os.Args
	origHash := generateHashFn
	origFatal := fatalfFn
	defer func() {
		os.Args = origArgs
		generateHashFn = origHash
		fatalfFn = origFatal
	}()

	os.Args = []string{"hash-gen", "my-pass"}
	generateHashFn = func(string) (string, error) { return "", errors.New("boom") }
	var fatal string
	fatalfFn = func(format string, args ...interface{}) { fatal = fmt.Sprintf(format, args...) }

	main()

	if !strings.Contains(fatal, "Failed to hash password: boom") {
		t.Fatalf("unexpected fatal message: %q", fatal)
	}
}

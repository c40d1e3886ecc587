package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sannyeinphyo/internlink-sub001/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

func resolvePassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if env := os.Getenv("HASH_GEN_PASSWORD"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("usage: hash-gen <password> (or set HASH_GEN_PASSWORD)")
}

// generateHash hashes with the same cost the service uses and checks the result
func generateHash(password string) (string, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", err
	}
	if !crypto.CheckPassword(password, hash) {
		return "", fmt.Errorf("generated hash does not verify")
	}
	return hash, nil
}

func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}

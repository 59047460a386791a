package main

import (
	"fmt"
	"log"
	"os"

	"chatmux/auth"
)

// hashpass prints the Argon2id hash of a password, for the
// ADMIN_PASSWORD_HASH environment variable.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: hashpass <password>")
	}
	password := os.Args[1]

	if err := auth.ValidateCredentials(auth.CredentialsRequest{
		Username: "admin",
		Password: password,
	}); err != nil {
		log.Fatalf("Password rejected: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Hashing failed: %v", err)
	}
	fmt.Println(hash)
}

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/hash/main.go <email> <password>")
		os.Exit(1)
	}

	email := os.Args[1]
	password := os.Args[2]

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Hash: %s\n", string(hash))
	fmt.Printf("\nSeed SQL:\n")
	fmt.Printf(
		"INSERT INTO users (id, email, name, password_hash) VALUES ('%s', '%s', '%s', '%s');\n",
		uuid.New(), email, email, string(hash),
	)
}

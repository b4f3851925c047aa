package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates the bcrypt hash for ADMIN_PASSWORD_HASH.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <password>")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(string(hashedPassword))
}

// cmd/hashpass/main.go
// Prints a bcrypt hash to use as ADMIN_PASSWORD_HASH.
//
// Usage:
//
//	go run ./cmd/hashpass -password testing
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/f1history/handlers"
)

func main() {
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	hash, err := handlers.HashPassword(*password)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	fmt.Println(hash)
}

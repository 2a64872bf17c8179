package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zabava/dashboard-go/internal/token"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/decode-token.go <jwt>\n")
		os.Exit(1)
	}

	claims := token.DecodeClaims(os.Args[1])
	if claims == nil {
		fmt.Fprintf(os.Stderr, "Error: token payload could not be decoded\n")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
	if exp := token.ExpiresAt(claims); !exp.IsZero() {
		fmt.Printf("expires: %s\n", exp)
	}
}

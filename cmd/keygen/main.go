package main

import (
	"fmt"
	"os"

	"github.com/caceasy/caceasy-core/pkg/apikey"
	"github.com/sirupsen/logrus"
)

// keygen prints a fresh value for ADMIN_API_KEY.
func main() {
	prefix := "adm"
	if len(os.Args) > 1 {
		prefix = os.Args[1]
	}

	key, err := apikey.GenerateAPIKey(prefix)
	if err != nil {
		logrus.Fatalf("Failed to generate admin key: %v", err)
	}

	fmt.Println(key)
}

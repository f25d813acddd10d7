package main

import (
	"log"

	"github.com/filehub/filehub-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}

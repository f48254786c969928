package main

import (
	"context"
	"log"

	"github.com/pawsit/pawsit-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("pawsit api exited: %v", err)
	}
}

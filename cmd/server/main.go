package main

import (
	"log"

	"github.com/yjym33/travelLog-Backend/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

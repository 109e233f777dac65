package main

import (
	"log"

	"github.com/MrSnakeDoc/comments/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ comments API failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ comments API stopped with error: %v", err)
	}
}

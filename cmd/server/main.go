package main

import (
	"log"
	"net/http"

	"dispatch_tracker/internal/logger"
	"dispatch_tracker/internal/middleware"
	"dispatch_tracker/internal/routes"
	"dispatch_tracker/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Open the local record store and apply schema migrations
	st, err := store.Open()
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// Populate empty collections with first-run defaults
	if err := st.SeedDefaults(); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	// Setup Gin router with the store handle injected
	r := routes.SetupRouter(st)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}

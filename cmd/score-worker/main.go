package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/scamwatch/backend/internal/config"
	"github.com/scamwatch/backend/internal/scoring"
	"github.com/scamwatch/backend/internal/services"
)

// score-worker recomputes risk scores for confirmed reports in bulk. It is
// invoked over HTTP (Cloud Scheduler / cron hitting POST /refresh) so a
// single deployment can be triggered on whatever cadence operations wants.
func main() {
	port := getEnv("PORT", "8081")
	cfg := config.Load()

	ctx := context.Background()
	reportService, err := services.NewMongoReportService(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer reportService.Close(context.Background())

	engine := scoring.NewEngine(reportService)
	refresher := services.NewRefreshService(reportService, engine)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	http.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
		defer cancel()

		log.Printf("[worker] score refresh started")
		summary, err := refresher.Refresh(ctx)
		if err != nil {
			log.Printf("[worker] refresh failed: %v", err)
			http.Error(w, "refresh failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	})

	log.Printf("score-worker listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

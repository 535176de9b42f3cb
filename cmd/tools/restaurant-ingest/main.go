// cmd/tools/restaurant-ingest/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"
	httpclient "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/ingest"
)

func main() {
	cuisines := flag.String("cuisines", "", "Comma-separated cuisines to crawl (overrides config)")
	neighborhoods := flag.String("neighborhoods", "", "Comma-separated neighborhoods (overrides config)")
	perCuisine := flag.Int("per-cuisine", 0, "Businesses to fetch per cuisine (overrides config)")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if *cuisines != "" {
		cfg.Ingest.Cuisines = strings.Split(*cuisines, ",")
	}
	if *neighborhoods != "" {
		cfg.Ingest.Neighborhoods = strings.Split(*neighborhoods, ",")
	}
	if *perCuisine > 0 {
		cfg.Ingest.PerCuisine = *perCuisine
	}
	if cfg.Ingest.YelpAPIKey == "" {
		zapLog.Fatal("missing yelp api key (ingest.yelp_api_key)")
	}

	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres open failed", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres ping failed", zap.Error(err))
	}

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch client failed", zap.Error(err))
	}
	if err := esClient.Ping(); err != nil {
		zapLog.Fatal("elasticsearch ping failed", zap.Error(err))
	}

	timeout := time.Duration(cfg.Ingest.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	yelp := ingest.NewYelpClient(cfg.Ingest.YelpBaseURL, cfg.Ingest.YelpAPIKey,
		httpclient.NewClient(timeout), log)

	ing := ingest.NewIngestor(cfg.Ingest, yelp, pg.DB, esClient.Client, cfg.Search.Index, log)

	sum, err := ing.Run(ctx)
	if err != nil {
		zapLog.Error("ingest run failed", zap.Error(err))
		os.Exit(1)
	}

	out, _ := json.Marshal(sum)
	fmt.Println(string(out))
}

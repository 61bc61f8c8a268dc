/* main.go
 * The "main" method for running the tournament engine. For details see `readme.md`
 * Usage: go run main.go -schedule="<path>" -addr="<listen addr>"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"scorix-ops/api/api"
	"scorix-ops/api/logic"
	"scorix-ops/bot"
	"scorix-ops/web"
)

func main() {
	err := godotenv.Load()

	//Flags
	dbPtr := flag.String("db", "scorix", "Name of the scoring feed database")
	schedulePtr := flag.String("schedule", "schedule.json", "Path to the schedule file")
	finalsPtr := flag.String("finals", "finals_schedule.json", "Path to the finals bracket file")
	notesPtr := flag.String("notes", "team_notes.json", "Path to the team notes file")
	shufflePtr := flag.String("shuffle", "true", "Shuffle regenerated match lists: takes true or false as argument")
	metricPtr := flag.String("metric", "total", "Finals qualification metric (total, average)")
	tablePtr := flag.String("table", "Table 1", "Table name shown on the display")
	addrPtr := flag.String("addr", ":8000", "Listen address for the HTTP server")
	syncPtr := flag.Duration("sync", 30*time.Second, "Interval between feed score syncs")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	shuffle, err := convertStrToBool(*shufflePtr)
	if err != nil {
		logger.Fatal("Invalid \"shuffle\" flag. Should be true or false")
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		logger.Fatal("Invalid \"test\" flag. Should be true or false")
	}
	discordToken := os.Getenv("DISCORD_PROD_TOKEN")
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	}

	a, err := api.NewAPI(api.Config{
		Database:     *dbPtr,
		MongoURI:     os.Getenv("MONGO_PROD_URI"),
		SchedulePath: *schedulePtr,
		FinalsPath:   *finalsPtr,
		NotesPath:    *notesPtr,
		Shuffle:      shuffle,
		Metric:       logic.QualifierMetric(*metricPtr),
		TableNumber:  *tablePtr,
		Log:          logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err := a.Close(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Serve score ingestion and display endpoints
	go func() {
		if err := web.Start(web.Config{Addr: *addrPtr, API: a, Log: logger}); err != nil {
			logger.Fatalf("web server stopped: %v", err)
		}
	}()

	// Poll the feed so scores land even when no tablet posts to /update
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.RunSync(ctx, *syncPtr)

	//Init bot and run
	b, err := bot.NewBot(discordToken, a, logger)
	if err != nil {
		logger.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		logger.Fatalf("bot stopped: %v", err)
	}
}

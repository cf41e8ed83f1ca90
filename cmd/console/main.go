package main

import (
	"context"
	"flag"
	"os"

	app "github.com/shezad-m/book-recommender/internal/app"
	"github.com/shezad-m/book-recommender/internal/console"
	"github.com/shezad-m/book-recommender/pkg/logger"
)

func main() {
	var (
		dataDir     = flag.String("data", "data", "Directory holding the dataset tables")
		booksFile   = flag.String("books", "Books.csv", "Books table file name")
		ratingsFile = flag.String("ratings", "Ratings.csv", "Ratings table file name")
		usersFile   = flag.String("users", "Users.csv", "Users table file name")
		strict      = flag.Bool("strict", false, "Fail on the first malformed dataset row instead of skipping")
		logFile     = flag.String("log", "", "Also write log output to this file")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		console.ShowHelp()
		return
	}

	// Setup logging
	if err := console.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	// No signal context here: a reader blocked on stdin cannot observe a
	// cancelled context, so Ctrl-C keeps its default behavior and the loop
	// ends cleanly on EOF, quit, or exit.
	ctx := context.Background()

	// Load the dataset and build the engine
	svc := app.New(
		app.WithLogger(logger.Get()),
		app.WithDataDir(*dataDir),
		app.WithSourceFiles(*booksFile, *ratingsFile, *usersFile),
		app.WithStrictLoad(*strict),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("Failed to load dataset: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Run the prompt loop
	if err := console.New(svc).Run(ctx); err != nil {
		os.Stderr.WriteString("Console failed: " + err.Error() + "\n")
		return
	}
}

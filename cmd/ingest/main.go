// optcg-ingest is the batch tool that populates the catalog database from the
// upstream card API. It is the sole writer; run it to completion before
// pointing the server at the database file.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/optcg-tools/catalog/backend/internal/database"
	"github.com/optcg-tools/catalog/backend/internal/ingest"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
)

var (
	dbPath  string
	apiBase string
)

var rootCmd = &cobra.Command{
	Use:   "optcg-ingest",
	Short: "Fetch card sets and cards from the upstream API into the catalog database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded .env")
		}
		if dbPath == "" {
			dbPath = os.Getenv("DB_PATH")
		}
		if dbPath == "" {
			dbPath = "./onepiece_cards.db"
		}
		if apiBase == "" {
			apiBase = os.Getenv("OPTCG_API_URL")
		}
	},
}

func openDB() *gorm.DB {
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to open database %s: %v", dbPath, err)
	}
	return database.GetDB()
}

func newRunner(db *gorm.DB) *ingest.Runner {
	return ingest.NewRunner(optcg.NewClient(apiBase), ingest.NewStore(db))
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Drop and recreate the sets and cards tables (destructive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.ResetSchema(openDB())
	},
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Fetch the set list and save it (existing sets are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := newRunner(openDB())
		_, err := runner.SyncSets(cmd.Context())
		return err
	},
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Fetch and save cards for every known set",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := newRunner(openDB())
		return runner.SyncCards(cmd.Context())
	},
}

var reset bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Full pipeline: sets, then every set's cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		if reset {
			if err := database.ResetSchema(db); err != nil {
				return err
			}
		}
		return newRunner(db).Run(cmd.Context())
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database file (default $DB_PATH or ./onepiece_cards.db)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "upstream API base URL (default $OPTCG_API_URL or the public endpoint)")
	runCmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate the schema before ingesting")

	rootCmd.AddCommand(initCmd, setsCmd, cardsCmd, runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

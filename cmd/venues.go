package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gig-calendar/core/config"
	"gig-calendar/core/database"
	"gig-calendar/core/logger"
	"gig-calendar/core/utils"
	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var venuesFile string

// venuesCmd groups venue registry operations.
var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Manage the venue registry",
}

// venuesListCmd prints the known venues.
var venuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known venues",
	RunE:  runVenuesList,
}

// venuesImportCmd loads venue definitions from a YAML file.
var venuesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import venues from a YAML file",
	Long: `Import venues from a YAML file. Venues whose slug already exists
are left untouched, so re-importing the same file is harmless.

The file holds a list of venues:

  venues:
    - name: Thalia Hall
      url: https://thaliahall.com
      timezone: America/Chicago
    - name: Empty Bottle
      url: https://emptybottle.com
      crawlable: false`,
	RunE: runVenuesImport,
}

func init() {
	venuesImportCmd.Flags().StringVar(&venuesFile, "file", "venues.yaml", "YAML file with venue definitions")

	venuesCmd.AddCommand(venuesListCmd)
	venuesCmd.AddCommand(venuesImportCmd)
	RootCmd.AddCommand(venuesCmd)
}

type venueEntry struct {
	Name      string `yaml:"name"`
	Slug      string `yaml:"slug"`
	URL       string `yaml:"url"`
	Timezone  string `yaml:"timezone"`
	Crawlable *bool  `yaml:"crawlable"`
}

type venueFile struct {
	Venues []venueEntry `yaml:"venues"`
}

func openStore() (store.Store, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store.NewGormStore(db), nil
}

func runVenuesList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	venues, err := st.ListVenues(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list venues: %w", err)
	}

	if len(venues) == 0 {
		fmt.Println("No venues registered. Use 'venues import' to add some.")
		return nil
	}

	fmt.Printf("%-4s %-25s %-20s %-22s %s\n", "ID", "NAME", "SLUG", "TIMEZONE", "CRAWLABLE")
	for _, v := range venues {
		fmt.Printf("%-4d %-25s %-20s %-22s %v\n", v.ID, v.Name, v.Slug, v.Timezone, v.Crawlable)
	}
	return nil
}

func runVenuesImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	data, err := os.ReadFile(venuesFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", venuesFile, err)
	}

	var file venueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", venuesFile, err)
	}
	if len(file.Venues) == 0 {
		return fmt.Errorf("%s contains no venues", venuesFile)
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	ctx := context.Background()
	created, skipped := 0, 0

	for _, entry := range file.Venues {
		venue, err := venueFromEntry(entry)
		if err != nil {
			return fmt.Errorf("venue %q: %w", entry.Name, err)
		}

		if err := st.CreateVenue(ctx, &venue); err != nil {
			var dup *store.DuplicateKeyError
			if errors.As(err, &dup) {
				l.Info("Venue already present, skipping", zap.String("slug", venue.Slug))
				skipped++
				continue
			}
			return fmt.Errorf("failed to create venue %q: %w", venue.Slug, err)
		}

		l.Info("Venue created",
			zap.String("slug", venue.Slug),
			zap.String("timezone", venue.Timezone),
			zap.Bool("crawlable", venue.Crawlable))
		created++
	}

	l.Info("Venue import finished",
		zap.Int("created", created),
		zap.Int("skipped", skipped))
	return nil
}

func venueFromEntry(entry venueEntry) (models.Venue, error) {
	if entry.Name == "" {
		return models.Venue{}, errors.New("missing name")
	}

	slug := entry.Slug
	if slug == "" {
		slug = utils.Slugify(entry.Name)
	}

	if entry.Timezone != "" {
		if _, err := time.LoadLocation(entry.Timezone); err != nil {
			return models.Venue{}, fmt.Errorf("invalid timezone %q: %w", entry.Timezone, err)
		}
	}

	crawlable := true
	if entry.Crawlable != nil {
		crawlable = *entry.Crawlable
	}

	return models.Venue{
		Name:      entry.Name,
		Slug:      slug,
		URL:       entry.URL,
		Timezone:  entry.Timezone,
		Crawlable: crawlable,
	}, nil
}

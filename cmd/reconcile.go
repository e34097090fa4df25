package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"gig-calendar/core/config"
	"gig-calendar/core/database"
	"gig-calendar/core/logger"
	"gig-calendar/core/resilience"
	"gig-calendar/core/storage"
	"gig-calendar/feature/calendar"
	"gig-calendar/feature/calendar/extract"
	"gig-calendar/feature/calendar/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	reconcileVenueSlug string
	reconcilePending   bool
	yesConfirm         bool
)

// reconcileCmd runs a full reconciliation over the venues.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile pending candidate batches into the calendar",
	Long: `Reconcile scraped candidate batches into the canonical calendar.

Venues are processed one at a time. Each venue's pending batch is read
from object storage, normalized, matched against the existing calendar
and persisted; a run report is archived afterwards. A venue whose
backend keeps failing is abandoned for this run and its batch kept.

Examples:
  # Reconcile every crawlable venue
  gig-calendar reconcile --yes

  # Reconcile a single venue, crawlable or not
  gig-calendar reconcile --venue thalia-hall --yes

  # Only venues with a batch waiting
  gig-calendar reconcile --pending --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileVenueSlug, "venue", "", "Reconcile only this venue slug")
	reconcileCmd.Flags().BoolVar(&reconcilePending, "pending", false, "Reconcile only venues with a pending batch")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Skip the confirmation prompt (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return fmt.Errorf("failed to ensure bucket: %w", err)
	}

	if !confirmReconcile() {
		l.Warn("Reconciliation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Starting reconciliation")

	exec := resilience.NewExecutor(cfg.Resilience, resilience.WithLogger(l))
	st := store.NewGormStore(db)
	extractor := extract.NewStorageExtractor(client, cfg.Storage.Bucket, cfg.Reconcile.CandidatePrefix, l)
	archiver := calendar.NewArchiver(client, cfg.Storage.Bucket, cfg.Reconcile.ReportPrefix, exec, l)

	r := calendar.NewReconciler(calendar.ReconcilerDeps{
		Store:     st,
		Extractor: extractor,
		Archiver:  archiver,
		Executor:  exec,
		Config:    cfg.Reconcile,
		Logger:    l,
	})

	summary, err := r.ReconcileAll(ctx, calendar.RunOptions{
		VenueSlug:   reconcileVenueSlug,
		PendingOnly: reconcilePending,
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	l.Info("Reconciliation summary",
		zap.Int("venues", summary.Venues),
		zap.Int("created", summary.Created),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("conflicts", summary.Conflicts),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	return nil
}

// confirmReconcile prompts before writing to the calendar, unless --yes.
func confirmReconcile() bool {
	if yesConfirm {
		return true
	}

	fmt.Print("Reconciliation writes to the calendar. Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

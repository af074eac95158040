package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"atelier/internal/matcher"
	"atelier/internal/model"
	"atelier/internal/store"
)

// FolderReconciler is the separate batch pass linking external document
// folders to artisan records. It only links; unmatched folders are recorded
// with an empty entity id for manual review.
type FolderReconciler struct {
	store    *store.Store
	matcher  *matcher.Matcher
	throttle *matcher.Throttle
	retries  int
	log      *zerolog.Logger
}

// NewFolderReconciler creates a reconciler with the given lookup spacing.
func NewFolderReconciler(s *store.Store, minInterval time.Duration, retries int, log *zerolog.Logger) *FolderReconciler {
	return &FolderReconciler{
		store:    s,
		matcher:  matcher.New(),
		throttle: matcher.NewThrottle(minInterval),
		retries:  retries,
		log:      log,
	}
}

// Reconcile walks the document root, matches every folder name against the
// stored artisans and persists the results. The candidate load goes through
// the throttle with a single retry on failure; an unreachable store after the
// retry aborts the run.
func (r *FolderReconciler) Reconcile(ctx context.Context, documentsDir string) ([]model.FolderMatch, error) {
	entries, err := os.ReadDir(documentsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}

	var candidates []matcher.Candidate
	err = r.throttle.WithRetry(ctx, r.retries, func() error {
		artisans, lerr := r.store.ListArtisanCandidates(ctx)
		if lerr != nil {
			return lerr
		}
		candidates = candidates[:0]
		for _, a := range artisans {
			candidates = append(candidates, matcher.Candidate{
				ID:          a.ID,
				PlainName:   a.PlainName,
				CompanyName: a.CompanyName,
				Firstname:   a.Firstname,
				Lastname:    a.Lastname,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load artisan candidates: %w", err)
	}

	var matches []model.FolderMatch
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := r.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		folderName := entry.Name()
		result := r.matcher.Match(folderName, candidates)

		match := model.FolderMatch{
			FolderName:       folderName,
			MatchedEntityID:  result.EntityID,
			Strategy:         result.Strategy,
			ConfidenceReason: result.Reason,
			Documents:        r.listDocuments(documentsDir, folderName),
		}
		matches = append(matches, match)

		if result.EntityID == "" {
			r.log.Info().Str("folder", folderName).Msg("folder left unmatched")
		} else {
			r.log.Debug().
				Str("folder", folderName).
				Str("artisan_id", result.EntityID).
				Str("strategy", string(result.Strategy)).
				Msg("folder matched")
		}
	}

	if err := r.store.BatchInsertFolderMatches(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to store folder matches: %w", err)
	}
	return matches, nil
}

func (r *FolderReconciler) listDocuments(documentsDir, folderName string) []model.Document {
	entries, err := os.ReadDir(filepath.Join(documentsDir, folderName))
	if err != nil {
		r.log.Debug().Err(err).Str("folder", folderName).Msg("folder listing failed")
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return matcher.ClassifyDocuments(names)
}

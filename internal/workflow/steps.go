package workflow

import (
	"context"

	"nex/internal/duplicates"
	"nex/internal/fserr"
	"nex/internal/logging"
	"nex/internal/organizer"
	"nex/internal/scanner"
)

// confirmCategories asks about each category in FileMap order and returns
// the accepted ones in the same order.
func (r *Runner) confirmCategories(ctx context.Context, files scanner.FileMap) ([]string, error) {
	var confirmed []string
	for _, cat := range files.Categories() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := r.prompter.ConfirmCategory(ctx, cat, files.Files(cat))
		if err != nil {
			return nil, err
		}
		if ok {
			confirmed = append(confirmed, cat)
		}
	}
	return confirmed, nil
}

// removeDuplicates asks once and deletes every non-keeper. It returns the
// paths removed (or, in a dry run, the paths that would be).
func (r *Runner) removeDuplicates(ctx context.Context, org *organizer.Organizer, groups []duplicates.Group, report *fserr.Report) ([]string, error) {
	if len(groups) == 0 {
		r.prompter.Notify(ctx, Event{Kind: EventNoDuplicates, DryRun: org.DryRun()})
		return nil, nil
	}
	ok, err := r.prompter.ConfirmDuplicates(ctx, groups)
	if err != nil || !ok {
		return nil, err
	}

	var paths []string
	for _, g := range groups {
		for _, f := range g.Removable() {
			paths = append(paths, f.Path)
		}
	}
	removed, deleteReport := org.Delete(ctx, paths)
	report.Merge(deleteReport)
	r.prompter.Notify(ctx, Event{
		Kind:   EventDuplicatesRemoved,
		Count:  len(removed),
		Failed: deleteReport.Len(),
		DryRun: org.DryRun(),
	})
	return removed, ctx.Err()
}

// moveCategories plans and executes the moves for every confirmed category,
// skipping files already removed as duplicates.
func (r *Runner) moveCategories(ctx context.Context, org *organizer.Organizer, files scanner.FileMap, confirmed, removed []string, report *fserr.Report) []organizer.MoveRecord {
	logger := logging.WithContext(ctx, r.logger)
	gone := make(map[string]struct{}, len(removed))
	for _, path := range removed {
		gone[path] = struct{}{}
	}

	var moves []organizer.MoveRecord
	for _, cat := range confirmed {
		if ctx.Err() != nil {
			break
		}
		var pending []scanner.FileEntry
		for _, f := range files.Files(cat) {
			if _, skip := gone[f.Path]; !skip {
				pending = append(pending, f)
			}
		}
		if len(pending) == 0 {
			logger.Debug("category has nothing left to move", logging.String("category", cat))
			continue
		}

		records, err := org.Plan(cat, pending)
		if err != nil {
			report.Add("plan", cat, err)
			logger.Warn("category plan failed", logging.String("category", cat), logging.Error(err))
			continue
		}
		moved, moveReport := org.Move(ctx, records)
		report.Merge(moveReport)
		moves = append(moves, moved...)
		r.prompter.Notify(ctx, Event{
			Kind:     EventCategoryMoved,
			Category: cat,
			Count:    len(moved),
			Failed:   moveReport.Len(),
			DryRun:   org.DryRun(),
		})
	}
	return moves
}

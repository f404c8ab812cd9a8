// Package forms holds the editing workflow for a single account.
//
// A Machine moves through explicit phases:
//
//	Loading -> LoadFailed (retry with Load) | Editing
//	Editing -> Saving -> Done{saved}    (or back to Editing on failure)
//	Editing -> Deleting -> Done{removed} (only after ShowDeleteDialog)
//
// A Machine is not safe for concurrent use; callers serialize access.
package forms

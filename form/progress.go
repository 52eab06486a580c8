package form

import (
	"context"

	"github.com/pkg/errors"

	"github.com/orgintake/intake/model"
	"github.com/orgintake/intake/store"
)

// SaveProgress writes one progress record per currently held answer
// entry, keyed by form and identifying email, overwriting earlier saves.
// It refuses to touch the store when no identifying email is present.
// Local file handles have no stored form and are left out.
func SaveProgress(ctx context.Context, s *Session, st store.Store) error {
	if !s.saving.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.saving.Store(false)

	_, _, answers, email := s.snapshot()
	if email == "" {
		return ErrEmailRequired
	}

	var records []model.ProgressRecord
	for id, a := range answers {
		value, ok := EncodeAnswer(a)
		if !ok {
			continue
		}
		records = append(records, model.ProgressRecord{QuestionID: id, Answer: value})
	}

	return errors.Wrap(st.UpsertProgress(ctx, s.FormID, email, records), "persist progress")
}

// Resume looks up the organization the identifying email belongs to,
// fetches its submitted answers plus any progress saved under the same
// form and email, and folds the decoded entries into the answer state.
// Entries not present in the fetched set are left alone; on conflict the
// fetched value wins, with saved progress taking precedence over older
// submitted answers. Returns how many entries were restored.
func Resume(ctx context.Context, s *Session, st store.Store) (int, error) {
	if !s.resuming.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRunning
	}
	defer s.resuming.Store(false)

	_, idx, _, email := s.snapshot()
	if email == "" {
		return 0, ErrEmailRequired
	}

	org, err := st.OrganizationByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrNoOrganization
	}
	if err != nil {
		return 0, errors.Wrap(err, "resolve organization")
	}

	responses, err := st.Responses(ctx, org.ID)
	if err != nil {
		return 0, errors.Wrap(err, "fetch responses")
	}

	progress, err := st.Progress(ctx, s.FormID, email)
	if err != nil {
		return 0, errors.Wrap(err, "fetch progress")
	}

	entries := make(AnswerState)
	for _, r := range responses {
		if q, ok := idx.ByID[r.QuestionID]; ok {
			entries[r.QuestionID] = DecodeAnswer(q, r.Answer)
		}
	}
	for _, r := range progress {
		if q, ok := idx.ByID[r.QuestionID]; ok {
			entries[r.QuestionID] = DecodeAnswer(q, r.Answer)
		}
	}

	s.mergeAnswers(entries)
	return len(entries), nil
}

package form

import (
	"bytes"
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/orgintake/intake/blob"
	"github.com/orgintake/intake/model"
	"github.com/orgintake/intake/store"
)

var (
	ErrEmailRequired  = errors.New("identifying email required")
	ErrNoOrganization = errors.New("no organization found for email")
)

// Submit converts the session's answer state into response records and
// persists them in one upsert attributed to the organization the
// identifying email resolves to. File answers still holding a raw
// handle are uploaded first, concurrently, and the returned storage
// path substituted as the answer; any upload failure aborts the whole
// submission with nothing written. On success the session becomes
// terminally submitted; on failure it stays editable.
func Submit(ctx context.Context, s *Session, st store.Store, files blob.Store) error {
	if !s.submitting.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.submitting.Store(false)

	questions, idx, answers, email := s.snapshot()
	if s.Submitted() {
		return ErrSubmitted
	}
	if email == "" {
		return ErrEmailRequired
	}

	org, err := st.OrganizationByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoOrganization
	}
	if err != nil {
		return errors.Wrap(err, "resolve organization")
	}

	records, uploads := buildRecords(idx, questions, answers)

	if len(uploads) > 0 {
		if err := runUploads(ctx, files, records, uploads); err != nil {
			return err
		}
	}

	if err := st.UpsertResponses(ctx, org.ID, records); err != nil {
		return errors.Wrap(err, "persist responses")
	}

	s.markSubmitted()
	return nil
}

type pendingUpload struct {
	record int // index into records
	file   *FileHandle
}

// buildRecords walks every fetched question and produces one record per
// visible question. Hidden questions contribute nothing, even when they
// still hold a value; an unanswered visible question contributes "".
func buildRecords(idx *Index, questions []model.Question, answers AnswerState) ([]model.ResponseRecord, []pendingUpload) {
	var records []model.ResponseRecord
	var uploads []pendingUpload

	for _, q := range questions {
		if !idx.Visible(q, answers) {
			continue
		}

		rec := model.ResponseRecord{QuestionID: q.ID}
		a, found := answers[q.ID]
		if found {
			switch a.Kind {
			case KindText:
				rec.Answer = a.Text
			case KindStringSet:
				rec.Answer, _ = EncodeAnswer(a)
			case KindFileRef:
				rec.Answer = a.Ref
			case KindFileHandle:
				if q.Type == model.TypeFile {
					uploads = append(uploads, pendingUpload{record: len(records), file: a.File})
				}
				// image uploads are deferred: the preview handle is
				// dropped and the record stays empty
			}
		}
		records = append(records, rec)
	}
	return records, uploads
}

// runUploads pushes every pending file to the blob store concurrently,
// writing returned paths into their records. All uploads are attempted;
// every failure is reported and any failure fails the submission.
func runUploads(ctx context.Context, files blob.Store, records []model.ResponseRecord, uploads []pendingUpload) error {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var failed *multierror.Error

	for _, up := range uploads {
		up := up
		g.Go(func() error {
			path, err := files.Put(ctx, up.file.Name, bytes.NewReader(up.file.Content))
			if err != nil {
				mu.Lock()
				failed = multierror.Append(failed, errors.Wrapf(err, "upload %q", up.file.Name))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			records[up.record].Answer = path
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return failed.ErrorOrNil()
}

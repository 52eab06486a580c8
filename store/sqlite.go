package store

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/orgintake/intake/model"
)

// SQL implements Store over database/sql.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Questions(ctx context.Context, formID int) ([]model.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, section, subsection, type, label, options, parent_id, condition_value
		FROM question
		WHERE form_id = ?
			AND enabled = 1
		ORDER BY id ASC`,
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query questions")
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q := model.Question{Enabled: true}
		var opts string
		var parentID sql.NullInt64
		err = rows.Scan(
			&q.ID, &q.FormID, &q.Section, &q.Subsection,
			&q.Type, &q.Label, &opts, &parentID, &q.ConditionValue,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		if parentID.Valid {
			id := int(parentID.Int64)
			q.ParentID = &id
		}
		if opts != "" {
			if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
				return nil, errors.Wrapf(err, "parse options of question %d", q.ID)
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQL) OrganizationByEmail(ctx context.Context, email string) (model.Organization, error) {
	var org model.Organization
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email
		FROM organization
		WHERE email = ?`,
		email,
	).Scan(&org.ID, &org.Name, &org.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Organization{}, ErrNotFound
	}
	if err != nil {
		return model.Organization{}, errors.Wrap(err, "query organization")
	}
	return org, nil
}

func (s *SQL) UpsertResponses(ctx context.Context, orgID int, records []model.ResponseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO response (organization_id, question_id, answer)
		VALUES (?, ?, ?)
		ON CONFLICT (organization_id, question_id) DO UPDATE SET answer = excluded.answer`)
	if err != nil {
		return errors.Wrap(err, "prepare response upsert")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, orgID, r.QuestionID, r.Answer); err != nil {
			return errors.Wrapf(err, "upsert response for question %d", r.QuestionID)
		}
	}
	return errors.Wrap(tx.Commit(), "commit responses")
}

func (s *SQL) Responses(ctx context.Context, orgID int) ([]model.ResponseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, answer
		FROM response
		WHERE organization_id = ?
		ORDER BY question_id ASC`,
		orgID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query responses")
	}
	defer rows.Close()

	var records []model.ResponseRecord
	for rows.Next() {
		var r model.ResponseRecord
		if err := rows.Scan(&r.QuestionID, &r.Answer); err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQL) UpsertProgress(ctx context.Context, formID int, email string, records []model.ProgressRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO progress (form_id, email, question_id, answer)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (form_id, email, question_id) DO UPDATE SET answer = excluded.answer`)
	if err != nil {
		return errors.Wrap(err, "prepare progress upsert")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, formID, email, r.QuestionID, r.Answer); err != nil {
			return errors.Wrapf(err, "upsert progress for question %d", r.QuestionID)
		}
	}
	return errors.Wrap(tx.Commit(), "commit progress")
}

func (s *SQL) Progress(ctx context.Context, formID int, email string) ([]model.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, answer
		FROM progress
		WHERE form_id = ?
			AND email = ?
		ORDER BY question_id ASC`,
		formID, email,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query progress")
	}
	defer rows.Close()

	var records []model.ProgressRecord
	for rows.Next() {
		var r model.ProgressRecord
		if err := rows.Scan(&r.QuestionID, &r.Answer); err != nil {
			return nil, errors.Wrap(err, "scan progress")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

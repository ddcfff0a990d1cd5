// Package firestore provides a questions.Manager backed by Google Cloud
// Firestore, mirroring the platform's production question store: one document
// per company code in a single collection, holding the ordered question list.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/questions"
)

// DefaultCollection is the Firestore collection holding company questions.
const DefaultCollection = "company_questions"

// Options configure the Firestore question manager.
type Options struct {
	Collection string
}

// Manager implements questions.Manager on top of Firestore.
type Manager struct {
	client     *firestore.Client
	collection string
}

// Interface compliance (compile-time assertion)
var _ questions.Manager = (*Manager)(nil)

// NewManager wraps an existing Firestore client.
func NewManager(client *firestore.Client, optFns ...func(o *Options)) *Manager {
	opts := Options{Collection: DefaultCollection}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{client: client, collection: opts.Collection}
}

// companyDoc is the stored document shape for a company's questions.
type companyDoc struct {
	Questions []questions.Question `firestore:"questions"`
}

func (m *Manager) doc(companyCode string) *firestore.DocumentRef {
	return m.client.Collection(m.collection).Doc(companyCode)
}

// load reads a company document, translating Firestore failures into the
// shared taxonomy.
func (m *Manager) load(ctx context.Context, companyCode string) ([]questions.Question, error) {
	snap, err := m.doc(companyCode).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %q", core.ErrCompanyNotFound, companyCode)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
	}
	var doc companyDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode company %q: %v", core.ErrProviderUnavailable, companyCode, err)
	}
	return doc.Questions, nil
}

// FetchQuestions implements questions.Provider.
func (m *Manager) FetchQuestions(ctx context.Context, companyCode string) ([]questions.Question, error) {
	return m.load(ctx, companyCode)
}

// CreateQuestions implements questions.Manager. Append mode runs as a
// Firestore transaction so concurrent appends to one company never lose
// questions to a read-modify-write race.
func (m *Manager) CreateQuestions(ctx context.Context, companyCode string, qs []questions.Question, appendMode bool) error {
	if !appendMode {
		if _, err := m.doc(companyCode).Set(ctx, companyDoc{Questions: qs}); err != nil {
			return fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
		}
		return nil
	}

	err := m.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		combined := qs
		snap, err := tx.Get(m.doc(companyCode))
		switch {
		case err == nil:
			var doc companyDoc
			if err := snap.DataTo(&doc); err != nil {
				return err
			}
			combined = append(append([]questions.Question{}, doc.Questions...), qs...)
		case status.Code(err) != codes.NotFound:
			return err
		}
		return tx.Set(m.doc(companyCode), companyDoc{Questions: combined})
	})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
	}
	return nil
}

// UpdateQuestion implements questions.Manager.
func (m *Manager) UpdateQuestion(ctx context.Context, companyCode string, index int, q questions.Question) error {
	qs, err := m.load(ctx, companyCode)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: %d of %d", questions.ErrIndexOutOfRange, index, len(qs))
	}
	qs[index] = q
	return m.save(ctx, companyCode, qs)
}

// DeleteQuestion implements questions.Manager.
func (m *Manager) DeleteQuestion(ctx context.Context, companyCode string, index int) error {
	qs, err := m.load(ctx, companyCode)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: %d of %d", questions.ErrIndexOutOfRange, index, len(qs))
	}
	qs = append(qs[:index:index], qs[index+1:]...)
	return m.save(ctx, companyCode, qs)
}

func (m *Manager) save(ctx context.Context, companyCode string, qs []questions.Question) error {
	if _, err := m.doc(companyCode).Update(ctx, []firestore.Update{{Path: "questions", Value: qs}}); err != nil {
		return fmt.Errorf("%w: %v", core.ErrProviderUnavailable, err)
	}
	return nil
}

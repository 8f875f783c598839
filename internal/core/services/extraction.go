package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService runs the date pipeline over containers.
type ExtractionService struct {
	factory     driven.AnnotatorFactory
	registry    driven.NormaliserRegistry
	log         *logger.Logger
	metadata    domain.AppMetadata
	concurrency int
	now         func() time.Time
}

// ExtractionOption configures an ExtractionService.
type ExtractionOption func(*ExtractionService)

// WithConcurrency processes up to n documents at once. Output order does
// not depend on n.
func WithConcurrency(n int) ExtractionOption {
	return func(s *ExtractionService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for run progress.
func WithLogger(l *logger.Logger) ExtractionOption {
	return func(s *ExtractionService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetadata replaces the reported application metadata.
func WithMetadata(m domain.AppMetadata) ExtractionOption {
	return func(s *ExtractionService) {
		s.metadata = m
	}
}

// WithClock sets the time source for view timestamps.
func WithClock(now func() time.Time) ExtractionOption {
	return func(s *ExtractionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewExtractionService creates an extraction service.
// The registry is only needed by LoadDocuments and may be nil otherwise.
func NewExtractionService(
	factory driven.AnnotatorFactory,
	registry driven.NormaliserRegistry,
	opts ...ExtractionOption,
) *ExtractionService {
	s := &ExtractionService{
		factory:     factory,
		registry:    registry,
		log:         logger.Default(),
		metadata:    NewAppMetadata(""),
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Annotate scans every text document in c and appends one view holding
// the annotations in document then text order.
func (s *ExtractionService) Annotate(
	ctx context.Context,
	c *domain.Container,
	params domain.Parameters,
) (*domain.View, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: container is nil", domain.ErrInvalidInput)
	}

	// Building the pipeline compiles the pattern, so a bad parameter fails
	// before any document is touched.
	pipeline, err := s.factory.Build(params)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	docs := c.TextDocuments()
	if len(docs) == 0 {
		return nil, domain.ErrNoInputDocuments
	}

	s.log.Section("Date Extraction")
	s.log.Debug("documents: %d, concurrency: %d", len(docs), s.concurrency)

	slots, err := s.process(ctx, pipeline, docs)
	if err != nil {
		return nil, err
	}

	view := &domain.View{
		ID:          uuid.New().String(),
		App:         s.metadata.Identifier,
		Timestamp:   s.now().UTC(),
		Parameters:  params.Clone(),
		Annotations: make([]domain.DateAnnotation, 0),
	}
	for _, anns := range slots {
		view.Annotations = append(view.Annotations, anns...)
	}
	c.AddView(view)

	s.log.Info("view %s: %d dates in %d documents", view.ID, len(view.Annotations), len(docs))
	return view, nil
}

// process runs the pipeline per document. Results are slotted by document
// index so concurrent runs emit in container order.
func (s *ExtractionService) process(
	ctx context.Context,
	pipeline driven.AnnotatorPipeline,
	docs []*domain.Document,
) ([][]domain.DateAnnotation, error) {
	slots := make([][]domain.DateAnnotation, len(docs))

	if s.concurrency <= 1 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			anns, err := pipeline.Process(ctx, doc)
			if err != nil {
				return nil, fmt.Errorf("document %s: %w", doc.ID, err)
			}
			slots[i] = anns
		}
		return slots, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			anns, err := pipeline.Process(gctx, doc)
			if err != nil {
				return fmt.Errorf("document %s: %w", doc.ID, err)
			}
			slots[i] = anns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

// ExtractText annotates text as a single document with ID "d1".
// An empty text yields no annotations.
func (s *ExtractionService) ExtractText(
	ctx context.Context,
	text string,
	params domain.Parameters,
) ([]domain.DateAnnotation, error) {
	c := &domain.Container{
		Documents: []domain.Document{{
			ID:        documentID(0),
			Type:      domain.DocumentTypeText,
			MIMEType:  "text/plain",
			Text:      text,
			CreatedAt: s.now().UTC(),
		}},
	}
	view, err := s.Annotate(ctx, c, params)
	if err != nil {
		return nil, err
	}
	return view.Annotations, nil
}

// LoadDocuments normalises raws into a container of text documents.
// Documents are numbered d1, d2, ... in input order.
func (s *ExtractionService) LoadDocuments(ctx context.Context, raws []domain.RawDocument) (*domain.Container, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("load documents: %w", domain.ErrNotImplemented)
	}

	c := &domain.Container{Documents: make([]domain.Document, 0, len(raws))}
	for i := range raws {
		result, err := s.registry.Normalise(ctx, &raws[i])
		if err != nil {
			return nil, fmt.Errorf("normalise %s: %w", raws[i].URI, err)
		}
		doc := result.Document
		doc.ID = documentID(i)
		if doc.Type == "" {
			doc.Type = domain.DocumentTypeText
		}
		s.log.Debug("loaded %s as %s (%s, %d bytes)", raws[i].URI, doc.ID, doc.MIMEType, len(doc.Text))
		c.Documents = append(c.Documents, doc)
	}
	return c, nil
}

// Metadata describes the application and its parameters.
func (s *ExtractionService) Metadata() domain.AppMetadata {
	return s.metadata
}

func documentID(i int) string {
	return fmt.Sprintf("d%d", i+1)
}

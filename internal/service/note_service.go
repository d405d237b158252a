package service

import (
	"context"
	"time"

	"notelite-be/internal/dto"
	"notelite-be/internal/entity"
	"notelite-be/internal/pkg/logger"
	"notelite-be/internal/pkg/serverutils"
	"notelite-be/internal/repository/memory"
	"notelite-be/internal/repository/specification"
	"notelite-be/internal/repository/unitofwork"
	"notelite-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	listCache      *memory.NoteListCache
	eventPublisher *events.Publisher
	logger         logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	listCache *memory.NoteListCache,
	eventPublisher *events.Publisher,
	sysLogger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		listCache:      listCache,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, serverutils.NewStoreError("Create failed", err)
	}

	c.afterMutation(ctx, events.TypeNoteCreated, note.Id, userId)

	return &dto.CreateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	if notes, found := c.listCache.Get(userId); found {
		return toNoteResponses(notes), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, serverutils.NewStoreError("Error fetching notes", err)
	}

	c.listCache.Set(userId, notes)

	return toNoteResponses(notes), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, serverutils.NewStoreError("Error fetching notes", err)
	}
	if note == nil {
		return nil, serverutils.NewNotFoundError("Note not found")
	}

	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, serverutils.NewStoreError("Update failed", err)
	}
	if note == nil {
		return nil, serverutils.NewNotFoundError("Note not found")
	}

	// Last writer wins: no version check before the save.
	note.Title = req.Title
	note.Content = req.Content
	note.Summary = req.Summary

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, serverutils.NewStoreError("Update failed", err)
	}

	c.afterMutation(ctx, events.TypeNoteUpdated, note.Id, userId)

	return &dto.UpdateNoteResponse{
		Id: note.Id,
	}, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return serverutils.NewStoreError("Delete failed", err)
	}
	if note == nil {
		return serverutils.NewNotFoundError("Note not found")
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return serverutils.NewStoreError("Delete failed", err)
	}

	c.afterMutation(ctx, events.TypeNoteDeleted, id, userId)

	return nil
}

// afterMutation drops the owner's cached list so the next List reads
// store truth, then raises the domain event. The event is auxiliary: a
// publish failure is logged, never surfaced.
func (c *noteService) afterMutation(ctx context.Context, eventType string, noteId, userId uuid.UUID) {
	c.listCache.Invalidate(userId)

	if c.eventPublisher != nil {
		evt := events.NewNoteEvent(eventType, noteId, userId)
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.logger.Warn("note", "failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = toNoteResponse(n)
	}
	return res
}

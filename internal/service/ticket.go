package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
	"github.com/kingrain94/support-desk-api/internal/service/storage"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const (
	defaultTicketPageSize = 50
	maxTicketPageSize     = 200
	defaultSearchSize     = 20
	maxSearchSize         = 100
)

// TicketEventPublisher broadcasts ticket changes to live subscribers.
type TicketEventPublisher interface {
	Publish(ctx context.Context, event domain.TicketEvent) error
}

// TicketIndexQueue hands tickets to the asynchronous search indexer.
type TicketIndexQueue interface {
	SendIndexMessage(ctx context.Context, doc *domain.TicketDocument) error
}

type TicketService struct {
	repo        repository.Repository
	attachments storage.AttachmentStore
	upload      config.UploadConfig
	logger      *logger.Logger
	events      TicketEventPublisher
	indexQueue  TicketIndexQueue
}

func NewTicketService(repo repository.Repository, attachments storage.AttachmentStore, upload config.UploadConfig, logger *logger.Logger) *TicketService {
	return &TicketService{
		repo:        repo,
		attachments: attachments,
		upload:      upload,
		logger:      logger,
	}
}

// SetEventPublisher enables live ticket events
func (s *TicketService) SetEventPublisher(publisher TicketEventPublisher) {
	s.events = publisher
}

// SetIndexQueue enables asynchronous search indexing
func (s *TicketService) SetIndexQueue(queue TicketIndexQueue) {
	s.indexQueue = queue
}

func (s *TicketService) List(ctx context.Context, id auth.Identity, query dto.TicketListQuery) ([]dto.TicketResponse, error) {
	filter := domain.TicketFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if query.Status != "" {
		if !domain.IsValidTicketStatus(query.Status) {
			return nil, NewValidationError(fmt.Sprintf("invalid status %q", query.Status))
		}
		filter.Status = domain.TicketStatus(query.Status)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, NewValidationError("limit and offset must not be negative")
	}
	if filter.Limit == 0 {
		filter.Limit = defaultTicketPageSize
	}
	filter.Limit = min(filter.Limit, maxTicketPageSize)
	if !id.CanViewAllTickets() {
		filter.ClientID = id.UserID
	}

	views, err := s.repo.Ticket().List(ctx, id.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return dto.FromTicketViews(views), nil
}

func (s *TicketService) Get(ctx context.Context, id auth.Identity, ticketID string) (*dto.TicketResponse, error) {
	view, err := s.load(ctx, id, ticketID)
	if err != nil {
		return nil, err
	}
	return dto.FromTicketView(view), nil
}

// load returns a ticket the caller may see. Tickets of other clients are
// reported as missing.
func (s *TicketService) load(ctx context.Context, id auth.Identity, ticketID string) (*domain.TicketView, error) {
	view, err := s.repo.Ticket().GetByID(ctx, id.TenantID, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if !id.CanViewAllTickets() && view.ClientID != id.UserID {
		return nil, ErrTicketNotFound
	}
	return view, nil
}

// Create validates the request, stores the optional attachment and inserts
// the ticket with the next tenant number.
func (s *TicketService) Create(ctx context.Context, id auth.Identity, req dto.CreateTicketRequest, upload *dto.AttachmentUpload) (*dto.TicketResponse, error) {
	subject := strings.TrimSpace(req.Subject)
	description := strings.TrimSpace(req.Description)
	if subject == "" || description == "" {
		return nil, NewValidationError("subject and description are required")
	}

	priority := domain.TicketPriorityMedium
	if req.Priority != "" {
		if !domain.IsValidTicketPriority(req.Priority) {
			return nil, NewValidationError(fmt.Sprintf("invalid priority %q", req.Priority))
		}
		priority = domain.TicketPriority(req.Priority)
	}

	ext, err := s.checkAttachment(upload)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ClientID:    id.UserID,
		Subject:     subject,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		Module:      optional(req.Module),
		Feature:     optional(req.Category),
	}

	if upload != nil {
		ref, err := s.attachments.Save(ctx, uuid.New().String()+ext, upload.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		ticket.AttachmentURL = &ref
	}

	if err := s.repo.Ticket().Create(ctx, id.TenantID, ticket); err != nil {
		if ticket.AttachmentURL != nil {
			if delErr := s.attachments.Delete(ctx, *ticket.AttachmentURL); delErr != nil {
				s.logger.Error("Failed to remove orphaned attachment", delErr, zap.String("ref", *ticket.AttachmentURL))
			}
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	view, err := s.repo.Ticket().GetByID(ctx, id.TenantID, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created ticket: %w", err)
	}

	s.notify(ctx, domain.TicketEventCreated, view)
	return dto.FromTicketView(view), nil
}

// checkAttachment returns the lower-cased extension of an acceptable upload.
func (s *TicketService) checkAttachment(upload *dto.AttachmentUpload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if upload.Size > s.upload.MaxSizeBytes {
		return "", NewValidationError(fmt.Sprintf("file exceeds the maximum size of %d bytes", s.upload.MaxSizeBytes))
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext == "" || !slices.Contains(s.upload.AllowedExts, ext) {
		return "", NewValidationError(fmt.Sprintf("file type %q is not allowed", ext))
	}
	return ext, nil
}

// Update applies the non-empty fields of req. Status and assignment are
// reserved for ticket managers.
func (s *TicketService) Update(ctx context.Context, id auth.Identity, ticketID string, req dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	current, err := s.load(ctx, id, ticketID)
	if err != nil {
		return nil, err
	}

	patch, err := s.buildPatch(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return dto.FromTicketView(current), nil
	}

	if err := s.repo.Ticket().Update(ctx, id.TenantID, ticketID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	view, err := s.repo.Ticket().GetByID(ctx, id.TenantID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated ticket: %w", err)
	}

	s.notify(ctx, domain.TicketEventUpdated, view)
	return dto.FromTicketView(view), nil
}

func (s *TicketService) buildPatch(ctx context.Context, id auth.Identity, req dto.UpdateTicketRequest) (domain.TicketPatch, error) {
	var patch domain.TicketPatch

	if subject := strings.TrimSpace(req.Subject); subject != "" {
		patch.Subject = &subject
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		patch.Description = &description
	}
	if req.Priority != "" {
		if !domain.IsValidTicketPriority(req.Priority) {
			return patch, NewValidationError(fmt.Sprintf("invalid priority %q", req.Priority))
		}
		priority := domain.TicketPriority(req.Priority)
		patch.Priority = &priority
	}

	if req.Status != "" || req.AssignedAgentID != "" {
		if !id.CanManageTickets() {
			return patch, ErrForbidden
		}
	}
	if req.Status != "" {
		if !domain.IsValidTicketStatus(req.Status) {
			return patch, NewValidationError(fmt.Sprintf("invalid status %q", req.Status))
		}
		status := domain.TicketStatus(req.Status)
		patch.Status = &status
	}
	if req.AssignedAgentID != "" {
		agent, err := s.repo.User().GetByID(ctx, id.TenantID, req.AssignedAgentID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return patch, fmt.Errorf("failed to load assignee: %w", err)
		}
		if agent == nil || !agent.IsActive || !agent.Role.In(domain.RoleAgent, domain.RoleAdmin) {
			return patch, NewValidationError("assignedAgentId must be an active agent or admin")
		}
		patch.AssignedAgentID = &agent.ID
	}

	return patch, nil
}

func (s *TicketService) Search(ctx context.Context, id auth.Identity, req dto.TicketSearchRequest) ([]dto.TicketResponse, error) {
	search := s.repo.Search()
	if search == nil {
		return nil, ErrSearchDisabled
	}

	text := strings.TrimSpace(req.Query)
	if text == "" {
		return nil, NewValidationError("q is required")
	}

	query := domain.TicketSearchQuery{
		Text: text,
		Size: defaultSearchSize,
	}
	if req.Size > 0 {
		query.Size = min(req.Size, maxSearchSize)
	}
	if !id.CanViewAllTickets() {
		query.ClientID = id.UserID
	}

	docs, err := search.Search(ctx, id.TenantID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}
	return dto.FromTicketDocuments(docs), nil
}

// notify fans a change out to the optional event and index channels. Both
// are best effort.
func (s *TicketService) notify(ctx context.Context, eventType domain.TicketEventType, view *domain.TicketView) {
	if s.events != nil {
		if err := s.events.Publish(ctx, domain.NewTicketEvent(eventType, &view.Ticket)); err != nil {
			s.logger.Error("Failed to publish ticket event", err,
				zap.String("ticket_id", view.ID), zap.String("tenant_id", view.TenantID))
		}
	}
	if s.indexQueue != nil {
		if err := s.indexQueue.SendIndexMessage(ctx, domain.NewTicketDocument(view)); err != nil {
			s.logger.Error("Failed to queue ticket for indexing", err,
				zap.String("ticket_id", view.ID), zap.String("tenant_id", view.TenantID))
		}
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

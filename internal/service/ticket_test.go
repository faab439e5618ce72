package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/mocks"
	"github.com/kingrain94/support-desk-api/internal/repository"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type mockAttachmentStore struct {
	mock.Mock
}

func (m *mockAttachmentStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, r)
	return args.String(0), args.Error(1)
}

func (m *mockAttachmentStore) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, event domain.TicketEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockIndexQueue struct {
	mock.Mock
}

func (m *mockIndexQueue) SendIndexMessage(ctx context.Context, doc *domain.TicketDocument) error {
	return m.Called(ctx, doc).Error(0)
}

type TicketServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	mockRepo    *mocks.Repository
	mockTicket  *mocks.TicketRepository
	mockUser    *mocks.UserRepository
	attachments *mockAttachmentStore
	events      *mockEventPublisher
	indexQueue  *mockIndexQueue
	service     *TicketService

	client auth.Identity
	agent  auth.Identity
}

func (s *TicketServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockRepo = new(mocks.Repository)
	s.mockTicket = new(mocks.TicketRepository)
	s.mockUser = new(mocks.UserRepository)
	s.attachments = new(mockAttachmentStore)
	s.events = new(mockEventPublisher)
	s.indexQueue = new(mockIndexQueue)

	s.mockRepo.On("Ticket").Return(s.mockTicket)
	s.mockRepo.On("User").Return(s.mockUser)

	upload := config.UploadConfig{
		MaxSizeBytes: 10 * 1024 * 1024,
		AllowedExts:  []string{".png", ".jpg", ".jpeg", ".gif", ".pdf", ".doc", ".docx"},
	}
	s.service = NewTicketService(s.mockRepo, s.attachments, upload, logger.NewNop())

	s.client = auth.Identity{UserID: "client-1", TenantID: "tenant-1", Role: domain.RoleClient}
	s.agent = auth.Identity{UserID: "agent-1", TenantID: "tenant-1", Role: domain.RoleAgent}
}

func TestTicketService(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}

func (s *TicketServiceTestSuite) view(id, clientID string) *domain.TicketView {
	first, last := "John", "Smith"
	return &domain.TicketView{
		Ticket: domain.Ticket{
			RecordHeader: domain.RecordHeader{ID: id, TenantID: "tenant-1", CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Sequence:     1,
			Number:       "TKT-000001",
			ClientID:     clientID,
			Subject:      "Printer jam",
			Description:  "Tray 2 is stuck",
			Priority:     domain.TicketPriorityMedium,
			Status:       domain.TicketStatusOpen,
		},
		ClientFirstName: &first,
		ClientLastName:  &last,
	}
}

func (s *TicketServiceTestSuite) TestList_ClientSeesOwnTickets() {
	expected := domain.TicketFilter{ClientID: "client-1", Limit: defaultTicketPageSize}
	s.mockTicket.On("List", s.ctx, "tenant-1", expected).Return([]domain.TicketView{*s.view("t1", "client-1")}, nil)

	tickets, err := s.service.List(s.ctx, s.client, dto.TicketListQuery{})

	s.Require().NoError(err)
	s.Require().Len(tickets, 1)
	s.Equal("John Smith", tickets[0].ClientName)
	s.mockTicket.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestList_AgentSeesAllWithStatusFilter() {
	expected := domain.TicketFilter{Status: domain.TicketStatusInProgress, Limit: maxTicketPageSize}
	s.mockTicket.On("List", s.ctx, "tenant-1", expected).Return([]domain.TicketView{}, nil)

	tickets, err := s.service.List(s.ctx, s.agent, dto.TicketListQuery{Status: "in_progress", Limit: 1000})

	s.Require().NoError(err)
	s.Empty(tickets)
	s.mockTicket.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestList_InvalidStatus() {
	_, err := s.service.List(s.ctx, s.agent, dto.TicketListQuery{Status: "resolved"})
	s.ErrorIs(err, ErrValidation)
}

func (s *TicketServiceTestSuite) TestGet_OtherClientsTicketIsHidden() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-2"), nil)

	_, err := s.service.Get(s.ctx, s.client, "t1")
	s.ErrorIs(err, ErrTicketNotFound)
}

func (s *TicketServiceTestSuite) TestGet_NotFound() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "missing").Return(nil, repository.ErrNotFound)

	_, err := s.service.Get(s.ctx, s.agent, "missing")
	s.ErrorIs(err, ErrTicketNotFound)
}

func (s *TicketServiceTestSuite) TestCreate_RequiresSubjectAndDescription() {
	_, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{Subject: "  ", Description: "x"}, nil)

	s.ErrorIs(err, ErrValidation)
	s.mockTicket.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TicketServiceTestSuite) TestCreate_DefaultsAndNotifies() {
	s.service.SetEventPublisher(s.events)
	s.service.SetIndexQueue(s.indexQueue)

	s.mockTicket.On("Create", s.ctx, "tenant-1", mock.MatchedBy(func(t *domain.Ticket) bool {
		return t.ClientID == "client-1" && t.Priority == domain.TicketPriorityMedium &&
			t.Status == domain.TicketStatusOpen && t.Feature != nil && *t.Feature == "Login" && t.AttachmentURL == nil
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Ticket).ID = "t1"
	}).Return(nil)
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)
	s.events.On("Publish", s.ctx, mock.MatchedBy(func(e domain.TicketEvent) bool {
		return e.Type == domain.TicketEventCreated && e.TicketID == "t1" && e.TenantID == "tenant-1"
	})).Return(nil)
	s.indexQueue.On("SendIndexMessage", s.ctx, mock.MatchedBy(func(d *domain.TicketDocument) bool {
		return d.ID == "t1" && d.ClientName == "John Smith"
	})).Return(nil)

	resp, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{
		Subject: "Printer jam", Description: "Tray 2 is stuck", Category: "Login",
	}, nil)

	s.Require().NoError(err)
	s.Equal("TKT-000001", resp.Number)
	s.events.AssertExpectations(s.T())
	s.indexQueue.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestCreate_StoresAttachment() {
	content := strings.NewReader("png-bytes")
	s.attachments.On("Save", s.ctx, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ".png") && len(name) == 36+len(".png")
	}), content).Return("/uploads/tickets/abc.png", nil)
	s.mockTicket.On("Create", s.ctx, "tenant-1", mock.MatchedBy(func(t *domain.Ticket) bool {
		return t.AttachmentURL != nil && *t.AttachmentURL == "/uploads/tickets/abc.png"
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Ticket).ID = "t1"
	}).Return(nil)
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)

	_, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{Subject: "s", Description: "d"},
		&dto.AttachmentUpload{Filename: "Screen.PNG", Size: 9, Content: content})

	s.Require().NoError(err)
	s.attachments.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestCreate_RemovesAttachmentWhenInsertFails() {
	content := strings.NewReader("pdf-bytes")
	s.attachments.On("Save", s.ctx, mock.Anything, content).Return("/uploads/tickets/abc.pdf", nil)
	s.attachments.On("Delete", s.ctx, "/uploads/tickets/abc.pdf").Return(nil)
	s.mockTicket.On("Create", s.ctx, "tenant-1", mock.Anything).Return(errors.New("insert failed"))

	_, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{Subject: "s", Description: "d"},
		&dto.AttachmentUpload{Filename: "invoice.pdf", Size: 9, Content: content})

	s.Error(err)
	s.attachments.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestCreate_RejectsAttachment() {
	tests := []struct {
		name   string
		upload dto.AttachmentUpload
	}{
		{"disallowed extension", dto.AttachmentUpload{Filename: "run.exe", Size: 10}},
		{"no extension", dto.AttachmentUpload{Filename: "README", Size: 10}},
		{"too large", dto.AttachmentUpload{Filename: "big.pdf", Size: 10*1024*1024 + 1}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			upload := tt.upload
			_, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{Subject: "s", Description: "d"}, &upload)
			s.ErrorIs(err, ErrValidation)
		})
	}
	s.attachments.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TicketServiceTestSuite) TestCreate_InvalidPriority() {
	_, err := s.service.Create(s.ctx, s.client, dto.CreateTicketRequest{Subject: "s", Description: "d", Priority: "urgent"}, nil)
	s.ErrorIs(err, ErrValidation)
}

func (s *TicketServiceTestSuite) TestUpdate_ClientCannotChangeStatus() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)

	_, err := s.service.Update(s.ctx, s.client, "t1", dto.UpdateTicketRequest{Status: "closed"})

	s.ErrorIs(err, ErrForbidden)
	s.mockTicket.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TicketServiceTestSuite) TestUpdate_ClientEditsOwnSubject() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)
	s.mockTicket.On("Update", s.ctx, "tenant-1", "t1", mock.MatchedBy(func(p domain.TicketPatch) bool {
		return p.Subject != nil && *p.Subject == "New subject" && p.Status == nil && p.Description == nil
	})).Return(nil)

	_, err := s.service.Update(s.ctx, s.client, "t1", dto.UpdateTicketRequest{Subject: "New subject"})

	s.Require().NoError(err)
	s.mockTicket.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestUpdate_AgentAssignsAndCloses() {
	s.service.SetEventPublisher(s.events)

	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)
	s.mockUser.On("GetByID", s.ctx, "tenant-1", "agent-2").Return(&domain.User{
		RecordHeader: domain.RecordHeader{ID: "agent-2", TenantID: "tenant-1"},
		Role:         domain.RoleAgent,
		IsActive:     true,
	}, nil)
	s.mockTicket.On("Update", s.ctx, "tenant-1", "t1", mock.MatchedBy(func(p domain.TicketPatch) bool {
		return p.Status != nil && *p.Status == domain.TicketStatusClosed &&
			p.AssignedAgentID != nil && *p.AssignedAgentID == "agent-2"
	})).Return(nil)
	s.events.On("Publish", s.ctx, mock.Anything).Return(errors.New("redis down"))

	_, err := s.service.Update(s.ctx, s.agent, "t1", dto.UpdateTicketRequest{Status: "closed", AssignedAgentID: "agent-2"})

	s.Require().NoError(err, "a failed broadcast must not fail the update")
	s.mockTicket.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestUpdate_AssigneeMustBeActiveStaff() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)
	s.mockUser.On("GetByID", s.ctx, "tenant-1", "client-2").Return(&domain.User{
		RecordHeader: domain.RecordHeader{ID: "client-2", TenantID: "tenant-1"},
		Role:         domain.RoleClient,
		IsActive:     true,
	}, nil)
	s.mockUser.On("GetByID", s.ctx, "tenant-1", "other-tenant-agent").Return(nil, repository.ErrNotFound)

	_, err := s.service.Update(s.ctx, s.agent, "t1", dto.UpdateTicketRequest{AssignedAgentID: "client-2"})
	s.ErrorIs(err, ErrValidation)

	_, err = s.service.Update(s.ctx, s.agent, "t1", dto.UpdateTicketRequest{AssignedAgentID: "other-tenant-agent"})
	s.ErrorIs(err, ErrValidation)
}

func (s *TicketServiceTestSuite) TestUpdate_EmptyRequestChangesNothing() {
	s.mockTicket.On("GetByID", s.ctx, "tenant-1", "t1").Return(s.view("t1", "client-1"), nil)

	resp, err := s.service.Update(s.ctx, s.agent, "t1", dto.UpdateTicketRequest{Subject: "   "})

	s.Require().NoError(err)
	s.Equal("Printer jam", resp.Subject)
	s.mockTicket.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TicketServiceTestSuite) TestSearch_Disabled() {
	s.mockRepo.On("Search").Return(nil)

	_, err := s.service.Search(s.ctx, s.agent, dto.TicketSearchRequest{Query: "printer"})
	s.ErrorIs(err, ErrSearchDisabled)
}

func (s *TicketServiceTestSuite) TestSearch_ClientScopedToOwnTickets() {
	search := new(mocks.TicketSearchRepository)
	s.mockRepo.On("Search").Return(search)
	search.On("Search", s.ctx, "tenant-1", domain.TicketSearchQuery{Text: "printer", ClientID: "client-1", Size: defaultSearchSize}).
		Return([]domain.TicketDocument{{ID: "t1", Number: "TKT-000001", ClientName: "John Smith"}}, nil)

	results, err := s.service.Search(s.ctx, s.client, dto.TicketSearchRequest{Query: " printer "})

	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("TKT-000001", results[0].Number)
	search.AssertExpectations(s.T())
}

func (s *TicketServiceTestSuite) TestSearch_RequiresQuery() {
	s.mockRepo.On("Search").Return(new(mocks.TicketSearchRepository))

	_, err := s.service.Search(s.ctx, s.agent, dto.TicketSearchRequest{})
	s.ErrorIs(err, ErrValidation)
}

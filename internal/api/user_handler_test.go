package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/service"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, id auth.Identity) ([]dto.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Roles(ctx context.Context, id auth.Identity) ([]dto.RoleGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RoleGroup), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, id auth.Identity) (*dto.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id auth.Identity, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Agents(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.StaffResponse), args.Error(1)
}

func (m *MockUserService) Consultants(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.StaffResponse), args.Error(1)
}

type UserHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockUserService
}

func (s *UserHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockService = new(MockUserService)
	h := NewUserHandler(s.mockService, logger.NewNop())

	s.router.GET("/users", withIdentity(adminIdentity, h.ListUsers))
	s.router.GET("/users/roles", withIdentity(adminIdentity, h.ListRoles))
	s.router.GET("/users/me", withIdentity(clientIdentity, h.Me))
	s.router.GET("/users/agents", withIdentity(clientIdentity, h.ListAgents))
	s.router.GET("/users/consultants", withIdentity(clientIdentity, h.ListConsultants))
	s.router.GET("/users/:id", withIdentity(clientIdentity, h.GetUser))
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockService.AssertExpectations(s.T())
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestListUsers() {
	s.mockService.On("List", mock.Anything, adminIdentity).Return([]dto.UserResponse{
		{ID: testUserID, Email: "client@example.com", Role: "client", TenantName: "SpecCon"},
	}, nil)

	w := doJSON(s.router, http.MethodGet, "/users", nil)

	s.Equal(http.StatusOK, w.Code)
	var users []dto.UserResponse
	decodeBody(s.T(), w, &users)
	s.Require().Len(users, 1)
	s.Equal("SpecCon", users[0].TenantName)
}

func (s *UserHandlerTestSuite) TestListRoles() {
	s.mockService.On("Roles", mock.Anything, adminIdentity).Return([]dto.RoleGroup{
		{Role: "admin", Count: 1, Users: []dto.UserSummary{{ID: adminIdentity.UserID, Name: "Ada Admin"}}},
	}, nil)

	w := doJSON(s.router, http.MethodGet, "/users/roles", nil)

	s.Equal(http.StatusOK, w.Code)
	var groups []dto.RoleGroup
	decodeBody(s.T(), w, &groups)
	s.Require().Len(groups, 1)
	s.Equal(1, groups[0].Count)
}

func (s *UserHandlerTestSuite) TestMe() {
	s.mockService.On("Me", mock.Anything, clientIdentity).Return(&dto.UserResponse{ID: testUserID, FullName: "John Doe"}, nil)

	w := doJSON(s.router, http.MethodGet, "/users/me", nil)

	s.Equal(http.StatusOK, w.Code)
	var user dto.UserResponse
	decodeBody(s.T(), w, &user)
	s.Equal("John Doe", user.FullName)
}

func (s *UserHandlerTestSuite) TestGetUser_Forbidden() {
	s.mockService.On("Get", mock.Anything, clientIdentity, "other").Return(nil, service.ErrForbidden)

	w := doJSON(s.router, http.MethodGet, "/users/other", nil)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *UserHandlerTestSuite) TestListConsultants() {
	s.mockService.On("Consultants", mock.Anything, clientIdentity).Return([]dto.StaffResponse{
		{ID: "c-1", FullName: "Connie Consultant", Specialization: "General Consultant"},
	}, nil)

	w := doJSON(s.router, http.MethodGet, "/users/consultants", nil)

	s.Equal(http.StatusOK, w.Code)
	var staff []dto.StaffResponse
	decodeBody(s.T(), w, &staff)
	s.Require().Len(staff, 1)
	s.Equal("General Consultant", staff[0].Specialization)
}

func (s *UserHandlerTestSuite) TestListAgents_Empty() {
	s.mockService.On("Agents", mock.Anything, clientIdentity).Return([]dto.StaffResponse{}, nil)

	w := doJSON(s.router, http.MethodGet, "/users/agents", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq("[]", w.Body.String())
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/middleware"
	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type jobServiceMock struct {
	createResp   *models.Job
	createErr    error
	browseResp   []models.Job
	browseTotal  int
	browseErr    error
	mineResp     []models.Job
	cancelErr    error
	lastFilter   models.JobFilter
	browseCalled bool
	cancelCalled bool
}

func (m *jobServiceMock) Create(ctx context.Context, guardianID string, req models.CreateJobRequest) (*models.Job, error) {
	return m.createResp, m.createErr
}

func (m *jobServiceMock) BrowseOpen(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	m.browseCalled = true
	m.lastFilter = filter
	return m.browseResp, m.browseTotal, m.browseErr
}

func (m *jobServiceMock) MyJobs(ctx context.Context, guardianID string) ([]models.Job, error) {
	return m.mineResp, nil
}

func (m *jobServiceMock) Cancel(ctx context.Context, guardianID, jobID string) error {
	m.cancelCalled = true
	return m.cancelErr
}

type hiringServiceMock struct {
	hireResp      *models.Job
	hireErr       error
	applicants    []models.ApplicantDetail
	applicantsErr error
	hireCalled    bool
	lastTeacherID string
}

func (m *hiringServiceMock) ConfirmHiring(ctx context.Context, guardianID, jobID, teacherID string) (*models.Job, error) {
	m.hireCalled = true
	m.lastTeacherID = teacherID
	return m.hireResp, m.hireErr
}

func (m *hiringServiceMock) ViewApplicants(ctx context.Context, guardianID, jobID string) ([]models.ApplicantDetail, error) {
	return m.applicants, m.applicantsErr
}

func guardianClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "g1", Role: models.RoleGuardian}
}

func TestJobHandlerBrowse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &jobServiceMock{browseResp: []models.Job{{ID: "j1"}}, browseTotal: 1}
	handler := NewJobHandler(mockSvc, &hiringServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/jobs?city=Dhaka&subject=Math&page=2", nil)
	c.Request = req

	handler.Browse(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.browseCalled)
	assert.Equal(t, "Dhaka", mockSvc.lastFilter.City)
	assert.Equal(t, "Math", mockSvc.lastFilter.Subject)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 20, mockSvc.lastFilter.PageSize)
}

func TestJobHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &jobServiceMock{createResp: &models.Job{ID: "j1", GuardianID: "g1"}}
	handler := NewJobHandler(mockSvc, &hiringServiceMock{}, nil)

	payload, _ := json.Marshal(models.CreateJobRequest{Title: "Math tutor", Subject: "Math", Location: "Banani", City: "Dhaka", Salary: 8000})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestJobHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewJobHandler(&jobServiceMock{}, &hiringServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(`{"title":"broken`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlerCreateMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewJobHandler(&jobServiceMock{}, &hiringServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandlerCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &jobServiceMock{}
	handler := NewJobHandler(mockSvc, &hiringServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/jobs/j1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "j1"}}
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Cancel(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.cancelCalled)
}

func TestJobHandlerCancelNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &jobServiceMock{cancelErr: appErrors.ErrJobNotFound}
	handler := NewJobHandler(mockSvc, &hiringServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/jobs/other", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "other"}}
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Cancel(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobHandlerHire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockHiring := &hiringServiceMock{hireResp: &models.Job{ID: "j1", Status: models.JobFilled}}
	handler := NewJobHandler(&jobServiceMock{}, mockHiring, nil)

	payload, _ := json.Marshal(models.ConfirmHiringRequest{TeacherID: "t1"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs/j1/hire", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "j1"}}
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Hire(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockHiring.hireCalled)
	assert.Equal(t, "t1", mockHiring.lastTeacherID)
}

func TestJobHandlerHireConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockHiring := &hiringServiceMock{hireErr: appErrors.ErrJobNotOpen}
	handler := NewJobHandler(&jobServiceMock{}, mockHiring, nil)

	payload, _ := json.Marshal(models.ConfirmHiringRequest{TeacherID: "t1"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs/j1/hire", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "j1"}}
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Hire(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestJobHandlerApplicants(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockHiring := &hiringServiceMock{applicants: []models.ApplicantDetail{{ApplicationID: "a1"}}}
	handler := NewJobHandler(&jobServiceMock{}, mockHiring, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/jobs/j1/applicants", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "j1"}}
	c.Set(middleware.ContextUserKey, guardianClaims())

	handler.Applicants(c)
	require.Equal(t, http.StatusOK, w.Code)
}

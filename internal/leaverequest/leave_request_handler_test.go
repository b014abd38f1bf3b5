package leaverequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leavehub/internal/identity"
	"leavehub/internal/leaverequest"
	leaverequesterrors "leavehub/internal/leaverequest/errors"
	"leavehub/internal/scope"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveRequestService struct {
	createFn     func(ctx context.Context, caller scope.Caller, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	getByIDFn    func(ctx context.Context, caller scope.Caller, id string) (leaverequest.LeaveRequestResponse, error)
	approveFn    func(ctx context.Context, caller scope.Caller, id string, comments *string) (leaverequest.LeaveRequestResponse, error)
	rejectFn     func(ctx context.Context, caller scope.Caller, id, rejectionReason string) (leaverequest.LeaveRequestResponse, error)
	getPendingFn func(ctx context.Context, approverID *string) ([]leaverequest.LeaveRequestResponse, error)
	bulkUpdateFn func(ctx context.Context, caller scope.Caller, req leaverequest.BulkUpdateRequest) (leaverequest.BulkUpdateResponse, error)
}

func (f *fakeLeaveRequestService) Create(ctx context.Context, caller scope.Caller, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createFn(ctx, caller, req)
}
func (f *fakeLeaveRequestService) GetByID(ctx context.Context, caller scope.Caller, id string) (leaverequest.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, caller, id)
}
func (f *fakeLeaveRequestService) GetByUser(ctx context.Context, userID string) ([]leaverequest.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeLeaveRequestService) GetAll(ctx context.Context, caller scope.Caller, filters leaverequest.Filters) ([]leaverequest.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeLeaveRequestService) GetPending(ctx context.Context, approverID *string) ([]leaverequest.LeaveRequestResponse, error) {
	if f.getPendingFn != nil {
		return f.getPendingFn(ctx, approverID)
	}
	return nil, nil
}
func (f *fakeLeaveRequestService) GetTeam(ctx context.Context, managerID string) ([]leaverequest.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeLeaveRequestService) GetActive(ctx context.Context, userID string) ([]leaverequest.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeLeaveRequestService) MonthlyApprovedForManager(ctx context.Context, managerID string, start, end time.Time) ([]leaverequest.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeLeaveRequestService) Approve(ctx context.Context, caller scope.Caller, id string, comments *string) (leaverequest.LeaveRequestResponse, error) {
	return f.approveFn(ctx, caller, id, comments)
}
func (f *fakeLeaveRequestService) Reject(ctx context.Context, caller scope.Caller, id, rejectionReason string) (leaverequest.LeaveRequestResponse, error) {
	return f.rejectFn(ctx, caller, id, rejectionReason)
}
func (f *fakeLeaveRequestService) Cancel(ctx context.Context, caller scope.Caller, id string) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) SoftDelete(ctx context.Context, caller scope.Caller, id string) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) Restore(ctx context.Context, caller scope.Caller, id string) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) BulkUpdate(ctx context.Context, caller scope.Caller, req leaverequest.BulkUpdateRequest) (leaverequest.BulkUpdateResponse, error) {
	return f.bulkUpdateFn(ctx, caller, req)
}

func TestLeaveRequestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()

		svc := &fakeLeaveRequestService{
			createFn: func(ctx context.Context, caller scope.Caller, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, userID, caller.ID)
				assert.Equal(t, identity.RoleEmployee, caller.Role)
				return leaverequest.LeaveRequestResponse{
					ID:        uuid.New().String(),
					UserID:    req.UserID,
					LeaveType: req.LeaveType,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					TotalDays: 3,
					Status:    leaverequest.StatusPending,
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"user_id":"` + userID + `","leave_type":"VACATION","start_date":"2027-03-01","end_date":"2027-03-03","reason":"Trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", userID)
		c.Set("role", identity.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leaverequest.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, leaverequest.StatusPending, got.Status)
	})

	t.Run("negative missing body fields", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})
}

func TestLeaveRequestHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success empty body", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, caller scope.Caller, gotID string, comments *string) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Nil(t, comments)
				return leaverequest.LeaveRequestResponse{ID: gotID, Status: leaverequest.StatusApproved}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/"+id+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", identity.RoleHR)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative conflict on lost race", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, caller scope.Caller, id string, comments *string) (leaverequest.LeaveRequestResponse, error) {
				return leaverequest.LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyFinalized
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/"+id+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("user_id", uuid.New().String())
		c.Set("role", identity.RoleHR)

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveRequestHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative missing reason", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/"+id+"/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_ListPending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("supervisor queue is scoped to them", func(t *testing.T) {
		supervisorID := uuid.New().String()
		svc := &fakeLeaveRequestService{
			getPendingFn: func(ctx context.Context, approverID *string) ([]leaverequest.LeaveRequestResponse, error) {
				if assert.NotNil(t, approverID) {
					assert.Equal(t, supervisorID, *approverID)
				}
				return nil, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/pending", nil)
		c.Set("user_id", supervisorID)
		c.Set("role", identity.RoleSupervisor)

		h.ListPending(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("hr sees the whole queue", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			getPendingFn: func(ctx context.Context, approverID *string) ([]leaverequest.LeaveRequestResponse, error) {
				assert.Nil(t, approverID)
				return nil, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests/pending", nil)
		c.Set("user_id", uuid.New().String())
		c.Set("role", identity.RoleHR)

		h.ListPending(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveRequestHandler_BulkUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative reject patch without reason", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"ids":["` + uuid.New().String() + `"],"patch":{"status":"REJECTED"}}`
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/bulk", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.BulkUpdate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("all items failed returns unprocessable", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			bulkUpdateFn: func(ctx context.Context, caller scope.Caller, req leaverequest.BulkUpdateRequest) (leaverequest.BulkUpdateResponse, error) {
				return leaverequest.BulkUpdateResponse{
					Failed: []leaverequest.BulkItemFailure{{ID: req.IDs[0], Error: "invalid leave request status transition"}},
				}, nil
			},
		}

		h := leaverequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"ids":["` + uuid.New().String() + `"],"patch":{"status":"APPROVED"}}`
		c.Request = httptest.NewRequest(http.MethodPatch, "/leave-requests/bulk", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", identity.RoleHR)

		h.BulkUpdate(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

package controller

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/project/lending/internal/controller/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	errInternal = errors.New("connection reset by peer")
	json        = jsoniter.ConfigCompatibleWithStandardLibrary
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type useCaseMocks struct {
	books   *mocks.MockBooksUseCase
	members *mocks.MockMembersUseCase
	loans   *mocks.MockLoansUseCase
	pinger  *mocks.MockPinger
}

func initControllerTest(t *testing.T) (*gin.Engine, useCaseMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := useCaseMocks{
		books:   mocks.NewMockBooksUseCase(ctrl),
		members: mocks.NewMockMembersUseCase(ctrl),
		loans:   mocks.NewMockLoansUseCase(ctrl),
		pinger:  mocks.NewMockPinger(ctrl),
	}

	router := gin.New()
	New(zap.NewNop(), m.books, m.members, m.loans, m.pinger).RegisterRoutes(router)
	return router, m
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("can not decode error body %q: %s", rec.Body.String(), err)
	}
	return body.Error
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, status, rec.Body.String())
	}
}

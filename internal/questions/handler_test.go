package questions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

type fakeStore struct {
	Store
	created *Question
	answer  struct {
		answer string
		status string
	}
	setAnswerErr error
}

func (f *fakeStore) Create(ctx context.Context, q *Question) error {
	q.CreatedAt = time.Now().UTC()
	f.created = q
	return nil
}

func (f *fakeStore) SetAnswer(ctx context.Context, id, answer, status string) (*Question, error) {
	if f.setAnswerErr != nil {
		return nil, f.setAnswerErr
	}
	f.answer.answer = answer
	f.answer.status = status
	return &Question{Question: "q", Answer: answer, Status: status}, nil
}

type fakeAppender struct {
	called chan struct{}
}

func (f *fakeAppender) AppendQuestion(ctx context.Context, fullName, phone, email, question string, createdAt time.Time) error {
	close(f.called)
	return nil
}

func TestCreateValidation(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, logging.New("error"))

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"phone":"0912345678","question":"Hỏi về lịch khám"}`},
		{"missing question", `{"fullName":"Nguyễn Văn A","phone":"0912345678"}`},
		{"bad phone", `{"fullName":"Nguyễn Văn A","phone":"12ab","question":"Hỏi về lịch khám"}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateStoresPendingAndMirrors(t *testing.T) {
	store := &fakeStore{}
	appender := &fakeAppender{called: make(chan struct{})}
	h := NewHandler(store, appender, logging.New("error"))

	body := `{"fullName":"Nguyễn Văn A","phone":"0912345678","question":"Phòng khám có làm chủ nhật không?","status":"closed","answer":"sneaky"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.created)
	// Client-supplied status and answer are discarded.
	assert.Equal(t, StatusPending, store.created.Status)
	assert.Empty(t, store.created.Answer)

	select {
	case <-appender.called:
	case <-time.After(2 * time.Second):
		t.Fatal("sheet append was not called")
	}
}

func TestCreateWithoutAppender(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, logging.New("error"))

	body := `{"fullName":"Nguyễn Văn A","phone":"0912345678","question":"Có nhận bảo hiểm không?"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAnswerDefaultsToAnswered(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPatch, "/abc", strings.NewReader(`{"answer":"Có, làm việc chủ nhật buổi sáng."}`))
	rec := httptest.NewRecorder()
	h.Answer(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusAnswered, store.answer.status)
}

func TestAnswerRejectsUnknownStatus(t *testing.T) {
	h := NewHandler(&fakeStore{}, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPatch, "/abc", strings.NewReader(`{"answer":"ok","status":"archived"}`))
	rec := httptest.NewRecorder()
	h.Answer(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnswerNotFound(t *testing.T) {
	h := NewHandler(&fakeStore{setAnswerErr: ErrNotFound}, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPatch, "/abc", strings.NewReader(`{"answer":"ok"}`))
	rec := httptest.NewRecorder()
	h.Answer(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

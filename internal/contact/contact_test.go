package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func validInput() Input {
	return Input{
		Name:     "Sara",
		Email:    "sara@example.com",
		Subject:  "Hello",
		Message:  "I would like a custom template.",
		WhatsApp: "+92 300 0000000",
	}
}

func TestEmailJSMailerPostsTemplateParams(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	m := NewEmailJSMailer(srv.URL, "svc", "tpl", "pub")
	msg, err := normalize(validInput())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got.ServiceID != "svc" || got.TemplateID != "tpl" || got.UserID != "pub" {
		t.Fatalf("unexpected ids %+v", got)
	}
	if got.TemplateParams["from_email"] != "sara@example.com" || got.TemplateParams["message"] != msg.Message {
		t.Fatalf("unexpected params %+v", got.TemplateParams)
	}
}

func TestEmailJSMailerErrors(t *testing.T) {
	if err := (&EmailJSMailer{}).Send(context.Background(), Message{}); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()
	m := NewEmailJSMailer(srv.URL, "svc", "tpl", "bad")
	if err := m.Send(context.Background(), Message{Email: "a@b.c"}); err == nil {
		t.Fatalf("expected error for 400 response")
	}
}

type failingMailer struct{}

func (failingMailer) Send(context.Context, Message) error { return errors.New("smtp down") }

func TestSubmitStoresEvenWhenDeliveryFails(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Mailer: failingMailer{}}

	receipt, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Delivered || receipt.ID == "" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if msgs := repo.Messages(); len(msgs) != 1 || msgs[0].ID != receipt.ID {
		t.Fatalf("expected stored message, got %+v", msgs)
	}
}

func TestSubmitRejectsInvalidEmail(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	in := validInput()
	in.Email = "nope"
	if _, err := svc.Submit(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestContactHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	router := gin.New()
	svc := &Service{Repo: NewMemoryRepo(), Mailer: NewEmailJSMailer(srv.URL, "svc", "tpl", "pub")}
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	post := func(body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", &buf)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	resp := post(validInput())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var receipt Receipt
	_ = json.Unmarshal(resp.Body.Bytes(), &receipt)
	if !receipt.Delivered {
		t.Fatalf("expected delivered receipt, got %s", resp.Body.String())
	}

	resp = post(map[string]string{"name": "x"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs("c1", "Sara", "sara@example.com", "Hi", "Body", nil, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	msg := Message{ID: "c1", Name: "Sara", Email: "sara@example.com", Subject: "Hi", Message: "Body", CreatedAt: at}
	if err := repo.Create(context.Background(), msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

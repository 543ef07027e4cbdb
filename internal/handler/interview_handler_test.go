package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/dto"
	"github.com/voicehire/interview-api/internal/handler"
	"github.com/voicehire/interview-api/internal/interview"
	"github.com/voicehire/interview-api/internal/service"
)

type stubInterviewService struct {
	startResponse    dto.StartTestResponse
	startErr         error
	submitResponse   dto.SubmitAnswerResponse
	submitErr        error
	completeResponse dto.CompleteTestResponse
	completeErr      error
	transcription    dto.TranscribeResponse
	transcribeErr    error
	lastFilename     string
}

func (s *stubInterviewService) StartTest(_ context.Context, _ interview.Caller, _ dto.StartTestRequest) (dto.StartTestResponse, error) {
	return s.startResponse, s.startErr
}

func (s *stubInterviewService) SubmitAnswer(_ context.Context, _ interview.Caller, _ dto.SubmitAnswerRequest) (dto.SubmitAnswerResponse, error) {
	return s.submitResponse, s.submitErr
}

func (s *stubInterviewService) CompleteTest(_ context.Context, _ interview.Caller, _ dto.CompleteTestRequest) (dto.CompleteTestResponse, error) {
	return s.completeResponse, s.completeErr
}

func (s *stubInterviewService) Transcribe(_ context.Context, filename string, audio io.Reader) (dto.TranscribeResponse, error) {
	s.lastFilename = filename
	_, _ = io.Copy(io.Discard, audio)
	return s.transcription, s.transcribeErr
}

func interviewApp(svc service.InterviewService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/candidate", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(9))
		c.Locals("user_role", "candidate")
		return c.Next()
	})
	handler.NewInterviewHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestInterviewHandlerStart(t *testing.T) {
	svc := &stubInterviewService{
		startResponse: dto.StartTestResponse{
			SessionID:      "9-1-abc",
			TestTitle:      "React Fundamentals",
			TotalQuestions: 5,
			FirstQuestion:  "What is JSX?",
		},
	}
	app := interviewApp(svc)

	resp := postJSON(t, app, "/api/v1/candidate/tests/start", dto.StartTestRequest{TestID: 1})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestInterviewHandlerStartNotAssigned(t *testing.T) {
	app := interviewApp(&stubInterviewService{startErr: service.ErrNotAssigned})

	resp := postJSON(t, app, "/api/v1/candidate/tests/start", dto.StartTestRequest{TestID: 1})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestInterviewHandlerSubmitUnknownSession(t *testing.T) {
	app := interviewApp(&stubInterviewService{submitErr: interview.ErrSessionNotFound})

	resp := postJSON(t, app, "/api/v1/candidate/tests/submit-answer", dto.SubmitAnswerRequest{
		SessionID: "missing",
		Answer:    "something",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInterviewHandlerCompleteConflict(t *testing.T) {
	app := interviewApp(&stubInterviewService{completeErr: interview.ErrInvalidSessionState})

	resp := postJSON(t, app, "/api/v1/candidate/tests/complete", dto.CompleteTestRequest{SessionID: "s"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func multipartAudio(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func wavPayload() []byte {
	payload := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	payload = append(payload, []byte("WAVEfmt ")...)
	return append(payload, make([]byte, 64)...)
}

func TestInterviewHandlerTranscribe(t *testing.T) {
	svc := &stubInterviewService{transcription: dto.TranscribeResponse{Transcription: "hello world"}}
	app := interviewApp(svc)

	body, contentType := multipartAudio(t, "audio", "answer.wav", wavPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidate/transcribe", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "answer.wav", svc.lastFilename)
}

func TestInterviewHandlerTranscribeRejectsNonAudio(t *testing.T) {
	app := interviewApp(&stubInterviewService{})

	body, contentType := multipartAudio(t, "audio", "notes.txt", []byte("plain text, not audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidate/transcribe", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandlerTranscribeRequiresFile(t *testing.T) {
	app := interviewApp(&stubInterviewService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidate/transcribe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

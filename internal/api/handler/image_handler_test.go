package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"testing"

	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

type stubImageService struct {
	uploadFn func(ctx context.Context, files []ports.UploadFile) (map[string]string, error)
	deleteFn func(ctx context.Context, paths []string) error
}

func (s *stubImageService) Upload(ctx context.Context, files []ports.UploadFile) (map[string]string, error) {
	return s.uploadFn(ctx, files)
}

func (s *stubImageService) Delete(ctx context.Context, paths []string) error {
	return s.deleteFn(ctx, paths)
}

func multipartCall(t *testing.T, files map[string]string) call {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".png")
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return call{method: http.MethodPost, target: "/images/upload", body: &buf, ctype: w.FormDataContentType()}
}

func TestImageHandler_Upload(t *testing.T) {
	stub := &stubImageService{
		uploadFn: func(ctx context.Context, files []ports.UploadFile) (map[string]string, error) {
			fields := make([]string, 0, len(files))
			out := make(map[string]string, len(files))
			for _, f := range files {
				body, err := io.ReadAll(f.Body)
				if err != nil {
					t.Fatalf("read %s: %v", f.Field, err)
				}
				if int64(len(body)) != f.Size {
					t.Fatalf("%s: size %d does not match body %d", f.Field, f.Size, len(body))
				}
				fields = append(fields, f.Field)
				out[f.Field] = "https://cdn.example.com/" + f.Filename
			}
			sort.Strings(fields)
			if len(fields) != 2 || fields[0] != "coverImage" || fields[1] != "picture" {
				t.Fatalf("unexpected fields %v", fields)
			}
			return out, nil
		},
	}
	h := NewImageHandler(stub)

	in := multipartCall(t, map[string]string{"picture": "png-bytes", "coverImage": "more-png-bytes"})
	rec, err := serve(t, h.Upload, in.as(managerClaim))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	decode(t, rec, &resp)
	if resp["picture"] != "https://cdn.example.com/picture.png" {
		t.Fatalf("unexpected urls: %+v", resp)
	}
}

func TestImageHandler_Upload_NotMultipart(t *testing.T) {
	h := NewImageHandler(&stubImageService{})

	_, err := serve(t, h.Upload, jsonCall(http.MethodPost, "/images/upload", `{}`).as(managerClaim))
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestImageHandler_Upload_ServiceRejects(t *testing.T) {
	stub := &stubImageService{
		uploadFn: func(ctx context.Context, files []ports.UploadFile) (map[string]string, error) {
			return nil, domain.ErrUnexpectedImage
		},
	}
	h := NewImageHandler(stub)

	_, err := serve(t, h.Upload, multipartCall(t, map[string]string{"avatar": "x"}).as(managerClaim))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestImageHandler_Delete(t *testing.T) {
	var got []string
	stub := &stubImageService{
		deleteFn: func(ctx context.Context, paths []string) error {
			got = paths
			return nil
		},
	}
	h := NewImageHandler(stub)

	rec, err := serve(t, h.Delete, jsonCall(http.MethodPost, "/images",
		`{"paths":["https://cdn.example.com/a.png","b.jpg"]}`).as(managerClaim))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(got) != 2 || got[1] != "b.jpg" {
		t.Fatalf("expected 200 with both paths, got %d %v", rec.Code, got)
	}

	_, err = serve(t, h.Delete, jsonCall(http.MethodPost, "/images", `{"paths":[]}`).as(managerClaim))
	if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

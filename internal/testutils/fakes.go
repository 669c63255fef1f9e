package testutils

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"Recipe-Box-Backend/internal/utils/storage"

	"github.com/stretchr/testify/require"
)

// MemoryStorage is an in-memory storage.Storage that records uploads and
// deletions.
type MemoryStorage struct {
	mu        sync.Mutex
	Objects   map[string]int64
	Deleted   []string
	FailAfter int
	uploads   int
}

var ErrUploadFailed = errors.New("upload failed")

var _ storage.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: map[string]int64{}, FailAfter: -1}
}

func (m *MemoryStorage) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAfter >= 0 && m.uploads >= m.FailAfter {
		return "", ErrUploadFailed
	}
	m.uploads++

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) > 0 {
		ok := false
		for _, a := range allowed {
			ok = ok || a == ext
		}
		if !ok {
			return "", storage.ErrFileTypeNotAllowed
		}
	}

	key := folder + "/" + fileName + ext
	m.Objects[key] = file.Size
	return key, nil
}

func (m *MemoryStorage) DeleteFile(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Objects, objectKey)
	m.Deleted = append(m.Deleted, objectKey)
	return nil
}

func (m *MemoryStorage) GetPublicLinkKey(objectKey string) string {
	return "http://files.test/" + objectKey
}

func (m *MemoryStorage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "http://files.test/")
}

func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

func (f *FakeMailer) SendMail(toEmail string, subject string, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMail{To: toEmail, Subject: subject, Body: body})
	return nil
}

// FileHeader builds a real multipart.FileHeader holding content.
func FileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

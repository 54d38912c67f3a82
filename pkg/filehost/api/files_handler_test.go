package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplehost/filehost/pkg/filehost"
	"github.com/simplehost/filehost/pkg/filehost/api"
	"github.com/simplehost/filehost/pkg/filehost/repo/memory"
	memorystorage "github.com/simplehost/filehost/pkg/filehost/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, err := filehost.New(
		filehost.WithRepository(memory.New()),
		filehost.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/files", api.NewFilesHandler(svc).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func uploadMultipart(t *testing.T, server *httptest.Server, fieldName, fileName, contentType string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/api/files/upload", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func uploadFile(t *testing.T, server *httptest.Server, fileName, contentType string, content []byte) *filehost.FileRecord {
	t.Helper()

	resp := uploadMultipart(t, server, "file", fileName, contentType, content)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Message string               `json:"message"`
		File    *filehost.FileRecord `json:"file"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotNil(t, result.File)
	return result.File
}

func TestUploadHandler(t *testing.T) {
	server := newTestServer(t)

	record := uploadFile(t, server, "hello.txt", "text/plain", []byte("hello"))
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "hello.txt", record.OriginalName)
	assert.Equal(t, int64(5), record.SizeBytes)
}

func TestUploadHandlerNoFile(t *testing.T) {
	server := newTestServer(t)

	t.Run("wrong field name", func(t *testing.T) {
		resp := uploadMultipart(t, server, "attachment", "x.txt", "text/plain", []byte("x"))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not multipart", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/files/upload", "application/json", bytes.NewReader([]byte("{}")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListHandler(t *testing.T) {
	server := newTestServer(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/files/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(body))
	})

	t.Run("lists uploaded files", func(t *testing.T) {
		uploadFile(t, server, "a.txt", "text/plain", []byte("a"))
		uploadFile(t, server, "b.txt", "text/plain", []byte("b"))

		resp, err := http.Get(server.URL + "/api/files/")
		require.NoError(t, err)
		defer resp.Body.Close()

		var records []*filehost.FileRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
		assert.Len(t, records, 2)
	})
}

func TestDownloadHandler(t *testing.T) {
	server := newTestServer(t)

	content := []byte("download me")
	record := uploadFile(t, server, "dl.txt", "text/plain", content)

	resp, err := http.Get(server.URL + "/api/files/" + record.ID.String() + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment`)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "dl.txt")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestDownloadHandlerErrors(t *testing.T) {
	server := newTestServer(t)

	t.Run("unknown id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/files/" + uuid.NewString() + "/download")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/files/not-a-uuid/download")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestViewHandler(t *testing.T) {
	server := newTestServer(t)

	t.Run("text served with charset", func(t *testing.T) {
		content := []byte("line one\nline two\n")
		record := uploadFile(t, server, "view.txt", "text/plain", content)

		resp, err := http.Get(server.URL + "/api/files/" + record.ID.String() + "/view")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, content, body)
	})

	t.Run("image served raw with length", func(t *testing.T) {
		content := []byte{0x89, 'P', 'N', 'G', 9, 9}
		record := uploadFile(t, server, "pic.png", "image/png", content)

		resp, err := http.Get(server.URL + "/api/files/" + record.ID.String() + "/view")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, "6", resp.Header.Get("Content-Length"))
	})

	t.Run("non-previewable type refused", func(t *testing.T) {
		record := uploadFile(t, server, "data.xyz", "application/x-foo", []byte{1, 2, 3})

		resp, err := http.Get(server.URL + "/api/files/" + record.ID.String() + "/view")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteHandler(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{}

	record := uploadFile(t, server, "temp.txt", "text/plain", []byte("temp"))

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/files/"+record.ID.String(), nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second delete is a 404, and so is a download
	resp, err = client.Do(req.Clone(req.Context()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	getResp, err := http.Get(server.URL + "/api/files/" + record.ID.String() + "/download")
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

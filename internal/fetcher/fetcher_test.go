package fetcher_test

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MichalMitros/listing-migrator/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userAgent   = "listing-migrator/test"
	image       = "\xff\xd8\xff\xe0fake-jpeg"
	endpoint    = "/images/g/abc/s-l1600.jpg"
	contentType = "Content-Type"
)

func TestUnitFetchFile(t *testing.T) {
	wantHeaders := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "image/*",
		"Accept-Encoding": "gzip",
	}

	tests := map[string]struct {
		serverHandler http.Handler
		wantBody      string
		wantErr       error
	}{
		"ok jpeg": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "image/jpeg")
				wrt.Write([]byte(image))
			}),
			wantBody: image,
		},
		"ok binary": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				wrt.Header().Add(contentType, "application/octet-stream")
				wrt.Write([]byte(image))
			}),
			wantBody: image,
		},
		"ok gzip": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "image/png")
				wrt.Header().Add("Content-Encoding", "gzip")
				compressedWrt := gzip.NewWriter(wrt)
				compressedWrt.Write([]byte(image))
				compressedWrt.Close()
			}),
			wantBody: image,
		},
		"bad content type error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				wrt.Header().Add(contentType, "text/html; charset=utf-8")
				wrt.Write([]byte("<html></html>"))
			}),
			wantErr: fetcher.ErrNotImage,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.serverHandler)
			t.Cleanup(func() {
				srv.Close()
			})

			fet := fetcher.NewFetcher(srv.Client(), userAgent)
			resp, err := fet.FetchFile(context.TODO(), srv.URL+endpoint)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, readAndClose(t, resp), "should return correct response")
			}
		})
	}
}

func TestUnitFetchFileStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	fet := fetcher.NewFetcher(srv.Client(), userAgent)
	resp, err := fet.FetchFile(context.TODO(), srv.URL+endpoint)

	var statusErr *fetcher.StatusError
	require.ErrorAs(t, err, &statusErr, "should return status error")
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode, "should keep response status")
	assert.Equal(t, srv.URL+endpoint, statusErr.URL, "should keep image url")
	assert.Nil(t, resp, "shouldn't return body")
}

// readAndClose reads ReadCloser, closes it and returns result as string.
func readAndClose(t *testing.T, reader io.ReadCloser) string {
	t.Helper()

	if !assert.NotNil(t, reader, "reader shouldn't be nil") {
		return ""
	}

	result, err := io.ReadAll(reader)
	if !assert.NoError(t, err, "can't read reader") {
		return ""
	}

	assert.NoError(t, reader.Close(), "can't close reader")

	return string(result)
}

func validateHeaders(t *testing.T, headers http.Header, expected map[string]string) {
	t.Helper()

	for header, expectedValue := range expected {
		assert.Equalf(t, expectedValue, headers.Get(header), "request should contain correct value for header %s", header)
	}
}

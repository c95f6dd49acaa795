package wafengine

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMultipartBody(t *testing.T) (body []byte, boundary string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field, err := w.CreateFormField("comment")
	require.NoError(t, err)
	_, err = field.Write([]byte("<script>alert(1)"))
	require.NoError(t, err)

	file, err := w.CreateFormFile("upload", "shell.php")
	require.NoError(t, err)
	_, err = file.Write([]byte("<?php system($_GET['c']); ?>"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes(), w.Boundary()
}

func TestParseMultipartPairs_FieldAndFilePart(t *testing.T) {
	body, boundary := buildMultipartBody(t)
	pairs := parseMultipartPairs(body, boundary)

	var gotComment, gotFile bool
	for _, p := range pairs {
		if p.Name == "comment" && p.Value == "<script>alert(1)" {
			gotComment = true
		}
		if p.Name == "upload" && p.Value == "shell.php" {
			gotFile = true
		}
	}
	assert.True(t, gotComment, "expected form field pair")
	assert.True(t, gotFile, "expected file part keyed by filename")
}

func TestParseMultipartPairs_EmptyBoundaryFallsBack(t *testing.T) {
	pairs := parseMultipartPairs([]byte("raw body"), "")
	require.Len(t, pairs, 1)
	assert.Equal(t, "raw body", pairs[0].Value)
}

func TestParseMultipartPairs_MalformedBodyReturnsNoPairs(t *testing.T) {
	pairs := parseMultipartPairs([]byte("not multipart data"), "boundary123")
	assert.Empty(t, pairs)
}

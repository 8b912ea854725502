package v1_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/vettalabs/vetta/internal/api/v1"
)

func TestExtractResume(t *testing.T) {
	t.Parallel()

	t.Run("plain_text_resume", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterResumeRoutes(api)

		resp := api.Post("/resumes/extract", map[string]any{
			"file_name": "resume.txt",
			"content":   base64.StdEncoding.EncodeToString([]byte("  five years of Go experience  ")),
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Text   string `json:"text"`
			Length int    `json:"length"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "five years of Go experience", body.Text)
		assert.Equal(t, len(body.Text), body.Length)
	})

	t.Run("markdown_resume", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterResumeRoutes(api)

		resp := api.Post("/resumes/extract", map[string]any{
			"file_name": "resume.md",
			"content":   base64.StdEncoding.EncodeToString([]byte("# Ada\nbackend engineer")),
		})

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("unsupported_format_returns_422", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterResumeRoutes(api)

		resp := api.Post("/resumes/extract", map[string]any{
			"file_name": "resume.docx",
			"content":   base64.StdEncoding.EncodeToString([]byte("binary blob")),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("corrupt_pdf_returns_500", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterResumeRoutes(api)

		resp := api.Post("/resumes/extract", map[string]any{
			"file_name": "resume.pdf",
			"content":   base64.StdEncoding.EncodeToString([]byte("not a pdf")),
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

package v1

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vettalabs/vetta/internal/extract"
)

type ExtractResumeInput struct {
	Body struct {
		FileName string `json:"file_name" minLength:"1" doc:"Original file name, used to detect the format"`
		Content  []byte `json:"content" doc:"Base64-encoded file content"`
	}
}

type ExtractResumeOutput struct {
	Body struct {
		Text   string `json:"text" doc:"Extracted plain text"`
		Length int    `json:"length" doc:"Extracted text length in bytes"`
	}
}

func RegisterResumeRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extract-resume",
		Method:      http.MethodPost,
		Path:        "/resumes/extract",
		Summary:     "Extract plain text from an uploaded resume file",
		Tags:        []string{"Resumes"},
	}, func(_ context.Context, input *ExtractResumeInput) (*ExtractResumeOutput, error) {
		text, err := extract.FromBytes(input.Body.Content, filepath.Ext(input.Body.FileName))
		if err != nil {
			if errors.Is(err, extract.ErrUnsupportedFormat) {
				return nil, huma.Error422UnprocessableEntity("unsupported resume format", err)
			}
			return nil, huma.Error500InternalServerError("failed to extract resume text", err)
		}

		out := &ExtractResumeOutput{}
		out.Body.Text = text
		out.Body.Length = len(text)

		return out, nil
	})
}

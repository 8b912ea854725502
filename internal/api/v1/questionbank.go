package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type ImportQuestionsInput struct {
	Body struct {
		Path string `json:"path" minLength:"1" doc:"Server-side path of the corpus file to import"`
	}
}

type ImportQuestionsOutput struct {
	Body struct {
		Imported int `json:"imported" doc:"Number of corpus chunks imported"`
	}
}

type QuestionBankStatsOutput struct {
	Body struct {
		Count int `json:"count" doc:"Number of corpus chunks stored"`
	}
}

func RegisterQuestionBankRoutes(api huma.API, bank QuestionBank) {
	huma.Register(api, huma.Operation{
		OperationID: "import-questions",
		Method:      http.MethodPost,
		Path:        "/question-bank/import",
		Summary:     "Import a question corpus file into the vector store",
		Tags:        []string{"QuestionBank"},
	}, func(ctx context.Context, input *ImportQuestionsInput) (*ImportQuestionsOutput, error) {
		n, err := bank.ImportFile(ctx, input.Body.Path)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to import question corpus", err)
		}

		out := &ImportQuestionsOutput{}
		out.Body.Imported = n

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "question-bank-stats",
		Method:      http.MethodGet,
		Path:        "/question-bank/stats",
		Summary:     "Get question bank statistics",
		Tags:        []string{"QuestionBank"},
	}, func(_ context.Context, _ *struct{}) (*QuestionBankStatsOutput, error) {
		out := &QuestionBankStatsOutput{}
		out.Body.Count = bank.Count()

		return out, nil
	})
}

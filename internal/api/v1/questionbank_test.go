package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/vettalabs/vetta/internal/api/v1"
)

func TestImportQuestions(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		bank := &mockQuestionBank{
			importFileFunc: func(_ context.Context, path string) (int, error) {
				assert.Equal(t, "/data/questions.pdf", path)
				return 12, nil
			},
		}
		v1.RegisterQuestionBankRoutes(api, bank)

		resp := api.Post("/question-bank/import", map[string]any{
			"path": "/data/questions.pdf",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Imported int `json:"imported"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 12, body.Imported)
	})

	t.Run("import_failure_returns_500", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		bank := &mockQuestionBank{
			importFileFunc: func(_ context.Context, _ string) (int, error) {
				return 0, errors.New("no such file")
			},
		}
		v1.RegisterQuestionBankRoutes(api, bank)

		resp := api.Post("/question-bank/import", map[string]any{
			"path": "/data/missing.pdf",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})

	t.Run("empty_path_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterQuestionBankRoutes(api, &mockQuestionBank{})

		resp := api.Post("/question-bank/import", map[string]any{
			"path": "",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestQuestionBankStats(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	bank := &mockQuestionBank{
		countFunc: func() int { return 42 },
	}
	v1.RegisterQuestionBankRoutes(api, bank)

	resp := api.Get("/question-bank/stats")

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 42, body.Count)
}

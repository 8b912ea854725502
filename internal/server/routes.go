package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/vettalabs/vetta/internal/api/v1"
)

func registerAPIRoutes(api huma.API, svc v1.InterviewService, bank v1.QuestionBank) {
	v1.RegisterInterviewRoutes(api, svc)
	v1.RegisterResumeRoutes(api)
	v1.RegisterQuestionBankRoutes(api, bank)
}

// Package llm implements the generative interview collaborators on top of an
// OpenAI-compatible chat completions endpoint (e.g. DeepSeek).
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/domain"
	"github.com/vettalabs/vetta/internal/interview"
)

// Config holds the chat completion endpoint settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

const persona = "You are a senior software engineering interviewer. " +
	"You evaluate candidates against the position's requirements and the current level of competition for the role. " +
	"Be factual and objective; hold a high bar and do not be overly polite."

// resumeContextLimit caps how much resume text is fed into prompts.
const resumeContextLimit = 2000

// evalResumeLimit caps the resume excerpt used when scoring a single answer.
const evalResumeLimit = 1000

// Interviewer implements interview.Generator, interview.Evaluator, and
// interview.Summarizer with one chat model.
type Interviewer struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewInterviewer(cfg Config) *Interviewer {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Interviewer{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (iv *Interviewer) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := iv.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(iv.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(iv.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("llm.Interviewer: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm.Interviewer: empty completion")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// OpeningRemark generates a short welcome that names the interview flow.
func (iv *Interviewer) OpeningRemark(ctx context.Context, resumeContent, jobRequirements string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Resume:\n%s\n", truncate(resumeContent, resumeContextLimit))
	if jobRequirements != "" {
		fmt.Fprintf(&b, "\nPosition requirements:\n%s\n", jobRequirements)
	}
	b.WriteString("\nGenerate the interview opening remark:")

	return iv.complete(ctx,
		persona+" Produce a concise opening remark (2-3 sentences) that welcomes the candidate and outlines the interview flow.",
		b.String())
}

// SelfIntroPrompt asks the candidate to introduce themselves.
func (iv *Interviewer) SelfIntroPrompt(ctx context.Context) (string, error) {
	return iv.complete(ctx,
		persona+" The interview has just begun. Politely ask the candidate for a short self-introduction, in a single sentence.",
		"Ask the candidate to introduce themselves.")
}

// ProjectQuestions generates up to count questions about the candidate's
// project experience, one per line.
func (iv *Interviewer) ProjectQuestions(ctx context.Context, s *domain.Session, count int) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Resume:\n%s\n", truncate(s.ResumeContent, resumeContextLimit))
	if s.JobRequirements != "" {
		fmt.Fprintf(&b, "\nPosition requirements:\n%s\n", s.JobRequirements)
	}
	fmt.Fprintf(&b, "\nProject questions already asked: %d\n", s.ProjectQuestionsAsked)
	fmt.Fprintf(&b, "Target question count: %d\n", count)
	b.WriteString("\nGenerate the project questions:")

	system := persona + fmt.Sprintf(" Ask about the highlights and hard parts of the projects on the resume. "+
		"Requirements: questions must be short and specific; focus on technical difficulties, architecture decisions, "+
		"and problem solving; match question depth to how rich the resume is. "+
		"Generate %d project questions. Output only the questions, one per line, numbered.", count)

	raw, err := iv.complete(ctx, system, b.String())
	if err != nil {
		return nil, err
	}

	return parseQuestionList(raw, count), nil
}

// FollowupQuestion generates one probe into an already-given answer.
func (iv *Interviewer) FollowupQuestion(ctx context.Context, originalQuestion, answer, reason string) (string, error) {
	user := fmt.Sprintf("Original question: %s\nAnswer: %s\nReason to follow up: %s\n\nGenerate the follow-up question:",
		originalQuestion, answer, reason)

	return iv.complete(ctx,
		persona+" Based on the candidate's answer and the follow-up reason, generate one short, pointed follow-up question. "+
			"It must have real interview value; never ask filler.",
		user)
}

// Evaluate scores a single answer. A response that cannot be parsed as the
// expected JSON degrades to a neutral default rather than failing the turn.
func (iv *Interviewer) Evaluate(ctx context.Context, question, answer, resumeContext string) (interview.Evaluation, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n", question, answer)
	if resumeContext != "" {
		fmt.Fprintf(&b, "\nResume (for consistency checks):\n%s", truncate(resumeContext, evalResumeLimit))
	}
	b.WriteString("\n\nEvaluate this answer:")

	system := persona + ` Evaluate the candidate's answer:
1. give an objective score from 0 to 100, never inflated;
2. give structured feedback naming strengths and gaps;
3. decide whether a follow-up is warranted (obvious holes, unclear logic, or depth worth probing);
4. if the answer is recited or clearly lacks hands-on experience, score it low and say why.
Return JSON only: {"score": <int>, "feedback": "<text>", "need_followup": true/false, "followup_reason": "<text when following up>"}`

	raw, err := iv.complete(ctx, system, b.String())
	if err != nil {
		return interview.Evaluation{}, err
	}

	ev, err := parseEvaluation(raw)
	if err != nil {
		log.Warn().Err(err).Str("response", truncate(raw, 200)).Msg("evaluation response unparsable, using neutral default")
		return interview.Evaluation{Score: neutralScore, Feedback: neutralFeedback}, nil
	}

	return ev, nil
}

// Conclude summarizes the full interview into a final score and feedback.
// Parse failures surface as errors so the orchestrator can apply the
// running-average fallback.
func (iv *Interviewer) Conclude(ctx context.Context, s *domain.Session) (interview.Conclusion, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Interview summary:\nProject questions: %d\nTechnical questions: %d\n\nFull record:\n",
		len(s.ProjectQA), len(s.TechnicalQA))

	for _, qa := range append(append([]domain.QuestionAnswer{}, s.ProjectQA...), s.TechnicalQA...) {
		score := "unscored"
		if qa.Score != nil {
			score = fmt.Sprintf("%d", *qa.Score)
		}
		fmt.Fprintf(&b, "Question: %s\nAnswer: %s\nScore: %s\n\n", qa.Question, qa.Answer, score)
	}

	if s.ResumeContent != "" {
		fmt.Fprintf(&b, "Resume:\n%s\n", truncate(s.ResumeContent, evalResumeLimit))
	}
	b.WriteString("\nSummarize the interview and give the final score:")

	system := persona + ` Summarize this interview:
1. characterize the candidate's overall performance;
2. name strengths and areas to improve;
3. give an objective overall score from 0 to 100, never inflated;
4. give concrete improvement advice.
Return JSON only: {"final_score": <int>, "feedback": "<text>"}`

	raw, err := iv.complete(ctx, system, b.String())
	if err != nil {
		return interview.Conclusion{}, err
	}

	c, err := parseConclusion(raw)
	if err != nil {
		return interview.Conclusion{}, fmt.Errorf("llm.Interviewer.Conclude: %w", err)
	}

	return c, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
